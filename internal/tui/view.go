package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/time-master/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	greetingStyle = lipgloss.NewStyle().Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().Padding(0, 1)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	entryTitleStyle = lipgloss.NewStyle().Bold(true)

	intervalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	tagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Width(12).
			Foreground(lipgloss.Color("241"))

	labelActiveStyle = labelStyle.
				Foreground(lipgloss.Color("170"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m *Model) View() string {
	if m.form != nil {
		return m.formView()
	}

	var sb strings.Builder
	sb.WriteString(m.headerView())
	sb.WriteString("\n\n")
	sb.WriteString(m.tabsView())
	sb.WriteString("\n\n")

	if m.tab == tabToday {
		sb.WriteString(m.entriesView(m.visibleEntries(), "Nothing logged today. Press 'a' to add an entry."))
	} else {
		sb.WriteString(m.historyView())
	}

	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(statusStyle.Render(m.status))
	}
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render(m.helpText()))
	return sb.String()
}

func (m *Model) headerView() string {
	total := "total unavailable"
	if n, err := m.store.TotalMinutes(); err == nil {
		total = fmt.Sprintf("%d min logged total", n)
	}
	return titleStyle.Render(m.store.DisplayDate()) + "\n" +
		greetingStyle.Render(m.store.Greeting()) + "    " + total
}

func (m *Model) tabsView() string {
	render := func(label string, active bool) string {
		if active {
			return tabActiveStyle.Render(label)
		}
		return tabStyle.Render(label)
	}

	tabs := []string{
		render("Today", m.tab == tabToday),
		render("History", m.tab == tabHistory),
	}
	if m.tab == tabHistory {
		tabs = append(tabs, "  ")
		for _, mode := range []historyMode{modeByDate, modeByTag, modeSearch} {
			tabs = append(tabs, render(mode.String(), m.mode == mode))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) historyView() string {
	switch {
	case m.mode == modeSearch:
		return m.search.View() + "\n\n" + m.entriesView(m.visibleEntries(), "No entries match.")
	case m.selected != "":
		return titleStyle.Render(m.selected) + "\n\n" + m.entriesView(m.visibleEntries(), "No entries.")
	}

	keys := m.keys()
	if len(keys) == 0 {
		return itemStyle.Render("No entries yet.")
	}
	var sb strings.Builder
	for i, k := range keys {
		if i == m.cursor {
			sb.WriteString(itemSelectedStyle.Render("› " + k))
		} else {
			sb.WriteString(itemStyle.Render("  " + k))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m *Model) entriesView(entries []model.Entry, empty string) string {
	if len(entries) == 0 {
		return itemStyle.Render(empty)
	}
	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, renderEntry(e))
	}
	return strings.Join(rows, "\n")
}

func renderEntry(e model.Entry) string {
	icon := "☾"
	if e.IsMorning() {
		icon = "☀"
	}
	body := entryTitleStyle.Render(e.Title) + "\n" +
		intervalStyle.Render(e.Interval()) + "  " + tagStyle.Render(e.Tag)
	return lipgloss.JoinHorizontal(lipgloss.Center, itemStyle.Render(icon), body)
}

func (m *Model) helpText() string {
	switch {
	case m.tab == tabToday:
		return "Add: a | History: tab | Search: / | Quit: q"
	case m.mode == modeSearch:
		return "Type to search | Cancel: esc | Today: tab"
	case m.selected != "":
		return "Back: esc | Add: a | Today: tab | Quit: q"
	default:
		return "Navigate: Up/Down | Open: Enter | By date: d | By tag: t | Search: / | Add: a | Today: tab | Quit: q"
	}
}

func (m *Model) formView() string {
	f := m.form
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("New Entry"))
	sb.WriteString("\n\n")

	row := func(field formField, label, value string) {
		style := labelStyle
		if f.focus == field {
			style = labelActiveStyle
		}
		sb.WriteString(style.Render(label))
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	row(fieldTitle, "Title", f.title.View())
	row(fieldTag, "Tag", f.tagPickerView())
	if f.tag() == f.store.OtherTag() {
		row(fieldOther, f.store.OtherTag(), f.other.View())
	}
	row(fieldStart, "Start time", f.start.View())
	row(fieldEnd, "End time", f.end.View())

	if f.err != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(f.err))
	}

	out := boxStyle.Render(strings.TrimRight(sb.String(), "\n"))
	return out + "\n\n" + helpStyle.Render("Next: tab | Pick tag: left/right | Done: enter | Cancel: esc")
}

func (f *entryForm) tagPickerView() string {
	parts := make([]string, 0, len(f.tags))
	for i, t := range f.tags {
		if i == f.tagIdx {
			parts = append(parts, tabActiveStyle.Render(t))
		} else {
			parts = append(parts, tabStyle.Render(t))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
