package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tiliavir/time-master/internal/model"
	"github.com/Tiliavir/time-master/internal/store"
)

type tab int

const (
	tabToday tab = iota
	tabHistory
)

type historyMode int

const (
	modeByDate historyMode = iota
	modeByTag
	modeSearch
)

func (h historyMode) String() string {
	switch h {
	case modeByDate:
		return "By date"
	case modeByTag:
		return "By tag"
	default:
		return "Search"
	}
}

// Model is the interactive session over a single Store.
type Model struct {
	store       *store.Store
	unsubscribe func()

	tab      tab
	mode     historyMode
	cursor   int
	selected string // date or tag drilled into; empty shows the key list

	search textinput.Model
	form   *entryForm
	status string
}

// New creates a session model bound to s.
func New(s *store.Store) *Model {
	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "🔍 "

	m := &Model{
		store:  s,
		search: search,
	}
	m.unsubscribe = s.Subscribe(m.onStoreEvent)
	return m
}

// Close detaches the model from its store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Model) onStoreEvent(ev store.Event) {
	switch ev.Kind {
	case store.EntryAdded:
		m.status = fmt.Sprintf("Logged %q under %s", ev.Entry.Title, ev.Entry.Tag)
	case store.TagAdded:
		m.status = fmt.Sprintf("New tag %q", ev.Tag)
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.form != nil {
			return m.handleFormInput(msg)
		}
		if m.tab == tabHistory && m.mode == modeSearch {
			return m.handleSearchInput(msg)
		}
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.switchTab()
	case "a", "n":
		m.form = newEntryForm(m.store)
		return m, m.form.focusCmd()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.keys())-1 {
			m.cursor++
		}
	case "enter":
		keys := m.keys()
		if m.tab == tabHistory && m.selected == "" && m.cursor < len(keys) {
			m.selected = keys[m.cursor]
		}
	case "esc", "backspace":
		m.selected = ""
	case "d":
		m.setMode(modeByDate)
	case "t":
		m.setMode(modeByTag)
	case "s", "/":
		m.setMode(modeSearch)
		return m, m.search.Focus()
	}
	return m, nil
}

func (m *Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Reset()
		m.search.Blur()
		m.setMode(modeByDate)
		return m, nil
	case "tab":
		m.search.Blur()
		m.switchTab()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) handleFormInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil
	case "enter":
		if _, err := m.form.submit(); err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.form = nil
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m *Model) switchTab() {
	if m.tab == tabToday {
		m.tab = tabHistory
		if m.mode == modeSearch {
			m.mode = modeByDate
		}
	} else {
		m.tab = tabToday
	}
	m.cursor = 0
	m.selected = ""
}

func (m *Model) setMode(mode historyMode) {
	m.tab = tabHistory
	m.mode = mode
	m.cursor = 0
	m.selected = ""
}

// keys returns the selectable dates or tags of the current history list.
func (m *Model) keys() []string {
	if m.tab != tabHistory || m.selected != "" {
		return nil
	}
	switch m.mode {
	case modeByDate:
		return m.store.DistinctDates()
	case modeByTag:
		return m.store.DistinctTags()
	}
	return nil
}

// visibleEntries returns the entries the current view lists.
func (m *Model) visibleEntries() []model.Entry {
	if m.tab == tabToday {
		return m.store.TodayEntries()
	}
	switch m.mode {
	case modeSearch:
		return m.store.Search(m.search.Value())
	case modeByTag:
		if m.selected != "" {
			return m.store.ByTag(m.selected)
		}
	default:
		if m.selected != "" {
			return m.store.ByDate(m.selected)
		}
	}
	return nil
}
