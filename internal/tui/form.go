package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tiliavir/time-master/internal/model"
	"github.com/Tiliavir/time-master/internal/store"
	"github.com/Tiliavir/time-master/internal/timecalc"
)

type formField int

const (
	fieldTitle formField = iota
	fieldTag
	fieldOther
	fieldStart
	fieldEnd
	fieldCount
)

// entryForm collects a new entry. Start and end default to the current time.
type entryForm struct {
	store *store.Store

	title textinput.Model
	other textinput.Model
	start textinput.Model
	end   textinput.Model

	tags   []string
	tagIdx int // -1 until a tag is picked
	focus  formField
	err    string
}

func newEntryForm(s *store.Store) *entryForm {
	now := timecalc.FormatClock(s.Now())

	f := &entryForm{
		store:  s,
		title:  newInput("Title", ""),
		other:  newInput("Other", ""),
		start:  newInput("Start time", now),
		end:    newInput("End time", now),
		tags:   s.Tags(),
		tagIdx: -1,
	}
	return f
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.SetValue(value)
	return ti
}

func (f *entryForm) tag() string {
	if f.tagIdx < 0 || f.tagIdx >= len(f.tags) {
		return ""
	}
	return f.tags[f.tagIdx]
}

func (f *entryForm) input(field formField) *textinput.Model {
	switch field {
	case fieldTitle:
		return &f.title
	case fieldOther:
		return &f.other
	case fieldStart:
		return &f.start
	case fieldEnd:
		return &f.end
	}
	return nil
}

// focusCmd focuses the current field's input, blurring all others.
func (f *entryForm) focusCmd() tea.Cmd {
	var cmd tea.Cmd
	for field := fieldTitle; field < fieldCount; field++ {
		in := f.input(field)
		if in == nil {
			continue
		}
		if field == f.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

// move shifts focus by delta, skipping the free-text tag unless Other is picked.
func (f *entryForm) move(delta int) tea.Cmd {
	next := f.focus
	for {
		next = (next + formField(delta) + fieldCount) % fieldCount
		if next != fieldOther || f.tag() == f.store.OtherTag() {
			break
		}
	}
	f.focus = next
	return f.focusCmd()
}

func (f *entryForm) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		return f.move(1)
	case "shift+tab", "up":
		return f.move(-1)
	}

	if f.focus == fieldTag {
		if len(f.tags) == 0 {
			return nil
		}
		switch msg.String() {
		case "left", "h":
			if f.tagIdx > 0 {
				f.tagIdx--
			} else {
				f.tagIdx = len(f.tags) - 1
			}
		case "right", "l", " ":
			f.tagIdx = (f.tagIdx + 1) % len(f.tags)
		}
		return nil
	}

	in := f.input(f.focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

// submit parses the picked times and records the entry.
func (f *entryForm) submit() (model.Entry, error) {
	start, err := timecalc.ParseClock(f.start.Value())
	if err != nil {
		return model.Entry{}, &store.ValidationError{Field: "start", Value: f.start.Value(), Reason: "not a 12-hour time"}
	}
	end, err := timecalc.ParseClock(f.end.Value())
	if err != nil {
		return model.Entry{}, &store.ValidationError{Field: "end", Value: f.end.Value(), Reason: "not a 12-hour time"}
	}
	return f.store.Record(start, end, f.title.Value(), f.tag(), f.other.Value())
}
