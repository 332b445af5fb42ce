package store

import (
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/time-master/internal/model"
	"github.com/Tiliavir/time-master/internal/timecalc"
)

const (
	// DefaultTitle replaces an empty title at insertion.
	DefaultTitle = "Untitled"
	// DefaultTag replaces an empty tag at insertion.
	DefaultTag = "Untagged"
	// DefaultOtherTag is the catch-all tag whose value the user overrides with free text.
	DefaultOtherTag = "Other"
)

// DefaultTags is the tag set a store starts with.
var DefaultTags = []string{"Mind", "Body", "Fun", "Community", DefaultOtherTag}

// EventKind identifies what changed in a Store.
type EventKind int

const (
	EntryAdded EventKind = iota
	TagAdded
)

// Event is delivered to subscribers after every mutation.
type Event struct {
	Kind  EventKind
	Entry model.Entry
	Tag   string
}

// Store is the in-memory, append-only owner of all log entries and the
// known tag set. It is not safe for concurrent use.
type Store struct {
	clock        timecalc.Clock
	log          *slog.Logger
	entries      []model.Entry
	tags         []string
	defaultTitle string
	defaultTag   string
	otherTag     string

	nextSub     int
	subscribers []subscriber
}

type subscriber struct {
	id int
	fn func(Event)
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for "today" and greetings.
func WithClock(c timecalc.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithTags replaces the default tag set.
func WithTags(tags []string) Option {
	return func(s *Store) { s.tags = slices.Clone(tags) }
}

// WithLogger sets the logger for debug output. A nil logger keeps output discarded.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPlaceholders overrides the title and tag used when input is empty.
// Empty arguments keep the defaults.
func WithPlaceholders(title, tag string) Option {
	return func(s *Store) {
		if title != "" {
			s.defaultTitle = title
		}
		if tag != "" {
			s.defaultTag = tag
		}
	}
}

// WithOtherTag renames the catch-all tag. An empty name keeps the default.
func WithOtherTag(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.otherTag = name
		}
	}
}

// WithSeed adds the two example entries every fresh session starts with.
func WithSeed() Option {
	return func(s *Store) {
		s.AddEntry("12:00 AM", "2:00 AM", "120", "Jun 15, 2020", "Hello", "World")
		s.AddEntry("12:00 PM", "13:00 PM", "60", "Jun 16, 2020", "Hola", "Mundo")
	}
}

// New creates a Store. Options are applied in order, so WithSeed should come
// after options that affect insertion.
func New(opts ...Option) *Store {
	s := &Store{
		clock:        timecalc.SystemClock{},
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		tags:         slices.Clone(DefaultTags),
		defaultTitle: DefaultTitle,
		defaultTag:   DefaultTag,
		otherTag:     DefaultOtherTag,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to be called synchronously after every mutation.
// Subscribers are called in registration order. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(Event)) func() {
	id := s.nextSub
	s.nextSub++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	return func() {
		s.subscribers = slices.DeleteFunc(s.subscribers, func(sub subscriber) bool { return sub.id == id })
	}
}

func (s *Store) notify(ev Event) {
	for _, sub := range slices.Clone(s.subscribers) {
		sub.fn(ev)
	}
}

// AddEntry appends a new entry with a fresh ID. Values are stored as given
// apart from placeholder substitution for an empty title, tag or date.
func (s *Store) AddEntry(start, end, duration, date, title, tag string) model.Entry {
	if title == "" {
		title = s.defaultTitle
	}
	if tag == "" {
		tag = s.defaultTag
	}
	if date == "" {
		date = s.CurrentDate()
	}
	e := model.Entry{
		ID:       timecalc.GenerateID(),
		Start:    start,
		End:      end,
		Duration: duration,
		Date:     date,
		Title:    title,
		Tag:      tag,
	}
	s.entries = append(s.entries, e)
	s.log.Debug("entry added", "id", e.ID, "date", e.Date, "tag", e.Tag, "duration", e.Duration)
	s.notify(Event{Kind: EntryAdded, Entry: e})
	return e
}

// AddValidated is AddEntry with input checks: start and end must be clock
// times, duration a non-negative integer and date, when set, a date key.
func (s *Store) AddValidated(start, end, duration, date, title, tag string) (model.Entry, error) {
	if _, err := timecalc.ParseClock(start); err != nil {
		return model.Entry{}, &ValidationError{Field: "start", Value: start, Reason: "not a 12-hour time"}
	}
	if _, err := timecalc.ParseClock(end); err != nil {
		return model.Entry{}, &ValidationError{Field: "end", Value: end, Reason: "not a 12-hour time"}
	}
	n, err := strconv.Atoi(strings.TrimSpace(duration))
	if err != nil {
		return model.Entry{}, &ValidationError{Field: "duration", Value: duration, Reason: "not an integer"}
	}
	if n < 0 {
		return model.Entry{}, &ValidationError{Field: "duration", Value: duration, Reason: "negative"}
	}
	if date != "" {
		if _, err := timecalc.ParseDate(date); err != nil {
			return model.Entry{}, &ValidationError{Field: "date", Value: date, Reason: "not a date like \"Jun 15, 2020\""}
		}
	}
	return s.AddEntry(start, end, duration, date, title, tag), nil
}

// Record logs an interval picked as structured times, the way the entry form
// submits it: times are formatted, the duration computed and the entry dated
// today. Choosing the catch-all tag (see OtherTag) substitutes otherTag for it.
//
// Start and end are times of the same day. An end before start, including an
// interval that crosses midnight such as 11:30 PM to 12:30 AM, is rejected
// with a ValidationError; log such an interval as two entries.
func (s *Store) Record(start, end time.Time, title, tag, otherTag string) (model.Entry, error) {
	minutes := timecalc.IntervalMinutes(start, end)
	if minutes < 0 {
		return model.Entry{}, &ValidationError{
			Field:  "end",
			Value:  timecalc.FormatClock(end),
			Reason: "before start " + timecalc.FormatClock(start),
		}
	}
	if tag == s.otherTag {
		tag = strings.TrimSpace(otherTag)
	}
	return s.AddEntry(
		timecalc.FormatClock(start),
		timecalc.FormatClock(end),
		strconv.Itoa(minutes),
		s.CurrentDate(),
		strings.TrimSpace(title),
		tag,
	), nil
}

// Entries returns every entry in insertion order.
func (s *Store) Entries() []model.Entry {
	return slices.Clone(s.entries)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Filter returns the entries satisfying pred, in insertion order.
func (s *Store) Filter(pred func(model.Entry) bool) []model.Entry {
	var out []model.Entry
	for _, e := range s.entries {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// TodayEntries returns the entries dated CurrentDate.
func (s *Store) TodayEntries() []model.Entry {
	return s.ByDate(s.CurrentDate())
}

// ByDate returns the entries logged on date.
func (s *Store) ByDate(date string) []model.Entry {
	return s.Filter(func(e model.Entry) bool { return e.Date == date })
}

// ByTag returns the entries carrying tag.
func (s *Store) ByTag(tag string) []model.Entry {
	return s.Filter(func(e model.Entry) bool { return e.Tag == tag })
}

// Search returns the entries with text in any display field.
func (s *Store) Search(text string) []model.Entry {
	return s.Filter(func(e model.Entry) bool { return e.Matches(text) })
}

// TotalMinutes sums the durations of all entries. It fails on the first
// entry whose duration is not an integer.
func (s *Store) TotalMinutes() (int, error) {
	total, err := sumMinutes(s.entries)
	if err != nil {
		s.log.Debug("total minutes failed", "err", err)
		return 0, err
	}
	return total, nil
}

func sumMinutes(entries []model.Entry) (int, error) {
	total := 0
	for _, e := range entries {
		n, err := entryMinutes(e)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func entryMinutes(e model.Entry) (int, error) {
	n, err := e.Minutes()
	if err != nil {
		return 0, &FormatError{EntryID: e.ID, Field: "duration", Value: e.Duration, Err: err}
	}
	return n, nil
}

// TagTotal is the number of minutes logged under one tag.
type TagTotal struct {
	Tag     string `json:"tag"`
	Minutes int    `json:"minutes"`
}

// TagTotals aggregates minutes per tag in first-seen tag order.
func (s *Store) TagTotals() ([]TagTotal, error) {
	var totals []TagTotal
	index := map[string]int{}
	for _, e := range s.entries {
		n, err := entryMinutes(e)
		if err != nil {
			return nil, err
		}
		i, ok := index[e.Tag]
		if !ok {
			i = len(totals)
			index[e.Tag] = i
			totals = append(totals, TagTotal{Tag: e.Tag})
		}
		totals[i].Minutes += n
	}
	return totals, nil
}

// DistinctDates returns each entry date once, in order of first appearance.
func (s *Store) DistinctDates() []string {
	return distinct(s.entries, func(e model.Entry) string { return e.Date })
}

// DistinctTags returns each entry tag once, in order of first appearance.
func (s *Store) DistinctTags() []string {
	return distinct(s.entries, func(e model.Entry) string { return e.Tag })
}

func distinct(entries []model.Entry, key func(model.Entry) string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, e := range entries {
		k := key(e)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// OtherTag returns the catch-all tag that Record replaces with free text.
func (s *Store) OtherTag() string {
	return s.otherTag
}

// Tags returns the known tag set.
func (s *Store) Tags() []string {
	return slices.Clone(s.tags)
}

// AddTag appends name to the known tag set.
func (s *Store) AddTag(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "tag", Value: name, Reason: "empty"}
	}
	if slices.Contains(s.tags, name) {
		return &ValidationError{Field: "tag", Value: name, Reason: "already known"}
	}
	s.tags = append(s.tags, name)
	s.notify(Event{Kind: TagAdded, Tag: name})
	return nil
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// CurrentDate returns today's date key, e.g. "Jun 15, 2020".
func (s *Store) CurrentDate() string {
	return timecalc.FormatDate(s.clock.Now())
}

// DisplayDate returns today's date for headers, e.g. "Mon | Jun 15, 2020".
func (s *Store) DisplayDate() string {
	return timecalc.FormatDisplayDate(s.clock.Now())
}

// Greeting returns "Good morning!" before noon and "Good afternoon!" after.
func (s *Store) Greeting() string {
	return timecalc.Greeting(s.clock.Now())
}
