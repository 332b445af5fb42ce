package store_test

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/time-master/internal/model"
	"github.com/Tiliavir/time-master/internal/store"
	"github.com/Tiliavir/time-master/internal/timecalc"
)

// fixedNow is a Monday morning.
var fixedNow = time.Date(2020, 6, 15, 9, 30, 0, 0, time.UTC)

func newStore(opts ...store.Option) *store.Store {
	return store.New(append([]store.Option{store.WithClock(timecalc.FixedClock(fixedNow))}, opts...)...)
}

func TestEmptyStore(t *testing.T) {
	s := newStore()

	total, err := s.TotalMinutes()
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, s.Entries())
	assert.Empty(t, s.DistinctDates())
	assert.Empty(t, s.DistinctTags())
	assert.Empty(t, s.TodayEntries())
}

func TestSeededStore(t *testing.T) {
	s := newStore(store.WithSeed())

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Hello", entries[0].Title)
	assert.Equal(t, "13:00 PM", entries[1].End)

	total, err := s.TotalMinutes()
	require.NoError(t, err)
	assert.Equal(t, 180, total)
	assert.Equal(t, "180", strconv.Itoa(total))
	assert.Equal(t, []string{"World", "Mundo"}, s.DistinctTags())
	assert.Equal(t, []string{"Jun 15, 2020", "Jun 16, 2020"}, s.DistinctDates())
}

func TestAddEntryPreservesOrderAndCount(t *testing.T) {
	s := newStore()
	titles := []string{"a", "b", "c", "d", "e"}
	for i, title := range titles {
		s.AddEntry("9:00 AM", "9:10 AM", strconv.Itoa(i), "Jun 15, 2020", title, "Mind")
	}

	entries := s.Entries()
	require.Len(t, entries, len(titles))
	assert.Equal(t, len(titles), s.Len())
	seen := map[string]bool{}
	for i, e := range entries {
		assert.Equal(t, titles[i], e.Title)
		assert.NotEmpty(t, e.ID)
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestAddEntryPlaceholders(t *testing.T) {
	s := newStore()
	e := s.AddEntry("9:00 AM", "10:00 AM", "60", "", "", "")

	assert.Equal(t, store.DefaultTitle, e.Title)
	assert.Equal(t, store.DefaultTag, e.Tag)
	assert.Equal(t, "Jun 15, 2020", e.Date)
	assert.Equal(t, e, s.Entries()[0])
}

func TestWithPlaceholders(t *testing.T) {
	s := newStore(store.WithPlaceholders("Nameless", ""))
	e := s.AddEntry("9:00 AM", "10:00 AM", "60", "Jun 15, 2020", "", "")

	assert.Equal(t, "Nameless", e.Title)
	assert.Equal(t, store.DefaultTag, e.Tag)
}

func TestEntriesReturnsCopy(t *testing.T) {
	s := newStore(store.WithSeed())
	entries := s.Entries()
	entries[0].Title = "mutated"

	assert.Equal(t, "Hello", s.Entries()[0].Title)
}

func TestFilter(t *testing.T) {
	s := newStore(store.WithSeed())
	s.AddEntry("1:00 PM", "2:00 PM", "60", "Jun 15, 2020", "Run", "Body")

	assert.Equal(t, s.Entries(), s.Filter(func(model.Entry) bool { return true }))
	assert.Empty(t, s.Filter(func(model.Entry) bool { return false }))

	got := s.Filter(func(e model.Entry) bool { return e.Date == "Jun 15, 2020" })
	require.Len(t, got, 2)
	assert.Equal(t, "Hello", got[0].Title)
	assert.Equal(t, "Run", got[1].Title)
}

func TestTodayEntries(t *testing.T) {
	s := newStore(store.WithSeed())
	s.AddEntry("1:00 PM", "2:00 PM", "60", "", "Run", "Body")

	today := s.CurrentDate()
	assert.Equal(t, "Jun 15, 2020", today)
	assert.Equal(t, s.Filter(func(e model.Entry) bool { return e.Date == today }), s.TodayEntries())
	assert.Len(t, s.TodayEntries(), 2)
}

func TestByDateAndByTag(t *testing.T) {
	s := newStore(store.WithSeed())

	got := s.ByDate("Jun 16, 2020")
	require.Len(t, got, 1)
	assert.Equal(t, "Hola", got[0].Title)

	got = s.ByTag("World")
	require.Len(t, got, 1)
	assert.Equal(t, "Hello", got[0].Title)

	assert.Empty(t, s.ByTag("Nope"))
}

func TestSearch(t *testing.T) {
	s := newStore(store.WithSeed())

	tests := []struct {
		text string
		want []string
	}{
		{"", []string{"Hello", "Hola"}},
		{"Hol", []string{"Hola"}},
		{"Mundo", []string{"Hola"}},
		{"AM", []string{"Hello"}},
		{"Jun 1", []string{"Hello", "Hola"}},
		{"120", []string{"Hello"}},
		{"hello", nil},
	}
	for _, tt := range tests {
		var titles []string
		for _, e := range s.Search(tt.text) {
			titles = append(titles, e.Title)
		}
		assert.Equal(t, tt.want, titles, "Search(%q)", tt.text)
	}
}

func TestTotalMinutesFormatError(t *testing.T) {
	s := newStore(store.WithSeed())
	bad := s.AddEntry("9:00 AM", "10:00 AM", "abc", "Jun 15, 2020", "Broken", "Mind")

	_, err := s.TotalMinutes()
	require.Error(t, err)

	var fe *store.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, bad.ID, fe.EntryID)
	assert.Equal(t, "duration", fe.Field)
	assert.Equal(t, "abc", fe.Value)

	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))

	fe = nil
	_, err = s.TagTotals()
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, bad.ID, fe.EntryID)
	assert.Equal(t, "abc", fe.Value)
}

func TestDistinctFirstSeenOrder(t *testing.T) {
	s := newStore()
	s.AddEntry("9:00 AM", "10:00 AM", "60", "Jun 15, 2020", "a", "Fun")
	s.AddEntry("9:00 AM", "10:00 AM", "60", "Jun 16, 2020", "b", "Mind")
	s.AddEntry("9:00 AM", "10:00 AM", "60", "Jun 15, 2020", "c", "Fun")
	s.AddEntry("9:00 AM", "10:00 AM", "60", "Jun 14, 2020", "d", "Body")

	assert.Equal(t, []string{"Jun 15, 2020", "Jun 16, 2020", "Jun 14, 2020"}, s.DistinctDates())
	assert.Equal(t, []string{"Fun", "Mind", "Body"}, s.DistinctTags())
}

func TestTagTotals(t *testing.T) {
	s := newStore()
	s.AddEntry("9:00 AM", "10:00 AM", "60", "Jun 15, 2020", "a", "Fun")
	s.AddEntry("9:00 AM", "9:30 AM", "30", "Jun 15, 2020", "b", "Mind")
	s.AddEntry("1:00 PM", "1:15 PM", "15", "Jun 15, 2020", "c", "Fun")

	totals, err := s.TagTotals()
	require.NoError(t, err)
	assert.Equal(t, []store.TagTotal{{Tag: "Fun", Minutes: 75}, {Tag: "Mind", Minutes: 30}}, totals)
}

func TestAddValidated(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		duration  string
		date      string
		wantField string
	}{
		{"valid", "9:00 AM", "10:00 AM", "60", "Jun 15, 2020", ""},
		{"valid without date", "9:00 AM", "10:00 AM", "0", "", ""},
		{"bad start", "25:00", "10:00 AM", "60", "", "start"},
		{"bad end", "9:00 AM", "13:00 PM", "60", "", "end"},
		{"non-numeric duration", "9:00 AM", "10:00 AM", "abc", "", "duration"},
		{"negative duration", "9:00 AM", "10:00 AM", "-5", "", "duration"},
		{"bad date", "9:00 AM", "10:00 AM", "60", "2020-06-15", "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()
			e, err := s.AddValidated(tt.start, tt.end, tt.duration, tt.date, "t", "Mind")
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, 1, s.Len())
				assert.Equal(t, e, s.Entries()[0])
				return
			}
			var ve *store.ValidationError
			require.True(t, errors.As(err, &ve), "err = %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestRecord(t *testing.T) {
	s := newStore()
	start := time.Date(2020, 6, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	e, err := s.Record(start, end, "  Read  ", "Mind", "")
	require.NoError(t, err)
	assert.Equal(t, "9:00 AM", e.Start)
	assert.Equal(t, "10:30 AM", e.End)
	assert.Equal(t, "90", e.Duration)
	assert.Equal(t, "Jun 15, 2020", e.Date)
	assert.Equal(t, "Read", e.Title)
	assert.Equal(t, "Mind", e.Tag)
}

func TestRecordOtherTag(t *testing.T) {
	s := newStore()
	start := time.Date(2020, 6, 15, 13, 0, 0, 0, time.UTC)

	e, err := s.Record(start, start.Add(time.Hour), "", store.DefaultOtherTag, "Gardening")
	require.NoError(t, err)
	assert.Equal(t, "Gardening", e.Tag)
	assert.Equal(t, store.DefaultTitle, e.Title)

	e, err = s.Record(start, start.Add(time.Hour), "x", store.DefaultOtherTag, "  ")
	require.NoError(t, err)
	assert.Equal(t, store.DefaultTag, e.Tag)
}

func TestRecordRenamedOtherTag(t *testing.T) {
	s := newStore(store.WithTags([]string{"Work", "Misc"}), store.WithOtherTag("Misc"))
	require.Equal(t, "Misc", s.OtherTag())
	start := time.Date(2020, 6, 15, 13, 0, 0, 0, time.UTC)

	e, err := s.Record(start, start.Add(time.Hour), "Weeding", "Misc", "Gardening")
	require.NoError(t, err)
	assert.Equal(t, "Gardening", e.Tag)

	// The default name is an ordinary tag once renamed.
	e, err = s.Record(start, start.Add(time.Hour), "Weeding", store.DefaultOtherTag, "Gardening")
	require.NoError(t, err)
	assert.Equal(t, store.DefaultOtherTag, e.Tag)

	assert.Equal(t, store.DefaultOtherTag, newStore(store.WithOtherTag("")).OtherTag())
}

func TestRecordEndBeforeStart(t *testing.T) {
	s := newStore()
	start := time.Date(2020, 6, 15, 13, 0, 0, 0, time.UTC)

	_, err := s.Record(start, start.Add(-time.Minute), "x", "Fun", "")
	var ve *store.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "end", ve.Field)
	assert.Equal(t, 0, s.Len())
}

func TestRecordAcrossMidnight(t *testing.T) {
	s := newStore()
	start, err := timecalc.ParseClock("11:30 PM")
	require.NoError(t, err)
	end, err := timecalc.ParseClock("12:30 AM")
	require.NoError(t, err)

	_, err = s.Record(start, end, "Late shift", "Fun", "")
	var ve *store.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "12:30 AM", ve.Value)
	assert.Contains(t, ve.Reason, "before start 11:30 PM")
	assert.Equal(t, 0, s.Len())
}

func TestTags(t *testing.T) {
	s := newStore()
	assert.Equal(t, []string{"Mind", "Body", "Fun", "Community", "Other"}, s.Tags())

	require.NoError(t, s.AddTag("Work"))
	assert.Equal(t, "Work", s.Tags()[5])

	var ve *store.ValidationError
	assert.True(t, errors.As(s.AddTag("Work"), &ve))
	assert.True(t, errors.As(s.AddTag("  "), &ve))

	custom := newStore(store.WithTags([]string{"A", "B"}))
	assert.Equal(t, []string{"A", "B"}, custom.Tags())
}

func TestSubscribe(t *testing.T) {
	s := newStore()
	var events []store.Event
	unsubscribe := s.Subscribe(func(ev store.Event) { events = append(events, ev) })

	e := s.AddEntry("9:00 AM", "10:00 AM", "60", "", "a", "Fun")
	require.NoError(t, s.AddTag("Work"))

	require.Len(t, events, 2)
	assert.Equal(t, store.EntryAdded, events[0].Kind)
	assert.Equal(t, e, events[0].Entry)
	assert.Equal(t, store.TagAdded, events[1].Kind)
	assert.Equal(t, "Work", events[1].Tag)

	unsubscribe()
	s.AddEntry("9:00 AM", "10:00 AM", "60", "", "b", "Fun")
	assert.Len(t, events, 2)
}

func TestSubscribeDeliveryOrder(t *testing.T) {
	s := newStore()
	var got []string
	for _, name := range []string{"a", "b", "c", "d"} {
		name := name
		s.Subscribe(func(store.Event) { got = append(got, name) })
	}
	unsubscribeE := s.Subscribe(func(store.Event) { got = append(got, "e") })

	for i := 0; i < 20; i++ {
		got = nil
		s.AddEntry("9:00 AM", "10:00 AM", "60", "", "x", "Fun")
		require.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
	}

	unsubscribeE()
	unsubscribeE()
	got = nil
	s.AddEntry("9:00 AM", "10:00 AM", "60", "", "x", "Fun")
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestUnsubscribeDuringNotify(t *testing.T) {
	s := newStore()
	var got []string
	var unsubscribeA func()
	unsubscribeA = s.Subscribe(func(store.Event) {
		got = append(got, "a")
		unsubscribeA()
	})
	s.Subscribe(func(store.Event) { got = append(got, "b") })

	s.AddEntry("9:00 AM", "10:00 AM", "60", "", "x", "Fun")
	s.AddEntry("9:00 AM", "10:00 AM", "60", "", "y", "Fun")
	assert.Equal(t, []string{"a", "b", "b"}, got)
}

func TestClockDerivedStrings(t *testing.T) {
	morning := newStore()
	assert.Equal(t, "Good morning!", morning.Greeting())
	assert.Equal(t, "Mon | Jun 15, 2020", morning.DisplayDate())

	evening := store.New(store.WithClock(timecalc.FixedClock(fixedNow.Add(10 * time.Hour))))
	assert.Equal(t, "Good afternoon!", evening.Greeting())
	assert.Equal(t, "Jun 15, 2020", evening.CurrentDate())
}
