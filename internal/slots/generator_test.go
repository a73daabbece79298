package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", "2026-03-02 "+clock)
	require.NoError(t, err)
	return parsed
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		windows  []Window
		booked   []time.Time
		opts     Options
		expected []string
	}{
		{
			name:     "single window no bookings",
			windows:  []Window{{Start: "09:00", End: "10:00"}},
			expected: []string{"09:00", "09:30"},
		},
		{
			name:     "booked slot removed",
			windows:  []Window{{Start: "09:00", End: "10:00"}},
			booked:   []time.Time{},
			expected: []string{"09:00", "09:30"},
		},
		{
			name:     "no windows yields empty",
			windows:  nil,
			expected: []string{},
		},
		{
			name:     "end time exclusive",
			windows:  []Window{{Start: "09:00", End: "09:30"}},
			expected: []string{"09:00"},
		},
		{
			name:     "multiple windows sorted",
			windows:  []Window{{Start: "14:00", End: "15:00"}, {Start: "09:00", End: "10:00"}},
			expected: []string{"09:00", "09:30", "14:00", "14:30"},
		},
		{
			name:     "overlapping windows deduplicated",
			windows:  []Window{{Start: "09:00", End: "10:00"}, {Start: "09:30", End: "10:30"}},
			opts:     Options{Dedupe: true},
			expected: []string{"09:00", "09:30", "10:00"},
		},
		{
			name:     "custom interval",
			windows:  []Window{{Start: "09:00", End: "12:00"}},
			opts:     Options{Interval: time.Hour},
			expected: []string{"09:00", "10:00", "11:00"},
		},
		{
			name:     "window not aligned to interval",
			windows:  []Window{{Start: "09:10", End: "10:00"}},
			expected: []string{"09:10", "09:40"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.windows, tt.booked, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGenerateRemovesBookedTimes(t *testing.T) {
	windows := []Window{{Start: "09:00", End: "10:00"}}
	booked := []time.Time{at(t, "09:30")}

	got, err := Generate(windows, booked, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, got)
}

func TestGenerateBookedOutsideWindowIgnored(t *testing.T) {
	windows := []Window{{Start: "09:00", End: "10:00"}}
	booked := []time.Time{at(t, "11:00")}

	got, err := Generate(windows, booked, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, got)
}

func TestGenerateWithoutDedupeKeepsDuplicates(t *testing.T) {
	windows := []Window{{Start: "09:00", End: "09:30"}, {Start: "09:00", End: "09:30"}}

	got, err := Generate(windows, nil, Options{Dedupe: false})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:00"}, got)
}

func TestGenerateQuantization(t *testing.T) {
	got, err := Generate([]Window{{Start: "08:00", End: "12:00"}}, nil, Options{})
	require.NoError(t, err)

	start := at(t, "08:00")
	end := at(t, "12:00")
	for _, slot := range got {
		st := at(t, slot)
		assert.True(t, !st.Before(start) && st.Before(end), "slot %s outside window", slot)
		offset := st.Sub(start)
		assert.Zero(t, offset%(30*time.Minute), "slot %s not 30-minute aligned", slot)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	windows := []Window{{Start: "09:00", End: "11:00"}}
	booked := []time.Time{at(t, "10:00")}

	first, err := Generate(windows, booked, Options{Dedupe: true})
	require.NoError(t, err)
	second, err := Generate(windows, booked, Options{Dedupe: true})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateInvalidWindow(t *testing.T) {
	_, err := Generate([]Window{{Start: "9am", End: "10:00"}}, nil, Options{})
	assert.Error(t, err)

	_, err = Generate([]Window{{Start: "09:00", End: "later"}}, nil, Options{})
	assert.Error(t, err)
}
