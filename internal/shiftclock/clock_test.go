package shiftclock

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d, hh, mm, ss, ns int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, ns, time.UTC)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want Slot
	}{
		{"morning day shift", at(2024, 3, 10, 9, 0, 0, 0), Slot{Date{2024, 3, 10}, ShiftA}},
		{"day start boundary", at(2024, 3, 10, 8, 30, 0, 0), Slot{Date{2024, 3, 10}, ShiftA}},
		{"just before night", at(2024, 3, 10, 20, 29, 59, 999), Slot{Date{2024, 3, 10}, ShiftA}},
		{"night start boundary", at(2024, 3, 10, 20, 30, 0, 0), Slot{Date{2024, 3, 10}, ShiftB}},
		{"late evening", at(2024, 3, 10, 23, 59, 59, 0), Slot{Date{2024, 3, 10}, ShiftB}},
		{"midnight", at(2024, 3, 11, 0, 0, 0, 0), Slot{Date{2024, 3, 10}, ShiftB}},
		{"early morning", at(2024, 3, 11, 3, 15, 0, 0), Slot{Date{2024, 3, 10}, ShiftB}},
		{"last instant of night", at(2024, 3, 11, 8, 29, 59, 999999999), Slot{Date{2024, 3, 10}, ShiftB}},
		{"year rollover", at(2025, 1, 1, 2, 0, 0, 0), Slot{Date{2024, 12, 31}, ShiftB}},
		{"leap day", at(2024, 3, 1, 7, 0, 0, 0), Slot{Date{2024, 2, 29}, ShiftB}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.now))
		})
	}
}

func TestActive_EvaluatedPerCall(t *testing.T) {
	c := &stepClock{times: []time.Time{
		at(2024, 3, 10, 20, 29, 0, 0),
		at(2024, 3, 10, 20, 31, 0, 0),
	}}

	first := Active(c)
	second := Active(c)

	assert.Equal(t, ShiftA, first.Shift)
	assert.Equal(t, ShiftB, second.Shift)
}

type stepClock struct {
	times []time.Time
	i     int
}

func (c *stepClock) Now() time.Time {
	t := c.times[c.i]
	if c.i < len(c.times)-1 {
		c.i++
	}
	return t
}

func TestFixedClock(t *testing.T) {
	now := at(2024, 5, 1, 12, 0, 0, 0)
	assert.Equal(t, now, FixedClock(now).Now())
}

func TestSystemClock_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := SystemClock{Location: loc}.Now()
	assert.Equal(t, loc, now.Location())
}

func TestOccurrenceOrder_NightShift(t *testing.T) {
	times := []ClockTime{{0, 10}, {8, 0}, {23, 50}, {20, 45}}

	sort.Slice(times, func(i, j int) bool {
		return OccurrenceLess(ShiftB, times[i], times[j])
	})

	got := make([]string, 0, len(times))
	for _, c := range times {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{"20:45", "23:50", "00:10", "08:00"}, got)
}

func TestOccurrenceOrder_DayShiftIsPlain(t *testing.T) {
	assert.True(t, OccurrenceLess(ShiftA, ClockTime{8, 0}, ClockTime{9, 0}))
	assert.False(t, Rolled(ShiftA, ClockTime{7, 0}))
	assert.True(t, Rolled(ShiftB, ClockTime{8, 29}))
	assert.False(t, Rolled(ShiftB, ClockTime{8, 30}))
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr error
	}{
		{in: "00:00", want: ClockTime{0, 0}},
		{in: "23:59", want: ClockTime{23, 59}},
		{in: "08:30:15", want: ClockTime{8, 30}},
		{in: "", wantErr: ErrEmptyTime},
		{in: "24:00", wantErr: ErrInvalidTime},
		{in: "8:30", wantErr: ErrInvalidTime},
		{in: "12:60", wantErr: ErrInvalidTime},
		{in: "abc", wantErr: ErrInvalidTime},
		{in: "12:30:zz", wantErr: ErrInvalidTime},
		{in: "12:30:60", wantErr: ErrInvalidTime},
		{in: "12:30:5", wantErr: ErrInvalidTime},
		{in: "12:30x15", wantErr: ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClockTime(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseShift(t *testing.T) {
	for _, in := range []string{LabelA, "A", "a", "1", "day"} {
		s, err := ParseShift(in)
		require.NoError(t, err, in)
		assert.Equal(t, ShiftA, s)
	}
	for _, in := range []string{LabelB, "B", " 2 ", "night"} {
		s, err := ParseShift(in)
		require.NoError(t, err, in)
		assert.Equal(t, ShiftB, s)
	}
	_, err := ParseShift("3")
	require.Error(t, err)

	assert.Equal(t, LabelA, ShiftA.Label())
	assert.Equal(t, LabelB, ShiftB.Label())
	assert.False(t, Shift(0).Valid())
}

func TestShift_ValueScan(t *testing.T) {
	v, err := ShiftB.Value()
	require.NoError(t, err)
	assert.Equal(t, LabelB, v)

	_, err = Shift(0).Value()
	require.Error(t, err)

	var s Shift
	require.NoError(t, s.Scan(LabelA))
	assert.Equal(t, ShiftA, s)
	require.NoError(t, s.Scan([]byte(LabelB)))
	assert.Equal(t, ShiftB, s)
	require.Error(t, s.Scan(5))
	require.Error(t, s.Scan("3-я смена"))
}
