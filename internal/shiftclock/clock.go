package shiftclock

import (
	"fmt"
	"time"
)

// Shift boundaries, as minutes since midnight.
var (
	DayStart   = ClockTime{Hour: 8, Minute: 30}
	NightStart = ClockTime{Hour: 20, Minute: 30}
)

// Slot is the (filing date, shift) pair that journal rows and assignments
// are keyed by.
type Slot struct {
	Date  Date
	Shift Shift
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %s", s.Date, s.Shift.Label())
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location (local time when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Resolve returns the slot that is active at now. Seconds and sub-seconds
// take part in the comparison: 08:29:59.999 still belongs to the night shift.
func Resolve(now time.Time) Slot {
	day := DateOf(now)
	since := time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second +
		time.Duration(now.Nanosecond())

	dayStart := time.Duration(DayStart.Minutes()) * time.Minute
	nightStart := time.Duration(NightStart.Minutes()) * time.Minute

	switch {
	case since >= dayStart && since < nightStart:
		return Slot{Date: day, Shift: ShiftA}
	case since >= nightStart:
		return Slot{Date: day, Shift: ShiftB}
	default:
		return Slot{Date: day.AddDays(-1), Shift: ShiftB}
	}
}

// Active resolves the slot for clock's current instant. It is evaluated on
// every call.
func Active(clock Clock) Slot {
	return Resolve(clock.Now())
}

// Rolled reports whether an entry time written during shift belongs to the
// post-midnight part of a night shift.
func Rolled(shift Shift, t ClockTime) bool {
	return shift == ShiftB && t.Before(DayStart)
}

// OccurrenceLess orders two entry times of the same slot by when they
// actually happened: post-midnight night-shift times come after the evening
// ones.
func OccurrenceLess(shift Shift, a, b ClockTime) bool {
	ra, rb := Rolled(shift, a), Rolled(shift, b)
	if ra != rb {
		return rb
	}
	return a.Before(b)
}
