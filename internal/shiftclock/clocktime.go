package shiftclock

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	ErrEmptyTime   = errors.New("time is empty")
	ErrInvalidTime = errors.New("time must be HH:MM")
)

var clockTimeRe = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d(?::[0-5]\d)?$`)

// ClockTime is an HH:MM time of day.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime validates and parses "HH:MM". A trailing ":SS" is accepted
// and dropped.
func ParseClockTime(s string) (ClockTime, error) {
	if s == "" {
		return ClockTime{}, ErrEmptyTime
	}
	if !clockTimeRe.MatchString(s) {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return ClockTime{
		Hour:   int(s[0]-'0')*10 + int(s[1]-'0'),
		Minute: int(s[3]-'0')*10 + int(s[4]-'0'),
	}, nil
}

// ClockTimeOf returns the HH:MM part of t.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) Before(o ClockTime) bool {
	return c.Minutes() < o.Minutes()
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
