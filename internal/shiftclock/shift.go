// Package shiftclock maps wall-clock instants to the (filing date, shift)
// pair a journal entry belongs to.
//
// Shift A covers 08:30–20:30 of a calendar day. Shift B starts at 20:30 and
// runs past midnight until 08:30; everything written during that window is
// filed under the date on which the shift started.
package shiftclock

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Shift identifies one of the two daily shifts.
type Shift int

const (
	ShiftA Shift = iota + 1
	ShiftB
)

// Labels persisted in the journal tables.
const (
	LabelA = "1-я смена"
	LabelB = "2-я смена"
)

// Label returns the stored representation of the shift.
func (s Shift) Label() string {
	switch s {
	case ShiftA:
		return LabelA
	case ShiftB:
		return LabelB
	default:
		return ""
	}
}

func (s Shift) String() string {
	switch s {
	case ShiftA:
		return "A"
	case ShiftB:
		return "B"
	default:
		return fmt.Sprintf("Shift(%d)", int(s))
	}
}

// Valid reports whether s is one of the known shifts.
func (s Shift) Valid() bool {
	return s == ShiftA || s == ShiftB
}

// ParseShift accepts the stored label as well as the short forms used on the
// command line (A/B, 1/2, day/night).
func ParseShift(v string) (Shift, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case LabelA, "a", "1", "day":
		return ShiftA, nil
	case LabelB, "b", "2", "night":
		return ShiftB, nil
	}
	return 0, fmt.Errorf("unknown shift %q", v)
}

// Value stores the shift as its label.
func (s Shift) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid shift %d", int(s))
	}
	return s.Label(), nil
}

// Scan reads a stored label.
func (s *Shift) Scan(src any) error {
	var v string
	switch t := src.(type) {
	case string:
		v = t
	case []byte:
		v = string(t)
	default:
		return fmt.Errorf("cannot scan %T into Shift", src)
	}
	parsed, err := ParseShift(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
