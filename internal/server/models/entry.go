// Package models defines server-side data models persisted in the database.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

// Entry is one journal row.
type Entry struct {
	ID      int64
	Date    shiftclock.Date
	Shift   shiftclock.Shift
	Time    string
	Content string
	Note    string
}

// Slot returns the (date, shift) the entry is filed under.
func (e *Entry) Slot() shiftclock.Slot {
	return shiftclock.Slot{Date: e.Date, Shift: e.Shift}
}

// EntryField names an editable column of a journal row.
type EntryField int

const (
	FieldTime EntryField = iota + 1
	FieldContent
	FieldNote
)

// Column returns the table column backing f.
func (f EntryField) Column() (string, error) {
	switch f {
	case FieldTime:
		return "time", nil
	case FieldContent:
		return "content", nil
	case FieldNote:
		return "note", nil
	}
	return "", fmt.Errorf("unknown entry field %d", int(f))
}

func (f EntryField) String() string {
	c, err := f.Column()
	if err != nil {
		return fmt.Sprintf("EntryField(%d)", int(f))
	}
	return c
}

// ParseEntryField maps a field name to EntryField.
func ParseEntryField(s string) (EntryField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "time":
		return FieldTime, nil
	case "content", "event", "text":
		return FieldContent, nil
	case "note", "notes", "comment":
		return FieldNote, nil
	}
	return 0, fmt.Errorf("unknown entry field %q", s)
}
