package models

import "github.com/dmitrijs2005/shiftjournal/internal/shiftclock"

// Assignment records that an engineer worked a given slot.
type Assignment struct {
	ID    int64
	Date  shiftclock.Date
	Shift shiftclock.Shift
	Name  string
}

// Engineer is a directory record.
type Engineer struct {
	ID        int64
	FullName  string
	TabNumber string
}
