// Package report renders a shift summary: the engineers on shift and the
// journal rows in the order they happened. It produces the HTML mail body
// and a Word document.
package report

import (
	"fmt"

	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

// Row is one journal line of the report.
type Row struct {
	Time    string
	Content string
	Note    string
}

type Report struct {
	Slot      shiftclock.Slot
	Engineers []string
	Rows      []Row
}

const messageDateLayout = "02-01-2006"

// Subject is the mail subject, e.g. "Сводка - 2-я смена от 10-03-2024".
func Subject(r *Report) string {
	return fmt.Sprintf("Сводка - %s от %s", r.Slot.Shift.Label(), r.Slot.Date.Format(messageDateLayout))
}

// DefaultFileName is the suggested name of the exported document.
func DefaultFileName(r *Report) string {
	return fmt.Sprintf("Журнал_%s_%s.docx", r.Slot.Shift.Label(), r.Slot.Date.String())
}

// ContentType is the MIME type of the exported document.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
