package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fumiama/go-docx"
)

const headingColor = "0055B3"

// Column widths of the entries table, in twips.
var columnWidths = []int64{1200, 5000, 3000}

var columnTitles = []string{"Время", "Содержание", "Примечание"}

// WriteDOCX writes r as a Word document: a title, the engineers as a
// bulleted list and the rows as a bordered three-column table.
func WriteDOCX(w io.Writer, r *Report) error {
	if _, err := buildDocument(r).WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

// DOCX returns the document as bytes.
func DOCX(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDOCX(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildDocument(r *Report) *docx.Docx {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(fmt.Sprintf("Журнал смены: %s, Дата: %s",
		r.Slot.Shift.Label(), r.Slot.Date.Format(messageDateLayout))).
		Bold().Size("32").Color(headingColor)

	doc.AddParagraph().AddText("Инженеры на смене:").Bold().Size("26").Color(headingColor)
	for _, name := range r.Engineers {
		doc.AddParagraph().AddText("•\t" + name)
	}

	doc.AddParagraph().AddText("Записи журнала:").Bold().Size("26").Color(headingColor)

	tbl := doc.AddTableTwips(make([]int64, len(r.Rows)+1), columnWidths, 0, nil)
	for i, title := range columnTitles {
		tbl.TableRows[0].TableCells[i].AddParagraph().AddText(title).Bold().Color(headingColor)
	}
	for i, row := range r.Rows {
		cells := tbl.TableRows[i+1].TableCells
		cells[0].AddParagraph().AddText(row.Time)
		cells[1].AddParagraph().AddText(row.Content)
		cells[2].AddParagraph().AddText(row.Note)
	}

	return doc
}
