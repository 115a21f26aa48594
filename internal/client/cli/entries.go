package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/shiftjournal/internal/api"
	"github.com/dmitrijs2005/shiftjournal/internal/client/services"
	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

var timeNow = time.Now

const voiceCommand = "!voice"

func (a *App) Now(ctx context.Context) error {
	active, err := a.journal.ActiveSlot(ctx)
	if err != nil {
		return err
	}
	printlnFn("Active:  ", active.String())
	printlnFn("Selected:", a.session.Slot().String())
	return nil
}

// Today selects the active slot.
func (a *App) Today(ctx context.Context) error {
	active, err := a.journal.ActiveSlot(ctx)
	if err != nil {
		return err
	}
	a.session.Select(active)
	return nil
}

func (a *App) SelectDate(_ context.Context, arg string) error {
	d, err := shiftclock.ParseDate(arg)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	a.session.SetDate(d)
	return nil
}

func (a *App) SelectShift(_ context.Context, arg string) error {
	s, err := shiftclock.ParseShift(arg)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	a.session.SetShift(s)
	return nil
}

// requireEditable fails early when the selection is not the active slot.
func (a *App) requireEditable(ctx context.Context) error {
	active, err := a.journal.ActiveSlot(ctx)
	if err != nil {
		return err
	}
	if !a.session.Editable(active) {
		return common.ErrNotActiveShift
	}
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0055B3"))

func entriesTable(entries []api.Entry, withSlot bool) string {
	headers := []string{"ID", "Время", "Содержание", "Примечание"}
	if withSlot {
		headers = []string{"ID", "Дата", "Смена", "Время", "Содержание", "Примечание"}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})

	for _, e := range entries {
		id := strconv.FormatInt(e.ID, 10)
		if withSlot {
			t.Row(id, e.Date.String(), e.Shift.Label(), e.Time, e.Content, e.Note)
		} else {
			t.Row(id, e.Time, e.Content, e.Note)
		}
	}
	return t.String()
}

func (a *App) List(ctx context.Context) error {
	slot := a.session.Slot()
	entries, err := a.journal.Entries(ctx, slot)
	if err != nil {
		return err
	}

	title := slot.String()
	if active, err := a.journal.ActiveSlot(ctx); err == nil && !a.session.Editable(active) {
		title += " (read-only)"
	}
	printlnFn(headerStyle.Render(title))

	if len(entries) == 0 {
		printlnFn("No entries")
		return nil
	}
	printlnFn(entriesTable(entries, false))
	return nil
}

// readField reads one field value. Typing !voice starts dictation; ok is
// false when dictation failed and the field must stay as it was.
func (a *App) readField(ctx context.Context, prompt string, multiline bool) (value string, ok bool, err error) {
	if multiline {
		value, err = getMultiline(a.reader, prompt+" (or "+voiceCommand+")", a.out)
	} else {
		value, err = getSimpleText(a.reader, prompt+" (or "+voiceCommand+")", a.out)
	}
	if err != nil {
		return "", false, err
	}
	if strings.TrimSpace(value) != voiceCommand {
		return value, true, nil
	}

	text, err := a.dictate(ctx)
	if err != nil {
		printlnFn("transcription error:", err.Error())
		return "", false, nil
	}
	printlnFn("Recognised:", text)
	return text, true, nil
}

func (a *App) Add(ctx context.Context) error {
	if err := a.requireEditable(ctx); err != nil {
		return err
	}
	slot := a.session.Slot()

	now := shiftclock.ClockTimeOf(timeNow()).String()
	at, err := getSimpleText(a.reader, withDefault("Time (HH:MM)", now), a.out)
	if err != nil {
		return err
	}
	if at == "" {
		at = now
	}

	var content string
	for {
		v, ok, err := a.readField(ctx, "Content", true)
		if err != nil {
			return err
		}
		if ok && strings.TrimSpace(v) != "" {
			content = v
			break
		}
		if ok {
			printlnFn("Content must not be empty")
		}
	}

	note, ok, err := a.readField(ctx, "Note", false)
	if err != nil {
		return err
	}
	if !ok {
		note = ""
	}

	id, err := a.journal.AddEntry(ctx, slot, at, content, note)
	if err != nil {
		return err
	}
	a.logger.Info(ctx, "entry added", "id", id, "slot", slot.String())
	printlnFn(fmt.Sprintf("Added entry #%d", id))
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad entry id %q", common.ErrValidation, s)
	}
	return id, nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("Usage: edit <id> <time|content|note>")
		return nil
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	field := strings.ToLower(args[1])
	switch field {
	case services.FieldTime, services.FieldContent, services.FieldNote:
	default:
		return fmt.Errorf("%w: unknown field %q", common.ErrValidation, field)
	}

	if err := a.requireEditable(ctx); err != nil {
		return err
	}

	var value string
	if field == services.FieldTime {
		value, err = getSimpleText(a.reader, "New time (HH:MM)", a.out)
		if err != nil {
			return err
		}
	} else {
		var ok bool
		value, ok, err = a.readField(ctx, "New "+field, field == services.FieldContent)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	if err := a.journal.EditEntry(ctx, id, field, value); err != nil {
		return err
	}
	printlnFn("Saved")
	return nil
}

// Delete asks for confirmation and only then calls the server with the
// confirmed flag set.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: delete <id>")
		return nil
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.requireEditable(ctx); err != nil {
		return err
	}

	ok, err := getConfirmation(a.reader, fmt.Sprintf("Delete entry #%d?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.journal.DeleteEntry(ctx, id, true); err != nil {
		return err
	}
	a.logger.Info(ctx, "entry deleted", "id", id)
	printlnFn("Deleted")
	return nil
}
