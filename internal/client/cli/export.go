package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Export writes the selected slot's report. Usage: export [path] [--archive].
func (a *App) Export(ctx context.Context, args []string) error {
	var path string
	archive := false
	for _, arg := range args {
		switch {
		case arg == "--archive":
			archive = true
		case strings.HasPrefix(arg, "-"):
			printlnFn("Usage: export [path] [--archive]")
			return nil
		case path == "":
			path = arg
		default:
			printlnFn("Usage: export [path] [--archive]")
			return nil
		}
	}

	res, err := a.reports.Export(ctx, a.session.Slot(), path, archive)
	if res != nil {
		printlnFn("Saved", res.Path)
	}
	if err != nil {
		return err
	}
	if res.ArchiveID != "" {
		printlnFn("Archived as", res.ArchiveID)
	}
	return nil
}

func (a *App) Archives(ctx context.Context) error {
	list, err := a.reports.Archives(ctx, a.session.Slot())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No archived reports")
		return nil
	}

	t := table.New().Border(lipgloss.NormalBorder()).Headers("ID", "Created", "Status", "Download")
	for _, ar := range list {
		t.Row(ar.ID, ar.CreatedAt, ar.UploadStatus, ar.URL)
	}
	printlnFn(t.String())
	return nil
}

// Mail opens a draft of the selected slot's summary in the configured mail
// backend. The user sends it.
func (a *App) Mail(ctx context.Context) error {
	if len(a.config.Mail.To) == 0 {
		return errors.New("no recipients configured (mail.to)")
	}

	msg, err := a.reports.ComposeMail(ctx, a.session.Slot(), a.config.Mail.To, a.config.Mail.Cc)
	if err != nil {
		return err
	}

	d, err := a.newDrafter()
	if err != nil {
		return err
	}
	where, err := d.Draft(ctx, msg)
	if where != "" {
		printlnFn("Draft:", where)
	}
	if err != nil {
		return err
	}
	a.logger.Info(ctx, "mail draft created", "slot", a.session.Slot().String(), "location", where)
	return nil
}
