package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func (a *App) Engineers(ctx context.Context) error {
	slot := a.session.Slot()
	list, err := a.journal.Engineers(ctx, slot)
	if err != nil {
		return err
	}
	printlnFn(headerStyle.Render("Engineers on " + slot.String()))
	if len(list) == 0 {
		printlnFn("Nobody assigned")
		return nil
	}
	for _, e := range list {
		printlnFn(" •", e.Name)
	}
	return nil
}

func (a *App) Assign(ctx context.Context, name string) error {
	if err := a.requireEditable(ctx); err != nil {
		return err
	}
	added, err := a.journal.Assign(ctx, a.session.Slot(), name)
	if err != nil {
		return err
	}
	if !added {
		printlnFn(name, "is already assigned")
		return nil
	}
	printlnFn("Assigned", name)
	return nil
}

func (a *App) Unassign(ctx context.Context, name string) error {
	if err := a.requireEditable(ctx); err != nil {
		return err
	}
	if err := a.journal.Unassign(ctx, a.session.Slot(), name); err != nil {
		return err
	}
	printlnFn("Removed", name)
	return nil
}

// Directory lists the engineer directory, or with "add"/"remove" edits it.
func (a *App) Directory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.listDirectory(ctx)
	}
	switch args[0] {
	case "add":
		return a.addToDirectory(ctx)
	case "remove":
		return a.removeFromDirectory(ctx)
	default:
		printlnFn("Usage: directory [add|remove]")
		return nil
	}
}

func (a *App) listDirectory(ctx context.Context) error {
	list, err := a.journal.Directory(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("Directory is empty")
		return nil
	}

	t := table.New().Border(lipgloss.NormalBorder()).Headers("ID", "ФИО", "Таб. №")
	for _, e := range list {
		t.Row(strconv.FormatInt(e.ID, 10), e.FullName, e.TabNumber)
	}
	printlnFn(t.String())
	return nil
}

func (a *App) readDirectoryEntry() (string, string, error) {
	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return "", "", err
	}
	tab, err := getSimpleText(a.reader, "Tab number", a.out)
	if err != nil {
		return "", "", err
	}
	return name, tab, nil
}

func (a *App) addToDirectory(ctx context.Context) error {
	name, tab, err := a.readDirectoryEntry()
	if err != nil {
		return err
	}
	id, err := a.journal.AddToDirectory(ctx, name, tab)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Added %s (#%d)", name, id))
	return nil
}

func (a *App) removeFromDirectory(ctx context.Context) error {
	name, tab, err := a.readDirectoryEntry()
	if err != nil {
		return err
	}
	ok, err := getConfirmation(a.reader, fmt.Sprintf("Remove %s (%s) from the directory?", name, tab), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.journal.RemoveFromDirectory(ctx, name, tab); err != nil {
		return err
	}
	printlnFn("Removed", name)
	return nil
}
