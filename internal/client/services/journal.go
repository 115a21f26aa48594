package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shiftjournal/internal/api"
	"github.com/dmitrijs2005/shiftjournal/internal/client/client"
	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

// Editable entry fields.
const (
	FieldTime    = "time"
	FieldContent = "content"
	FieldNote    = "note"
)

// JournalService is the CLI's view of one journal: entries and engineers of
// a slot, the engineer directory and the archive filter.
type JournalService interface {
	ActiveSlot(ctx context.Context) (shiftclock.Slot, error)

	Entries(ctx context.Context, slot shiftclock.Slot) ([]api.Entry, error)
	AddEntry(ctx context.Context, slot shiftclock.Slot, at, content, note string) (int64, error)
	EditEntry(ctx context.Context, id int64, field, value string) error
	DeleteEntry(ctx context.Context, id int64, confirmed bool) error

	Engineers(ctx context.Context, slot shiftclock.Slot) ([]api.Assignment, error)
	Assign(ctx context.Context, slot shiftclock.Slot, name string) (bool, error)
	Unassign(ctx context.Context, slot shiftclock.Slot, name string) error

	Directory(ctx context.Context) ([]api.Engineer, error)
	AddToDirectory(ctx context.Context, fullName, tabNumber string) (int64, error)
	RemoveFromDirectory(ctx context.Context, fullName, tabNumber string) error

	Search(ctx context.Context, content, note string, page int) (*api.SearchEntriesResponse, error)
}

type journalService struct {
	client client.Client
}

func NewJournalService(c client.Client) JournalService {
	return &journalService{client: c}
}

func (s *journalService) ActiveSlot(ctx context.Context) (shiftclock.Slot, error) {
	return s.client.ActiveSlot(ctx)
}

func (s *journalService) Entries(ctx context.Context, slot shiftclock.Slot) ([]api.Entry, error) {
	return s.client.ListEntries(ctx, slot)
}

// AddEntry checks the time locally so a typo does not cost a round trip.
// The server validates again.
func (s *journalService) AddEntry(ctx context.Context, slot shiftclock.Slot, at, content, note string) (int64, error) {
	ct, err := shiftclock.ParseClockTime(strings.TrimSpace(at))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return s.client.InsertEntry(ctx, slot, ct.String(), content, note)
}

func (s *journalService) EditEntry(ctx context.Context, id int64, field, value string) error {
	switch field {
	case FieldTime:
		ct, err := shiftclock.ParseClockTime(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
		value = ct.String()
	case FieldContent, FieldNote:
	default:
		return fmt.Errorf("%w: unknown field %q", common.ErrValidation, field)
	}
	return s.client.UpdateEntry(ctx, id, field, value)
}

func (s *journalService) DeleteEntry(ctx context.Context, id int64, confirmed bool) error {
	return s.client.DeleteEntry(ctx, id, confirmed)
}

func (s *journalService) Engineers(ctx context.Context, slot shiftclock.Slot) ([]api.Assignment, error) {
	return s.client.ListAssignments(ctx, slot)
}

func (s *journalService) Assign(ctx context.Context, slot shiftclock.Slot, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("%w: engineer name is empty", common.ErrValidation)
	}
	return s.client.AddAssignment(ctx, slot, name)
}

func (s *journalService) Unassign(ctx context.Context, slot shiftclock.Slot, name string) error {
	return s.client.RemoveAssignment(ctx, slot, strings.TrimSpace(name))
}

func (s *journalService) Directory(ctx context.Context) ([]api.Engineer, error) {
	return s.client.ListDirectory(ctx)
}

func (s *journalService) AddToDirectory(ctx context.Context, fullName, tabNumber string) (int64, error) {
	fullName, tabNumber = strings.TrimSpace(fullName), strings.TrimSpace(tabNumber)
	if fullName == "" || tabNumber == "" {
		return 0, fmt.Errorf("%w: full name and tab number are required", common.ErrValidation)
	}
	return s.client.AddDirectoryEntry(ctx, fullName, tabNumber)
}

func (s *journalService) RemoveFromDirectory(ctx context.Context, fullName, tabNumber string) error {
	return s.client.RemoveDirectoryEntry(ctx, strings.TrimSpace(fullName), strings.TrimSpace(tabNumber))
}

func (s *journalService) Search(ctx context.Context, content, note string, page int) (*api.SearchEntriesResponse, error) {
	if page < 0 {
		page = 0
	}
	return s.client.SearchEntries(ctx, api.SearchEntriesRequest{
		Content:  content,
		Note:     note,
		Page:     page,
		PageSize: common.DefaultPageSize,
	})
}
