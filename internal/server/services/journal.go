// Package services holds the server's business rules. JournalService guards
// the journal: rows of a (date, shift) slot may only change while that slot
// is the active one.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/dbx"
	"github.com/dmitrijs2005/shiftjournal/internal/logging"
	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

// DBProvider hands out a live database handle. *dbx.Keeper implements it.
type DBProvider interface {
	DB(ctx context.Context) (*sql.DB, error)
}

type JournalService struct {
	keeper      DBProvider
	repomanager repomanager.RepositoryManager
	clock       shiftclock.Clock
	pageSize    int
	logger      logging.Logger
}

func NewJournalService(keeper DBProvider, m repomanager.RepositoryManager, clock shiftclock.Clock,
	pageSize int, logger logging.Logger) *JournalService {
	if pageSize <= 0 {
		pageSize = common.DefaultPageSize
	}
	return &JournalService{
		keeper:      keeper,
		repomanager: m,
		clock:       clock,
		pageSize:    pageSize,
		logger:      logger,
	}
}

// Slot returns the slot that is active right now.
func (s *JournalService) Slot(_ context.Context) shiftclock.Slot {
	return shiftclock.Active(s.clock)
}

func (s *JournalService) authorize(slot shiftclock.Slot) error {
	active := shiftclock.Active(s.clock)
	if slot != active {
		return fmt.Errorf("%w: %s is not %s", common.ErrNotActiveShift, slot, active)
	}
	return nil
}

func validateSlot(slot shiftclock.Slot) error {
	if !slot.Shift.Valid() || slot.Date.IsZero() {
		return fmt.Errorf("%w: bad slot %v", common.ErrValidation, slot)
	}
	return nil
}

// persistence marks repository failures on writes. Sentinels the caller
// needs to see (not found, wrong shift) pass through.
func persistence(op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) ||
		errors.Is(err, common.ErrNotActiveShift) ||
		errors.Is(err, common.ErrValidation) ||
		errors.Is(err, common.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", common.ErrPersistence, op, err)
}

// ListEntries returns the slot's rows in the order they happened: on a night
// shift, times after midnight come after the evening ones.
func (s *JournalService) ListEntries(ctx context.Context, slot shiftclock.Slot) ([]*models.Entry, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	db, err := s.keeper.DB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.repomanager.Entries(db).ListBySlot(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return entryLess(slot.Shift, rows[i], rows[j])
	})
	return rows, nil
}

func entryLess(shift shiftclock.Shift, a, b *models.Entry) bool {
	ta, errA := shiftclock.ParseClockTime(a.Time)
	tb, errB := shiftclock.ParseClockTime(b.Time)
	if errA != nil || errB != nil {
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.ID < b.ID
	}
	if ta != tb {
		return shiftclock.OccurrenceLess(shift, ta, tb)
	}
	return a.ID < b.ID
}

func (s *JournalService) InsertEntry(ctx context.Context, slot shiftclock.Slot, at, content, note string) (int64, error) {
	if err := validateSlot(slot); err != nil {
		return 0, err
	}
	if err := s.authorize(slot); err != nil {
		return 0, err
	}
	ct, err := shiftclock.ParseClockTime(strings.TrimSpace(at))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	db, err := s.keeper.DB(ctx)
	if err != nil {
		return 0, err
	}

	e := &models.Entry{
		Date:    slot.Date,
		Shift:   slot.Shift,
		Time:    ct.String(),
		Content: strings.TrimSpace(content),
		Note:    strings.TrimSpace(note),
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		id, err := s.repomanager.Entries(tx).Create(ctx, e)
		if err != nil {
			return persistence("insert entry", err)
		}
		e.ID = id
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "insert entry failed", "slot", slot.String(), "error", err)
		return 0, err
	}

	s.logger.Info(ctx, "entry inserted", "id", e.ID, "slot", slot.String())
	return e.ID, nil
}

// UpdateEntry sets one field of an existing row. The row is locked and its
// slot compared to the active slot inside the same transaction.
func (s *JournalService) UpdateEntry(ctx context.Context, id int64, field models.EntryField, value string) error {
	if _, err := field.Column(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	value = strings.TrimSpace(value)
	if field == models.FieldTime {
		ct, err := shiftclock.ParseClockTime(value)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
		value = ct.String()
	}

	db, err := s.keeper.DB(ctx)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Entries(tx)
		e, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return persistence("load entry", err)
		}
		if err := s.authorize(e.Slot()); err != nil {
			return err
		}
		if err := repo.UpdateField(ctx, id, field, value); err != nil {
			return persistence("update entry", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn(ctx, "update entry rejected", "id", id, "field", field.String(), "error", err)
		return err
	}

	s.logger.Info(ctx, "entry updated", "id", id, "field", field.String())
	return nil
}

// DeleteEntry removes a row. Callers must pass confirmed=true after asking
// the operator; otherwise common.ErrConfirmationRequired is returned and
// nothing is touched.
func (s *JournalService) DeleteEntry(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return common.ErrConfirmationRequired
	}

	db, err := s.keeper.DB(ctx)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Entries(tx)
		e, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return persistence("load entry", err)
		}
		if err := s.authorize(e.Slot()); err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return persistence("delete entry", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn(ctx, "delete entry rejected", "id", id, "error", err)
		return err
	}

	s.logger.Info(ctx, "entry deleted", "id", id)
	return nil
}

func (s *JournalService) ListAssignments(ctx context.Context, slot shiftclock.Slot) ([]*models.Assignment, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	db, err := s.keeper.DB(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.repomanager.Assignments(db).ListBySlot(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return res, nil
}

// AddAssignment records that name worked slot. Adding the same name twice is
// a no-op reported by added=false.
func (s *JournalService) AddAssignment(ctx context.Context, slot shiftclock.Slot, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("%w: engineer name is empty", common.ErrValidation)
	}
	if err := validateSlot(slot); err != nil {
		return false, err
	}
	if err := s.authorize(slot); err != nil {
		return false, err
	}

	db, err := s.keeper.DB(ctx)
	if err != nil {
		return false, err
	}

	var added bool
	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		added, err = s.repomanager.Assignments(tx).Add(ctx, slot, name)
		if err != nil {
			return persistence("add assignment", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.logger.Info(ctx, "assignment added", "slot", slot.String(), "name", name, "added", added)
	return added, nil
}

func (s *JournalService) RemoveAssignment(ctx context.Context, slot shiftclock.Slot, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: engineer name is empty", common.ErrValidation)
	}
	if err := validateSlot(slot); err != nil {
		return err
	}
	if err := s.authorize(slot); err != nil {
		return err
	}

	db, err := s.keeper.DB(ctx)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Assignments(tx).Remove(ctx, slot, name); err != nil {
			return persistence("remove assignment", err)
		}
		return nil
	})
}

func (s *JournalService) ListDirectory(ctx context.Context) ([]*models.Engineer, error) {
	db, err := s.keeper.DB(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.repomanager.Engineers(db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list directory: %w", err)
	}
	return res, nil
}

func directoryArgs(fullName, tabNumber string) (string, string, error) {
	fullName, tabNumber = strings.TrimSpace(fullName), strings.TrimSpace(tabNumber)
	if fullName == "" || tabNumber == "" {
		return "", "", fmt.Errorf("%w: full name and tab number are required", common.ErrValidation)
	}
	return fullName, tabNumber, nil
}

// AddDirectoryEntry is not tied to any shift.
func (s *JournalService) AddDirectoryEntry(ctx context.Context, fullName, tabNumber string) (int64, error) {
	fullName, tabNumber, err := directoryArgs(fullName, tabNumber)
	if err != nil {
		return 0, err
	}
	db, err := s.keeper.DB(ctx)
	if err != nil {
		return 0, err
	}

	var id int64
	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		id, err = s.repomanager.Engineers(tx).Add(ctx, fullName, tabNumber)
		if err != nil {
			return persistence("add directory entry", err)
		}
		return nil
	})
	return id, err
}

func (s *JournalService) RemoveDirectoryEntry(ctx context.Context, fullName, tabNumber string) error {
	fullName, tabNumber, err := directoryArgs(fullName, tabNumber)
	if err != nil {
		return err
	}
	db, err := s.keeper.DB(ctx)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Engineers(tx).Remove(ctx, fullName, tabNumber); err != nil {
			return persistence("remove directory entry", err)
		}
		return nil
	})
}

// SearchEntries returns one page of rows matching every non-empty filter
// field. A full page is reported as HasMore.
func (s *JournalService) SearchEntries(ctx context.Context, f models.SearchFilter) (*models.SearchPage, error) {
	if f.PageSize <= 0 {
		f.PageSize = s.pageSize
	}
	if f.Page < 0 {
		f.Page = 0
	}

	db, err := s.keeper.DB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.repomanager.Entries(db).Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}

	return &models.SearchPage{
		Rows:    rows,
		Page:    f.Page,
		HasMore: len(rows) == f.PageSize,
		HasPrev: f.Page > 0,
	}, nil
}
