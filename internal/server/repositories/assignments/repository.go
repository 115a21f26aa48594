// Package assignments stores which engineers worked a shift (engineers table).
package assignments

import (
	"context"

	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

type Repository interface {
	ListBySlot(ctx context.Context, slot shiftclock.Slot) ([]*models.Assignment, error)
	Add(ctx context.Context, slot shiftclock.Slot, name string) (bool, error)
	Remove(ctx context.Context, slot shiftclock.Slot, name string) error
}
