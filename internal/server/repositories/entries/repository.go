// Package entries provides access to the journal table.
package entries

import (
	"context"

	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

type Repository interface {
	ListBySlot(ctx context.Context, slot shiftclock.Slot) ([]*models.Entry, error)
	Create(ctx context.Context, e *models.Entry) (int64, error)
	GetForUpdate(ctx context.Context, id int64) (*models.Entry, error)
	UpdateField(ctx context.Context, id int64, field models.EntryField, value string) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f models.SearchFilter) ([]*models.Entry, error)
}
