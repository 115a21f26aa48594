// Package archives tracks shift reports uploaded to object storage.
package archives

import (
	"context"

	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

type Repository interface {
	Create(ctx context.Context, a *models.ReportArchive) error
	MarkUploaded(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.ReportArchive, error)
	ListBySlot(ctx context.Context, slot shiftclock.Slot) ([]*models.ReportArchive, error)
}
