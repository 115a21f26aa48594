// Package engineers provides the engineer directory (engineers_info table).
package engineers

import (
	"context"

	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Engineer, error)
	Add(ctx context.Context, fullName, tabNumber string) (int64, error)
	Remove(ctx context.Context, fullName, tabNumber string) error
}
