// Package refreshtokens declares storage for the opaque refresh tokens handed
// out at login.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
)

// Repository issues, looks up and revokes refresh tokens.
type Repository interface {
	// Create stores token for userID, valid until now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrorNotFound when the token is unknown.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	Delete(ctx context.Context, token string) error

	// DeleteForUser revokes every token of userID and returns how many were removed.
	DeleteForUser(ctx context.Context, userID string) (int64, error)
}
