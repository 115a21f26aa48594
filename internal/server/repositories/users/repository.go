// Package users stores journal operator accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
