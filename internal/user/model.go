package user

import (
	"context"

	"github.com/cduffaut/jobtrack/internal/models"
)

// Repository interface pour accéder aux données utilisateur
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
