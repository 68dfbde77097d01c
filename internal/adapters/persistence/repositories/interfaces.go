package repositories

import (
	"context"
	"time"

	"loanhub-portal/internal/adapters/persistence/models"
)

// SessionRepository defines session store operations
type SessionRepository interface {
	Create(ctx context.Context, session *models.PortalSession) error
	GetByID(ctx context.Context, id string) (*models.PortalSession, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}
