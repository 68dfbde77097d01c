package repositories

import (
	"context"
	"time"

	"loanhub-portal/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session row
func (r *sessionRepository) Create(ctx context.Context, session *models.PortalSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByID gets a session by its id
func (r *sessionRepository) GetByID(ctx context.Context, id string) (*models.PortalSession, error) {
	var session models.PortalSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes a session row; deleting an absent row is not an error
func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.PortalSession{}, "id = ?", id).Error
}

// DeleteExpired removes all sessions that expired before the given time
func (r *sessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&models.PortalSession{})
	return result.RowsAffected, result.Error
}

// Count returns the number of persisted sessions
func (r *sessionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PortalSession{}).Count(&count).Error
	return count, err
}
