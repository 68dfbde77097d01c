package models

import (
	"time"

	"gorm.io/gorm"
)

// PortalSession represents the portal_sessions table. One row holds the two
// persisted session entries: the backend bearer token and the serialized
// session record. The record is stored as an opaque JSON blob and parsed on
// restore; a blob that fails to parse is discarded, not surfaced.
type PortalSession struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Token     string    `gorm:"size:512;not null" json:"-"`
	Record    string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
}

func (PortalSession) TableName() string {
	return "portal_sessions"
}

// IsExpired reports whether the session row is past its TTL.
func (s *PortalSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// AutoMigrate runs auto migration for the portal's own tables.
// Loan and user data live in the external backend; only session state is
// persisted here.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&PortalSession{},
	)
}
