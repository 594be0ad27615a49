package models

import "time"

// RemoteToken stores a user's OAuth2 token for the remote storage service
// together with the remote account it belongs to. One row per user; logout
// deletes the row.
type RemoteToken struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"uniqueIndex;not null"`
	// RemoteUserID is the account name on the remote storage service.
	RemoteUserID string `gorm:"size:255"`
	AccessToken  string `gorm:"size:2048"`
	RefreshToken string `gorm:"size:2048"`
	Expiry       time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
