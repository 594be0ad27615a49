package models

import "time"

// LinkPreference stores, per user and activity instance, the issued access
// link and the chosen folder display name. Link and Name are independent
// sub-keys: updating one never clears the other, and an explicit reset only
// clears the name.
type LinkPreference struct {
	ID uint64 `gorm:"primaryKey"`
	// UserID and InstanceID form the logical key.
	UserID     uint64 `gorm:"index:idx_user_instance,unique;not null"`
	InstanceID uint64 `gorm:"index:idx_user_instance,unique;not null"`
	// Link is the issued access link ("" = none issued yet).
	Link string `gorm:"size:1024"`
	// Name is the chosen folder display name ("" = none chosen yet).
	Name string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
