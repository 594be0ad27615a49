package models

import "time"

// Event represents a recorded activity event such as link_generated or
// activity_viewed.
type Event struct {
	// ID is a random uuid assigned at emit time.
	ID string `gorm:"primaryKey;size:36"`
	// Name is the event name.
	Name string `gorm:"index;size:100;not null"`
	// UserID is the acting user.
	UserID uint64 `gorm:"index"`
	// ObjectID is the activity instance the event refers to.
	ObjectID uint64 `gorm:"index"`

	CreatedAt time.Time
}
