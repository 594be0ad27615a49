package models

// Course represents a course of the learning platform.
// Only the fields the activity page needs are mirrored here.
type Course struct {
	ID       uint64 `gorm:"primaryKey"`
	FullName string `gorm:"size:255;not null"`
}
