package models

import "time"

// Group represents a course group. Groups belong to a course and optionally
// to a grouping; the activity's grouping decides which groups participate.
type Group struct {
	ID         uint64 `gorm:"primaryKey"`
	CourseID   uint64 `gorm:"index;not null"`
	GroupingID uint64 `gorm:"index"`
	Name       string `gorm:"size:255;not null"`
	// CreatedAt orders groups; the oldest membership wins when a user is in
	// several participating groups.
	CreatedAt time.Time
}
