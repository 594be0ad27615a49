// Package models contains database model definitions.
package models

import "time"

// Activity represents one configured occurrence of the collaborative-folder
// activity within a course.
type Activity struct {
	// ID is the activity instance id.
	ID uint64 `gorm:"primaryKey"`
	// CMID is the course-module id referencing this instance from the course
	// layout. Pending folder-creation tasks carry it in their payload.
	CMID uint64 `gorm:"column:cmid;uniqueIndex;not null"`
	// CourseID references the owning course.
	CourseID uint64 `gorm:"not null"`
	// Course is the associated course.
	Course Course `gorm:"foreignKey:CourseID;references:ID;constraint:OnDelete:CASCADE"`
	// Name is the display name of the activity.
	Name string `gorm:"size:255;not null"`
	// TeacherAllowed indicates whether instance admins may access the folder.
	// Set by the activity owner at creation time.
	TeacherAllowed bool
	// GroupMode indicates whether the activity runs in group mode.
	GroupMode bool
	// GroupingID selects the grouping whose groups participate (group mode only).
	GroupingID uint64

	CreatedAt time.Time
	UpdatedAt time.Time
}
