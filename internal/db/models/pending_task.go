package models

import "time"

// PendingTask represents an asynchronous background job awaiting execution.
// The row is removed on completion: the presence of a folder-creation task
// for an activity means its folders are not usable yet.
type PendingTask struct {
	// ID is a random uuid assigned at enqueue time.
	ID string `gorm:"primaryKey;size:36"`
	// Type names the job, e.g. task.TypeCreateFolders.
	Type string `gorm:"index;size:100;not null"`
	// Payload is the job input as JSON; folder-creation payloads carry the
	// course-module id of the target activity.
	Payload []byte `gorm:"type:blob"`

	CreatedAt time.Time
}
