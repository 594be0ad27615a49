// Package task manages the asynchronous folder-creation jobs and answers
// whether an activity's folders are usable yet.
package task

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
)

// TypeCreateFolders names the job that creates the remote folder structure
// of a new activity.
const TypeCreateFolders = "collaborativefolders_create"

// CreateFoldersPayload is the input of a folder-creation job.
type CreateFoldersPayload struct {
	// CMID is the course-module id of the activity whose folders to create.
	CMID uint64 `json:"cmid"`
}

// EnqueueCreateFolders records a folder-creation job for an activity. The row
// stays until the worker finished the job; its presence blocks link
// generation for the activity.
func EnqueueCreateFolders(db *gorm.DB, cmid uint64) error {
	payload, err := json.Marshal(CreateFoldersPayload{CMID: cmid})
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	t := models.PendingTask{
		ID:      uuid.NewString(),
		Type:    TypeCreateFolders,
		Payload: payload,
	}

	if err := db.Create(&t).Error; err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	return nil
}

// Tracker reports the provisioning status of activities.
type Tracker struct {
	db *gorm.DB
}

// NewTracker creates a new tracker.
func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db}
}

// FoldersCreated reports whether the folders of an activity exist. They do
// unless a folder-creation job for the activity's course-module id is still
// pending. Payloads that do not parse are skipped; a broken row must not
// unblock an unrelated activity.
func (t *Tracker) FoldersCreated(activity *models.Activity) (bool, error) {
	var tasks []models.PendingTask

	err := t.db.Where("type = ?", TypeCreateFolders).Find(&tasks).Error
	if err != nil {
		return false, fmt.Errorf("failed to load pending tasks: %w", err)
	}

	for i := range tasks {
		var payload CreateFoldersPayload
		if err := json.Unmarshal(tasks[i].Payload, &payload); err != nil {
			continue
		}

		if payload.CMID == activity.CMID {
			return false, nil
		}
	}

	return true, nil
}
