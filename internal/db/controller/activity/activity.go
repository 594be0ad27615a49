// Package activity provides read access to collaborative-folder activity
// instances and their configuration.
package activity

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
)

var (
	// ErrNotFound is returned when an activity instance does not exist.
	ErrNotFound = errors.New("activity instance not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves an activity instance by id, including its course.
func Get(db *gorm.DB, instanceID uint64) (*models.Activity, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var act models.Activity
	result := db.Preload("Course").First(&act, instanceID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}

	return &act, nil
}

// GetByCMID retrieves an activity instance by its course-module id.
func GetByCMID(db *gorm.DB, cmid uint64) (*models.Activity, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var act models.Activity
	result := db.Preload("Course").Where("cmid = ?", cmid).First(&act)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}

	return &act, nil
}
