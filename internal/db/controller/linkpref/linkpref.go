// Package linkpref stores the per-user link preference for an activity
// instance: the issued access link and the chosen folder display name.
// Link and name are independent sub-keys of one row.
package linkpref

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
)

const (
	userInstanceQueryPattern = "user_id = ? AND instance_id = ?"
)

var (
	// ErrNotFound is returned when no preference row exists for the user and instance.
	ErrNotFound = errors.New("link preference not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrEmptyLink is returned when attempting to store an empty link.
	ErrEmptyLink = errors.New("link cannot be empty")
	// ErrEmptyName is returned when attempting to store an empty name.
	ErrEmptyName = errors.New("name cannot be empty")
)

// Get retrieves the preference for a user and instance.
func Get(db *gorm.DB, userID, instanceID uint64) (*models.LinkPreference, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var pref models.LinkPreference
	result := db.Where(userInstanceQueryPattern, userID, instanceID).First(&pref)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}

	return &pref, nil
}

// SetLink upserts the link sub-key. An existing chosen name is left untouched.
func SetLink(db *gorm.DB, userID, instanceID uint64, link string) error {
	if db == nil {
		return ErrDBNil
	}
	if link == "" {
		return ErrEmptyLink
	}

	return upsert(db, userID, instanceID, "link", link)
}

// SetName upserts the name sub-key. An existing issued link is left untouched.
func SetName(db *gorm.DB, userID, instanceID uint64, name string) error {
	if db == nil {
		return ErrDBNil
	}
	if name == "" {
		return ErrEmptyName
	}

	return upsert(db, userID, instanceID, "name", name)
}

// ResetName clears the name sub-key only. A previously issued link survives
// an explicit reset. Resetting an absent row is a no-op.
func ResetName(db *gorm.DB, userID, instanceID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.LinkPreference{}).
		Where(userInstanceQueryPattern, userID, instanceID).
		Update("name", "")

	return result.Error
}

// upsert updates a single column of the preference row, creating the row
// when it does not exist yet.
func upsert(db *gorm.DB, userID, instanceID uint64, column, value string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var pref models.LinkPreference

		err := tx.Where(userInstanceQueryPattern, userID, instanceID).First(&pref).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			pref = models.LinkPreference{
				UserID:     userID,
				InstanceID: instanceID,
			}

			switch column {
			case "link":
				pref.Link = value
			case "name":
				pref.Name = value
			}

			return tx.Create(&pref).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&pref).Update(column, value).Error
	})
}
