// Package auth provides authentication and the capability checks of the
// learning platform.
package auth

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
)

// Service provides capability checks against the database.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// HasCapability checks if a user holds a capability for an activity
// instance. A grant scoped to instance 0 applies to every instance.
func (s *Service) HasCapability(userID, instanceID uint64, capability string) (bool, error) {
	var count int64

	err := s.db.Table("capabilities").
		Where("user_id = ? AND name = ? AND (instance_id = ? OR instance_id = 0)",
			userID, capability, instanceID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check capability: %w", err)
	}

	return count > 0, nil
}

// GrantCapability grants a capability to a user for an instance (0 = all).
// Granting an already-held capability is a no-op.
func (s *Service) GrantCapability(userID, instanceID uint64, capability string) error {
	has, err := s.HasCapability(userID, instanceID, capability)
	if err != nil {
		return err
	}

	if has {
		return nil
	}

	return s.db.Create(&models.Capability{
		UserID:     userID,
		InstanceID: instanceID,
		Name:       capability,
	}).Error
}
