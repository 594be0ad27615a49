// Package course provides access to courses, groups and group memberships.
package course

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
)

// Service reads group information for activities.
type Service struct {
	db *gorm.DB
}

// NewService creates a new course service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CurrentGroupOf returns the group of a user within an activity's grouping.
// When the user belongs to several participating groups the oldest membership
// wins. Returns nil when the user is in no participating group.
func (s *Service) CurrentGroupOf(userID uint64, activity *models.Activity) (*models.Group, error) {
	var group models.Group

	err := s.db.Model(&models.Group{}).
		Joins("JOIN user_groups ON user_groups.group_id = groups.id").
		Where("user_groups.user_id = ?", userID).
		Where("groups.course_id = ?", activity.CourseID).
		Where("groups.grouping_id = ?", activity.GroupingID).
		Order("groups.id asc").
		First(&group).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to resolve group of user %d: %w", userID, err)
	}

	return &group, nil
}

// AllGroups returns every group participating in an activity's grouping,
// ordered by id. Instance admins see one folder per group.
func (s *Service) AllGroups(activity *models.Activity) ([]models.Group, error) {
	var groups []models.Group

	err := s.db.Where("course_id = ? AND grouping_id = ?", activity.CourseID, activity.GroupingID).
		Order("id asc").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	return groups, nil
}
