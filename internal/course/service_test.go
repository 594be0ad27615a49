package course

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Course{}, &models.Group{}, &models.UserGroup{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedGroups(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&models.Course{ID: 1, FullName: "Demo course"}).Error)

	groups := []models.Group{
		{ID: 10, CourseID: 1, GroupingID: 5, Name: "Group A"},
		{ID: 11, CourseID: 1, GroupingID: 5, Name: "Group B"},
		{ID: 12, CourseID: 1, GroupingID: 6, Name: "Other grouping"},
	}
	for i := range groups {
		require.NoError(t, db.Create(&groups[i]).Error)
	}

	memberships := []models.UserGroup{
		{UserID: 1, GroupID: 10},
		{UserID: 2, GroupID: 11},
		{UserID: 3, GroupID: 11},
		{UserID: 3, GroupID: 10},
		{UserID: 4, GroupID: 12},
	}
	for i := range memberships {
		require.NoError(t, db.Create(&memberships[i]).Error)
	}
}

func TestCurrentGroupOf(t *testing.T) {
	db := setupTestDB(t)
	seedGroups(t, db)
	s := NewService(db)

	activity := &models.Activity{ID: 7, CourseID: 1, GroupMode: true, GroupingID: 5}

	testCases := []struct {
		name     string
		userID   uint64
		expected uint64 // 0 = no group
	}{
		{"single membership", 1, 10},
		{"other group", 2, 11},
		{"multiple memberships resolve to oldest group", 3, 10},
		{"membership outside grouping does not count", 4, 0},
		{"no membership at all", 99, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			group, err := s.CurrentGroupOf(tc.userID, activity)
			require.NoError(t, err)

			if tc.expected == 0 {
				assert.Nil(t, group)
				return
			}

			require.NotNil(t, group)
			assert.Equal(t, tc.expected, group.ID)
		})
	}
}

func TestAllGroups(t *testing.T) {
	db := setupTestDB(t)
	seedGroups(t, db)
	s := NewService(db)

	groups, err := s.AllGroups(&models.Activity{ID: 7, CourseID: 1, GroupingID: 5})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, uint64(10), groups[0].ID)
	assert.Equal(t, uint64(11), groups[1].ID)
}
