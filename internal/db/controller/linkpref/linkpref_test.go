package linkpref

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.LinkPreference{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		userID        uint64
		instanceID    uint64
		seed          *models.LinkPreference
		expectedError error
		expectedLink  string
		expectedName  string
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			userID:        1,
			instanceID:    1,
			expectedError: ErrDBNil,
		},
		{
			name:          "preference not found",
			dbParam:       db,
			userID:        1,
			instanceID:    1,
			expectedError: ErrNotFound,
		},
		{
			name:       "successful get",
			dbParam:    db,
			userID:     1,
			instanceID: 7,
			seed: &models.LinkPreference{
				UserID: 1, InstanceID: 7,
				Link: "https://oc.example.org/f/1", Name: "My Folder",
			},
			expectedLink: "https://oc.example.org/f/1",
			expectedName: "My Folder",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM link_preferences")
			}

			if tc.seed != nil {
				require.NoError(t, tc.dbParam.Create(tc.seed).Error)
			}

			pref, err := Get(tc.dbParam, tc.userID, tc.instanceID)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, pref)
			} else {
				require.NoError(t, err)
				require.NotNil(t, pref)
				assert.Equal(t, tc.expectedLink, pref.Link)
				assert.Equal(t, tc.expectedName, pref.Name)
			}
		})
	}
}

func TestSetLinkAndSetNameDoNotClobber(t *testing.T) {
	db := setupTestDB(t)

	// store link first, name second: both must survive
	require.NoError(t, SetLink(db, 1, 7, "https://oc.example.org/f/1"))
	require.NoError(t, SetName(db, 1, 7, "Project Folder"))

	pref, err := Get(db, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "https://oc.example.org/f/1", pref.Link)
	assert.Equal(t, "Project Folder", pref.Name)

	// reversed order on a second pair
	require.NoError(t, SetName(db, 2, 7, "Other Folder"))
	require.NoError(t, SetLink(db, 2, 7, "https://oc.example.org/f/2"))

	pref, err = Get(db, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, "https://oc.example.org/f/2", pref.Link)
	assert.Equal(t, "Other Folder", pref.Name)
}

func TestSetLinkValidation(t *testing.T) {
	db := setupTestDB(t)

	require.ErrorIs(t, SetLink(nil, 1, 1, "x"), ErrDBNil)
	require.ErrorIs(t, SetLink(db, 1, 1, ""), ErrEmptyLink)
	require.ErrorIs(t, SetName(nil, 1, 1, "x"), ErrDBNil)
	require.ErrorIs(t, SetName(db, 1, 1, ""), ErrEmptyName)
}

func TestResetNameKeepsLink(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SetLink(db, 1, 7, "https://oc.example.org/f/1"))
	require.NoError(t, SetName(db, 1, 7, "Project Folder"))

	require.NoError(t, ResetName(db, 1, 7))

	pref, err := Get(db, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "https://oc.example.org/f/1", pref.Link, "reset must not clear the link")
	assert.Empty(t, pref.Name, "reset must clear the name")
}

func TestResetNameMissingRowIsNoOp(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, ResetName(db, 99, 99))

	_, err := Get(db, 99, 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSetNameTwiceOverwrites(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SetName(db, 1, 7, "First"))
	require.NoError(t, SetName(db, 1, 7, "Second"))

	pref, err := Get(db, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "Second", pref.Name)
}
