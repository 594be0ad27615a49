package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	nav := NewContext("Folders", "activity")

	assert.Equal(t, "Folders", nav.PageTitle)
	assert.Equal(t, "activity", nav.ActivePage)
	assert.Empty(t, nav.Breadcrumbs)
}

func TestAddBreadcrumb(t *testing.T) {
	nav := NewContext("Folders", "activity").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Folders", "/activity/7", true)

	assert.Len(t, nav.Breadcrumbs, 2)
	assert.Equal(t, "Home", nav.Breadcrumbs[0].Title)
	assert.False(t, nav.Breadcrumbs[0].Active)
	assert.True(t, nav.Breadcrumbs[1].Active)
}

func TestIsActive(t *testing.T) {
	nav := NewContext("Folders", "activity")

	assert.True(t, nav.IsActive("activity"))
	assert.False(t, nav.IsActive("home"))
}
