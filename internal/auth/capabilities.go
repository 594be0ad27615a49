package auth

// Capability constants define the permission grants evaluated per user and
// activity instance.
const (
	// CapabilityView allows viewing a collaborative-folder activity page.
	CapabilityView = "mod/collaborativefolders:view"

	// CapabilityAddInstance marks instance admins; it allows managing the
	// instance and seeing the per-group overview table.
	CapabilityAddInstance = "mod/collaborativefolders:addinstance"
)
