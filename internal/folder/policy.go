package folder

// AccessInput carries the facts an access decision is made from.
type AccessInput struct {
	// CapabilityAdd is true for instance admins (holders of the addinstance
	// capability).
	CapabilityAdd bool
	// TeacherAllowed is the per-activity setting whether instance admins may
	// access the folder.
	TeacherAllowed bool
	// FoldersCreated is true once the background folder creation finished.
	FoldersCreated bool
	// GroupMode is true when the activity runs in group mode.
	GroupMode bool
}

// Decision is the outcome of an access evaluation.
type Decision struct {
	// TeacherAccess is true when an instance admin is allowed into the folder.
	TeacherAccess bool
	// CanGenerate is true when the user may generate an access link right now.
	CanGenerate bool
	// CanShowAdminTable is true when the per-group overview table may be
	// shown: admins only, group mode only, and never before the folders
	// exist.
	CanShowAdminTable bool
}

// Evaluate decides folder access. Students may always generate once the
// folders exist; instance admins only when the activity grants them access.
func Evaluate(in AccessInput) Decision {
	teacherAccess := in.CapabilityAdd && in.TeacherAllowed

	return Decision{
		TeacherAccess:     teacherAccess,
		CanGenerate:       (teacherAccess != !in.CapabilityAdd) && in.FoldersCreated,
		CanShowAdminTable: in.FoldersCreated && in.CapabilityAdd && in.GroupMode,
	}
}
