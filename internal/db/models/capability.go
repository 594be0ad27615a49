package models

// Capability represents a permission grant for a user. A grant with
// InstanceID zero applies to every activity instance; otherwise it is scoped
// to the referenced instance.
type Capability struct {
	ID uint64 `gorm:"primaryKey"`
	// UserID is the holder of the grant.
	UserID uint64 `gorm:"index;not null"`
	// InstanceID scopes the grant to one activity instance (0 = all).
	InstanceID uint64 `gorm:"index"`
	// Name is the capability name, e.g. "mod/collaborativefolders:view".
	Name string `gorm:"size:100;not null"`
}
