package models

// UserGroup represents a user's membership in a course group.
type UserGroup struct {
	ID      uint64 `gorm:"primaryKey"`
	UserID  uint64 `gorm:"index:idx_user_group,unique;not null"`
	GroupID uint64 `gorm:"index:idx_user_group,unique;not null"`
}
