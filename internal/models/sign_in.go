package models

import (
	"time"

	"gorm.io/datatypes"
)

// SignIn stores one attendance record at calendar-day granularity.
// At most one row may exist per (entity, day); re-signing the same day
// rewrites the info marker instead of inserting a second row.
type SignIn struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	EntityIndexID uint64         `gorm:"not null;index;uniqueIndex:uniq_sign_in_day"` // Owning entity index ID.
	SignInDate    datatypes.Date `gorm:"not null;index;uniqueIndex:uniq_sign_in_day"` // Calendar day of the sign-in.

	SignInInfo string `gorm:"type:text"` // Annotation: Normal/Duplicate/Fixed Sign In.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (SignIn) TableName() string {
	return "sign_ins"
}
