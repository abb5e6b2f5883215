package models

import "time"

// Friendship stores the gamification bookkeeping for one entity.
type Friendship struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	EntityIndexID uint64 `gorm:"not null;uniqueIndex"` // Owning entity index ID, one row per entity.

	Status            string  `gorm:"type:text;not null"` // Current mood/state tag.
	Mood              float64 `gorm:"not null;default:0"` // Above zero good mood, below zero bad.
	Friendship        float64 `gorm:"not null;default:0"` // Above zero friendly, below zero hostile.
	Energy            float64 `gorm:"not null;default:0"` // Energy points.
	Currency          float64 `gorm:"not null;default:0"` // Held currency.
	ResponseThreshold float64 `gorm:"not null;default:0"` // Probability/frequency gate for plugin responses.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (Friendship) TableName() string {
	return "friendships"
}
