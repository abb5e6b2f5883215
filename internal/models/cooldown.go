package models

import "time"

// CoolDown stores one absolute-expiry cooldown event for an entity.
// At most one row may exist per (entity, event); setting again replaces it.
type CoolDown struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	EntityIndexID uint64 `gorm:"not null;index;uniqueIndex:uniq_cooldown_event"` // Owning entity index ID.
	Event         string `gorm:"type:text;not null;uniqueIndex:uniq_cooldown_event"` // Event name identifying the cooldown.

	StopAt      time.Time `gorm:"not null;index"` // Instant the cooldown expires.
	Description string    `gorm:"type:text"`      // Optional event description.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (CoolDown) TableName() string {
	return "cooldowns"
}
