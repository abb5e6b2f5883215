package models

import "time"

// Bot stores one protocol-side bot account entities are scoped to.
type Bot struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	SelfID  string `gorm:"type:text;not null;uniqueIndex"` // Platform account ID of the bot itself.
	BotType string `gorm:"type:text;not null;index"`       // Adapter/protocol the bot connects with.
	Status  int    `gorm:"not null;default:0"`             // Online status, 1 online, 0 offline.
	Info    string `gorm:"type:text"`                      // Free-form description.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (Bot) TableName() string {
	return "bots"
}
