package models

import "time"

// Entity stores one interactable object: a user, group, guild or channel.
// Every attribute, cooldown, sign-in and friendship row is keyed by its ID.
type Entity struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key, the entity index ID.

	BotIndexID uint64 `gorm:"not null;index;uniqueIndex:uniq_entity_ident"`      // Owning bot index ID.
	EntityID   string `gorm:"type:text;not null;uniqueIndex:uniq_entity_ident"`  // Platform-side ID, may repeat across kinds.
	EntityType string `gorm:"type:text;not null;index;uniqueIndex:uniq_entity_ident"` // Entity kind tag.
	ParentID   string `gorm:"type:text;not null;uniqueIndex:uniq_entity_ident"`  // Parent object ID, e.g. the group a member belongs to.

	EntityName string `gorm:"type:text;not null"` // Display name.
	EntityInfo string `gorm:"type:text"`          // Free-form description.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (Entity) TableName() string {
	return "entities"
}
