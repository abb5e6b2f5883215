package models

import "time"

// AuthSetting stores one permission node or persisted plugin setting for an
// entity. At most one row may exist per (entity, module, plugin, node).
type AuthSetting struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	EntityIndexID uint64 `gorm:"not null;index;uniqueIndex:uniq_auth_setting_node"` // Owning entity index ID.
	Module        string `gorm:"type:text;not null;uniqueIndex:uniq_auth_setting_node"` // Module the node belongs to.
	Plugin        string `gorm:"type:text;not null;uniqueIndex:uniq_auth_setting_node"` // Plugin the node belongs to.
	Node          string `gorm:"type:text;not null;uniqueIndex:uniq_auth_setting_node"` // Permission node or setting name.

	Available int    `gorm:"not null;index"` // 0 deny/disable, 1 allow/enable, >1 usable as level threshold.
	Value     string `gorm:"type:text"`      // Optional payload, numbers-as-strings or JSON.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (AuthSetting) TableName() string {
	return "auth_settings"
}
