// Package authnode is the generic per-entity setting store. A node row
// carries an enable/deny/threshold flag plus an optional string payload,
// and doubles as permission switch, plugin config and ad-hoc attribute
// storage for the packages above it.
package authnode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yokinanya/omega-miya/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when no row exists for the queried node.
	// Callers use it to distinguish "unconfigured" from "denied".
	ErrNotFound = errors.New("authnode: setting not found")
	// ErrConflict is returned when more than one row matches a unique key.
	// That means the storage uniqueness invariant is broken; it is never
	// resolved silently.
	ErrConflict = errors.New("authnode: multiple settings for unique key")
)

// VerifyResult is the three-way outcome of a permission check.
type VerifyResult int

const (
	// Denied: the row exists but fails the comparison.
	Denied VerifyResult = -1
	// Unset: no row is configured for the node.
	Unset VerifyResult = 0
	// Granted: the row exists and passes the comparison.
	Granted VerifyResult = 1
)

// GormStore persists auth settings backed by GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore constructs a GormStore.
func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

// Get returns the setting for one node. ErrNotFound when absent;
// ErrConflict when the unique index has been violated.
func (s *GormStore) Get(ctx context.Context, entityIndexID uint64, module, plugin, node string) (*models.AuthSetting, error) {
	var rows []models.AuthSetting
	errFind := s.db.WithContext(ctx).
		Where("entity_index_id = ? AND module = ? AND plugin = ? AND node = ?",
			entityIndexID, module, plugin, node).
		Limit(2).
		Find(&rows).Error
	if errFind != nil {
		return nil, fmt.Errorf("authnode: query setting: %w", errFind)
	}
	switch len(rows) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &rows[0], nil
	default:
		return nil, ErrConflict
	}
}

// Set creates the setting or updates available/value in place. One atomic
// statement; concurrent callers cannot produce a second row for the key.
func (s *GormStore) Set(ctx context.Context, entityIndexID uint64, module, plugin, node string, available int, value string) error {
	row := models.AuthSetting{
		EntityIndexID: entityIndexID,
		Module:        module,
		Plugin:        plugin,
		Node:          node,
		Available:     available,
		Value:         value,
	}
	errUpsert := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "entity_index_id"}, {Name: "module"}, {Name: "plugin"}, {Name: "node"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"available":  available,
			"value":      value,
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
	if errUpsert != nil {
		return fmt.Errorf("authnode: upsert setting: %w", errUpsert)
	}
	return nil
}

// Delete removes the setting; a missing row is not an error.
func (s *GormStore) Delete(ctx context.Context, entityIndexID uint64, module, plugin, node string) error {
	errDelete := s.db.WithContext(ctx).
		Where("entity_index_id = ? AND module = ? AND plugin = ? AND node = ?",
			entityIndexID, module, plugin, node).
		Delete(&models.AuthSetting{}).Error
	if errDelete != nil {
		return fmt.Errorf("authnode: delete setting: %w", errDelete)
	}
	return nil
}

func passes(stored, required int, strict bool) bool {
	if strict {
		return stored == required
	}
	return stored >= required
}

// Check reports whether the node passes the comparison. Strict requires the
// stored flag to equal required; non-strict requires stored >= required,
// which supports tiered permission levels. An absent row is false.
func (s *GormStore) Check(ctx context.Context, entityIndexID uint64, module, plugin, node string, required int, strict bool) (bool, error) {
	result, errVerify := s.Verify(ctx, entityIndexID, module, plugin, node, required, strict)
	if errVerify != nil {
		return false, errVerify
	}
	return result == Granted, nil
}

// Verify is Check with a three-way answer, so callers can tell an explicit
// deny apart from a default/unconfigured state.
func (s *GormStore) Verify(ctx context.Context, entityIndexID uint64, module, plugin, node string, required int, strict bool) (VerifyResult, error) {
	setting, errGet := s.Get(ctx, entityIndexID, module, plugin, node)
	if errors.Is(errGet, ErrNotFound) {
		return Unset, nil
	}
	if errGet != nil {
		return Unset, errGet
	}
	if passes(setting.Available, required, strict) {
		return Granted, nil
	}
	return Denied, nil
}

// List returns the entity's settings, optionally filtered by module and
// plugin (empty string matches all). Ordered by module, plugin, node.
func (s *GormStore) List(ctx context.Context, entityIndexID uint64, module, plugin string) ([]models.AuthSetting, error) {
	query := s.db.WithContext(ctx).Where("entity_index_id = ?", entityIndexID)
	if module != "" {
		query = query.Where("module = ?", module)
	}
	if plugin != "" {
		query = query.Where("plugin = ?", plugin)
	}

	var rows []models.AuthSetting
	errFind := query.Order("module").Order("plugin").Order("node").Find(&rows).Error
	if errFind != nil {
		return nil, fmt.Errorf("authnode: list settings: %w", errFind)
	}
	return rows, nil
}
