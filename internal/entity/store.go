package entity

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbutil "github.com/yokinanya/omega-miya/internal/db"
	"github.com/yokinanya/omega-miya/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when no entity matches the requested identity.
	ErrNotFound = errors.New("entity: record not found")
	// ErrConflict is returned when more than one row matches an identity
	// that the unique index should have made impossible.
	ErrConflict = errors.New("entity: multiple records for unique identity")
)

// Identity is the four-part natural key of an entity row.
type Identity struct {
	BotIndexID uint64
	EntityID   string
	EntityType Type
	ParentID   string
}

func (i Identity) validate() error {
	if !i.EntityType.Valid() {
		return fmt.Errorf("entity: unsupported entity type %q", i.EntityType)
	}
	return nil
}

// GormStore persists entities backed by GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore constructs a GormStore.
func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

// ResolveUnique looks up the single entity matching ident.
func (s *GormStore) ResolveUnique(ctx context.Context, ident Identity) (*models.Entity, error) {
	if errValidate := ident.validate(); errValidate != nil {
		return nil, errValidate
	}
	var rows []models.Entity
	errFind := s.db.WithContext(ctx).
		Where("bot_index_id = ? AND entity_id = ? AND entity_type = ? AND parent_id = ?",
			ident.BotIndexID, ident.EntityID, ident.EntityType.String(), ident.ParentID).
		Limit(2).
		Find(&rows).Error
	if errFind != nil {
		return nil, fmt.Errorf("entity: query: %w", errFind)
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

// GetByIndexID looks up an entity row by its surrogate primary key.
func (s *GormStore) GetByIndexID(ctx context.Context, indexID uint64) (*models.Entity, error) {
	var row models.Entity
	errFirst := s.db.WithContext(ctx).Where("id = ?", indexID).First(&row).Error
	if errors.Is(errFirst, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if errFirst != nil {
		return nil, fmt.Errorf("entity: query: %w", errFirst)
	}
	return &row, nil
}

// Register creates the entity if absent, otherwise refreshes its name and
// info. Used on every inbound event, so it must tolerate races between
// concurrent registrations of the same identity.
func (s *GormStore) Register(ctx context.Context, ident Identity, name, info string) (*models.Entity, error) {
	if errValidate := ident.validate(); errValidate != nil {
		return nil, errValidate
	}
	row := models.Entity{
		BotIndexID: ident.BotIndexID,
		EntityID:   ident.EntityID,
		EntityType: ident.EntityType.String(),
		ParentID:   ident.ParentID,
		EntityName: name,
		EntityInfo: info,
	}
	errUpsert := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "bot_index_id"}, {Name: "entity_id"}, {Name: "entity_type"}, {Name: "parent_id"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"entity_name": name,
			"entity_info": info,
			"updated_at":  time.Now(),
		}),
	}).Create(&row).Error
	if errUpsert != nil {
		return nil, fmt.Errorf("entity: register: %w", errUpsert)
	}
	// ON CONFLICT DO UPDATE does not backfill the primary key on every
	// dialect, so read the row back for a stable index ID.
	return s.ResolveUnique(ctx, ident)
}

// RegisterIfAbsent creates the entity only when no row exists, leaving an
// existing row untouched, and returns the stored row either way.
func (s *GormStore) RegisterIfAbsent(ctx context.Context, ident Identity, name, info string) (*models.Entity, error) {
	if errValidate := ident.validate(); errValidate != nil {
		return nil, errValidate
	}
	existing, errResolve := s.ResolveUnique(ctx, ident)
	if errResolve == nil {
		return existing, nil
	}
	if !errors.Is(errResolve, ErrNotFound) {
		return nil, errResolve
	}
	row := models.Entity{
		BotIndexID: ident.BotIndexID,
		EntityID:   ident.EntityID,
		EntityType: ident.EntityType.String(),
		ParentID:   ident.ParentID,
		EntityName: name,
		EntityInfo: info,
	}
	errCreate := s.db.WithContext(ctx).Create(&row).Error
	if errCreate != nil {
		if dbutil.IsUniqueViolation(errCreate) {
			return s.ResolveUnique(ctx, ident)
		}
		return nil, fmt.Errorf("entity: create: %w", errCreate)
	}
	return &row, nil
}

// Delete removes the entity row matching ident. Missing rows are not an
// error. Dependent rows in other tables are left to their own stores.
func (s *GormStore) Delete(ctx context.Context, ident Identity) error {
	if errValidate := ident.validate(); errValidate != nil {
		return errValidate
	}
	errDelete := s.db.WithContext(ctx).
		Where("bot_index_id = ? AND entity_id = ? AND entity_type = ? AND parent_id = ?",
			ident.BotIndexID, ident.EntityID, ident.EntityType.String(), ident.ParentID).
		Delete(&models.Entity{}).Error
	if errDelete != nil {
		return fmt.Errorf("entity: delete: %w", errDelete)
	}
	return nil
}

// ListByType returns every entity of the given type ordered by entity ID.
func (s *GormStore) ListByType(ctx context.Context, entityType Type) ([]models.Entity, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("entity: unsupported entity type %q", entityType)
	}
	var rows []models.Entity
	errFind := s.db.WithContext(ctx).
		Where("entity_type = ?", entityType.String()).
		Order("entity_id").
		Find(&rows).Error
	if errFind != nil {
		return nil, fmt.Errorf("entity: list by type: %w", errFind)
	}
	return rows, nil
}

// ListAll returns every registered entity ordered by type.
func (s *GormStore) ListAll(ctx context.Context) ([]models.Entity, error) {
	var rows []models.Entity
	errFind := s.db.WithContext(ctx).Order("entity_type").Find(&rows).Error
	if errFind != nil {
		return nil, fmt.Errorf("entity: list: %w", errFind)
	}
	return rows, nil
}

// ListWithAuthNode returns every entity holding the given auth node.
// With strict true the stored available level must equal required; with
// strict false any level at or above required matches.
func (s *GormStore) ListWithAuthNode(ctx context.Context, module, plugin, node string, required int, strict bool) ([]models.Entity, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Entity{}).
		Joins("JOIN auth_settings ON auth_settings.entity_index_id = entities.id").
		Where("auth_settings.module = ? AND auth_settings.plugin = ? AND auth_settings.node = ?", module, plugin, node)
	if strict {
		query = query.Where("auth_settings.available = ?", required)
	} else {
		query = query.Where("auth_settings.available >= ?", required)
	}
	var rows []models.Entity
	errFind := query.Order("entities.entity_type").Find(&rows).Error
	if errFind != nil {
		return nil, fmt.Errorf("entity: list with auth node: %w", errFind)
	}
	return rows, nil
}
