// Package cooldown gates repeatable actions behind one absolute-expiry
// timestamp per (entity, event) pair.
package cooldown

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yokinanya/omega-miya/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by Get when no cooldown row exists. CheckExpired
// never returns it: a missing row reads as already expired.
var ErrNotFound = errors.New("cooldown: record not found")

// GormStore persists cooldown events backed by GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore constructs a GormStore.
func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

// Set creates or replaces the cooldown for event. Setting again replaces
// the previous expiry outright; cooldowns never extend or stack.
func (s *GormStore) Set(ctx context.Context, entityIndexID uint64, event string, stopAt time.Time, description string) error {
	row := models.CoolDown{
		EntityIndexID: entityIndexID,
		Event:         event,
		StopAt:        stopAt,
		Description:   description,
	}
	errUpsert := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity_index_id"}, {Name: "event"}},
		DoUpdates: clause.Assignments(map[string]any{
			"stop_at":     stopAt,
			"description": description,
			"updated_at":  time.Now(),
		}),
	}).Create(&row).Error
	if errUpsert != nil {
		return fmt.Errorf("cooldown: upsert: %w", errUpsert)
	}
	return nil
}

// SetFor is Set with an expiry measured from now.
func (s *GormStore) SetFor(ctx context.Context, entityIndexID uint64, event string, duration time.Duration, description string) error {
	return s.Set(ctx, entityIndexID, event, time.Now().Add(duration), description)
}

// Get returns the cooldown row for event, or ErrNotFound.
func (s *GormStore) Get(ctx context.Context, entityIndexID uint64, event string) (*models.CoolDown, error) {
	var row models.CoolDown
	errFirst := s.db.WithContext(ctx).
		Where("entity_index_id = ? AND event = ?", entityIndexID, event).
		First(&row).Error
	if errors.Is(errFirst, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if errFirst != nil {
		return nil, fmt.Errorf("cooldown: query: %w", errFirst)
	}
	return &row, nil
}

// CheckExpired reports whether the cooldown has passed, along with its
// expiry instant. A missing row reports (true, now): no cooldown is
// indistinguishable from one that just expired.
func (s *GormStore) CheckExpired(ctx context.Context, entityIndexID uint64, event string) (bool, time.Time, error) {
	row, errGet := s.Get(ctx, entityIndexID, event)
	if errors.Is(errGet, ErrNotFound) {
		return true, time.Now(), nil
	}
	if errGet != nil {
		return false, time.Time{}, errGet
	}
	return !row.StopAt.After(time.Now()), row.StopAt, nil
}

// PurgeExpired deletes every row whose expiry has passed and returns the
// number of rows removed. Maintenance only; an unpurged expired row still
// answers CheckExpired correctly.
func (s *GormStore) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("stop_at <= ?", time.Now()).
		Delete(&models.CoolDown{})
	if result.Error != nil {
		return 0, fmt.Errorf("cooldown: purge expired: %w", result.Error)
	}
	return result.RowsAffected, nil
}
