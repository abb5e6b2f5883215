// Package friendship keeps the per-entity gamification counters: mood,
// friendship, energy, currency and the response threshold.
package friendship

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yokinanya/omega-miya/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatusNormal is the status a row starts with when created implicitly.
const StatusNormal = "normal"

// Values carries the mutable counters of a friendship row.
type Values struct {
	Status            string
	Mood              float64
	Friendship        float64
	Energy            float64
	Currency          float64
	ResponseThreshold float64
}

// GormStore persists friendship rows backed by GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore constructs a GormStore.
func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

// Set writes the counters to absolute values, creating the row if needed.
func (s *GormStore) Set(ctx context.Context, entityIndexID uint64, values Values) error {
	row := models.Friendship{
		EntityIndexID:     entityIndexID,
		Status:            values.Status,
		Mood:              values.Mood,
		Friendship:        values.Friendship,
		Energy:            values.Energy,
		Currency:          values.Currency,
		ResponseThreshold: values.ResponseThreshold,
	}
	errUpsert := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity_index_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"status":             values.Status,
			"mood":               values.Mood,
			"friendship":         values.Friendship,
			"energy":             values.Energy,
			"currency":           values.Currency,
			"response_threshold": values.ResponseThreshold,
			"updated_at":         time.Now(),
		}),
	}).Create(&row).Error
	if errUpsert != nil {
		return fmt.Errorf("friendship: upsert: %w", errUpsert)
	}
	return nil
}

// Change applies deltas on top of the stored counters. A nil status keeps
// the stored status; when no row exists yet the deltas become the initial
// values and the status defaults to normal.
func (s *GormStore) Change(ctx context.Context, entityIndexID uint64, status *string, mood, friendship, energy, currency, responseThreshold float64) error {
	var row models.Friendship
	errFirst := s.db.WithContext(ctx).Where("entity_index_id = ?", entityIndexID).First(&row).Error
	if errors.Is(errFirst, gorm.ErrRecordNotFound) {
		newStatus := StatusNormal
		if status != nil {
			newStatus = *status
		}
		return s.Set(ctx, entityIndexID, Values{
			Status:            newStatus,
			Mood:              mood,
			Friendship:        friendship,
			Energy:            energy,
			Currency:          currency,
			ResponseThreshold: responseThreshold,
		})
	}
	if errFirst != nil {
		return fmt.Errorf("friendship: query: %w", errFirst)
	}

	newStatus := row.Status
	if status != nil {
		newStatus = *status
	}
	return s.Set(ctx, entityIndexID, Values{
		Status:            newStatus,
		Mood:              row.Mood + mood,
		Friendship:        row.Friendship + friendship,
		Energy:            row.Energy + energy,
		Currency:          row.Currency + currency,
		ResponseThreshold: row.ResponseThreshold + responseThreshold,
	})
}

// QueryOrInit returns the stored row, creating a zeroed one with status
// normal when absent.
func (s *GormStore) QueryOrInit(ctx context.Context, entityIndexID uint64) (*models.Friendship, error) {
	var row models.Friendship
	errFirst := s.db.WithContext(ctx).Where("entity_index_id = ?", entityIndexID).First(&row).Error
	if errFirst == nil {
		return &row, nil
	}
	if !errors.Is(errFirst, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("friendship: query: %w", errFirst)
	}
	if errSet := s.Set(ctx, entityIndexID, Values{Status: StatusNormal}); errSet != nil {
		return nil, errSet
	}
	errReread := s.db.WithContext(ctx).Where("entity_index_id = ?", entityIndexID).First(&row).Error
	if errReread != nil {
		return nil, fmt.Errorf("friendship: query after init: %w", errReread)
	}
	return &row, nil
}
