package signin

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbutil "github.com/yokinanya/omega-miya/internal/db"
	"github.com/yokinanya/omega-miya/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Sign-in info markers. Record writes these when the caller does not
// supply its own annotation.
const (
	InfoNormal    = "Normal Sign In"
	InfoDuplicate = "Duplicate Sign In"
	InfoFixed     = "Fixed Sign In"
)

// ErrNotFound is returned when no sign-in record exists for the query.
var ErrNotFound = errors.New("signin: record not found")

// GormStore persists sign-in records backed by GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore constructs a GormStore.
func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func dateOf(t time.Time) datatypes.Date {
	year, month, day := t.Date()
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Record writes the attendance record for day. Inserting a new row
// annotates it with info (or "Normal Sign In" when empty); re-signing an
// already recorded day updates the existing row's annotation to info (or
// "Duplicate Sign In") and never creates a second row.
//
// Insert and update write different markers, so this cannot be one
// ON CONFLICT statement. The read-then-write race against a concurrent
// insert is caught by the unique index and retried as an update once.
func (s *GormStore) Record(ctx context.Context, entityIndexID uint64, day time.Time, info string) error {
	date := dateOf(day)

	var row models.SignIn
	errFirst := s.db.WithContext(ctx).
		Where("entity_index_id = ? AND sign_in_date = ?", entityIndexID, date).
		First(&row).Error
	if errFirst == nil {
		return s.markDuplicate(ctx, row.ID, info)
	}
	if !errors.Is(errFirst, gorm.ErrRecordNotFound) {
		return fmt.Errorf("signin: query record: %w", errFirst)
	}

	insertInfo := info
	if insertInfo == "" {
		insertInfo = InfoNormal
	}
	errCreate := s.db.WithContext(ctx).Create(&models.SignIn{
		EntityIndexID: entityIndexID,
		SignInDate:    date,
		SignInInfo:    insertInfo,
	}).Error
	if errCreate == nil {
		return nil
	}
	if !dbutil.IsUniqueViolation(errCreate) {
		return fmt.Errorf("signin: create record: %w", errCreate)
	}

	// Lost the insert race; the row exists now, so re-sign it.
	errRace := s.db.WithContext(ctx).
		Where("entity_index_id = ? AND sign_in_date = ?", entityIndexID, date).
		First(&row).Error
	if errRace != nil {
		return fmt.Errorf("signin: re-read after conflict: %w", errRace)
	}
	return s.markDuplicate(ctx, row.ID, info)
}

func (s *GormStore) markDuplicate(ctx context.Context, id uint64, info string) error {
	if info == "" {
		info = InfoDuplicate
	}
	errUpdate := s.db.WithContext(ctx).
		Model(&models.SignIn{}).
		Where("id = ?", id).
		Update("sign_in_info", info).Error
	if errUpdate != nil {
		return fmt.Errorf("signin: update record: %w", errUpdate)
	}
	return nil
}

// Signed reports whether a record exists for day.
func (s *GormStore) Signed(ctx context.Context, entityIndexID uint64, day time.Time) (bool, error) {
	var count int64
	errCount := s.db.WithContext(ctx).
		Model(&models.SignIn{}).
		Where("entity_index_id = ? AND sign_in_date = ?", entityIndexID, dateOf(day)).
		Count(&count).Error
	if errCount != nil {
		return false, fmt.Errorf("signin: count record: %w", errCount)
	}
	return count > 0, nil
}

// Days returns every recorded sign-in day for the entity, most recent first.
func (s *GormStore) Days(ctx context.Context, entityIndexID uint64) ([]time.Time, error) {
	var rows []models.SignIn
	errFind := s.db.WithContext(ctx).
		Select("sign_in_date").
		Where("entity_index_id = ?", entityIndexID).
		Order("sign_in_date DESC").
		Find(&rows).Error
	if errFind != nil {
		return nil, fmt.Errorf("signin: list days: %w", errFind)
	}
	days := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		days = append(days, time.Time(row.SignInDate))
	}
	return days, nil
}

// Get returns the record for one day, or ErrNotFound.
func (s *GormStore) Get(ctx context.Context, entityIndexID uint64, day time.Time) (*models.SignIn, error) {
	var row models.SignIn
	errFirst := s.db.WithContext(ctx).
		Where("entity_index_id = ? AND sign_in_date = ?", entityIndexID, dateOf(day)).
		First(&row).Error
	if errors.Is(errFirst, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if errFirst != nil {
		return nil, fmt.Errorf("signin: query record: %w", errFirst)
	}
	return &row, nil
}

// Delete removes the record for one day. Administrative operation only;
// a missing row is not an error.
func (s *GormStore) Delete(ctx context.Context, entityIndexID uint64, day time.Time) error {
	errDelete := s.db.WithContext(ctx).
		Where("entity_index_id = ? AND sign_in_date = ?", entityIndexID, dateOf(day)).
		Delete(&models.SignIn{}).Error
	if errDelete != nil {
		return fmt.Errorf("signin: delete record: %w", errDelete)
	}
	return nil
}
