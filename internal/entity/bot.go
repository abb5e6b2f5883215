package entity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yokinanya/omega-miya/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BotStore persists the bot accounts that entities are scoped to.
type BotStore struct {
	db *gorm.DB
}

// NewBotStore constructs a BotStore.
func NewBotStore(db *gorm.DB) *BotStore { return &BotStore{db: db} }

// Connect marks the bot online, creating its row on first sight. Returns
// the stored row so callers can key entities on its index ID.
func (s *BotStore) Connect(ctx context.Context, selfID, botType, info string) (*models.Bot, error) {
	row := models.Bot{
		SelfID:  selfID,
		BotType: botType,
		Status:  1,
		Info:    info,
	}
	errUpsert := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "self_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"bot_type":   botType,
			"status":     1,
			"info":       info,
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
	if errUpsert != nil {
		return nil, fmt.Errorf("entity: bot connect: %w", errUpsert)
	}
	return s.GetBot(ctx, selfID)
}

// Disconnect marks the bot offline. Unknown bots are not an error.
func (s *BotStore) Disconnect(ctx context.Context, selfID string) error {
	errUpdate := s.db.WithContext(ctx).
		Model(&models.Bot{}).
		Where("self_id = ?", selfID).
		Updates(map[string]any{"status": 0, "updated_at": time.Now()}).Error
	if errUpdate != nil {
		return fmt.Errorf("entity: bot disconnect: %w", errUpdate)
	}
	return nil
}

// GetBot looks up a bot row by its platform account ID.
func (s *BotStore) GetBot(ctx context.Context, selfID string) (*models.Bot, error) {
	var row models.Bot
	errFirst := s.db.WithContext(ctx).Where("self_id = ?", selfID).First(&row).Error
	if errors.Is(errFirst, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if errFirst != nil {
		return nil, fmt.Errorf("entity: bot query: %w", errFirst)
	}
	return &row, nil
}

// ListOnlineBots returns every bot currently marked online.
func (s *BotStore) ListOnlineBots(ctx context.Context) ([]models.Bot, error) {
	var rows []models.Bot
	errFind := s.db.WithContext(ctx).Where("status = ?", 1).Order("self_id").Find(&rows).Error
	if errFind != nil {
		return nil, fmt.Errorf("entity: bot list: %w", errFind)
	}
	return rows, nil
}
