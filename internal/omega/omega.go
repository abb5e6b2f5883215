// Package omega is the facade plugins call instead of touching the
// individual stores. A Handle binds one entity and exposes its sign-ins,
// permission nodes, cooldowns, friendship counters and character data.
package omega

import (
	"context"
	"fmt"

	"github.com/yokinanya/omega-miya/internal/authnode"
	"github.com/yokinanya/omega-miya/internal/cooldown"
	"github.com/yokinanya/omega-miya/internal/entity"
	"github.com/yokinanya/omega-miya/internal/friendship"
	"github.com/yokinanya/omega-miya/internal/keylock"
	"github.com/yokinanya/omega-miya/internal/models"
	"github.com/yokinanya/omega-miya/internal/signin"
	"gorm.io/gorm"
)

// Service bundles the stores behind the facade. One Service is shared by
// the whole process.
type Service struct {
	entities    *entity.GormStore
	bots        *entity.BotStore
	auth        *authnode.GormStore
	cooldowns   *cooldown.GormStore
	signIns     *signin.GormStore
	friendships *friendship.GormStore
	locks       *keylock.Registry
}

// NewService constructs a Service over one database connection.
func NewService(db *gorm.DB) *Service {
	return &Service{
		entities:    entity.NewGormStore(db),
		bots:        entity.NewBotStore(db),
		auth:        authnode.NewGormStore(db),
		cooldowns:   cooldown.NewGormStore(db),
		signIns:     signin.NewGormStore(db),
		friendships: friendship.NewGormStore(db),
		locks:       keylock.NewRegistry(),
	}
}

// Entities exposes the underlying entity store for administrative callers.
func (s *Service) Entities() *entity.GormStore { return s.entities }

// Bots exposes the underlying bot store.
func (s *Service) Bots() *entity.BotStore { return s.bots }

// Cooldowns exposes the underlying cooldown store, mainly so the purge
// sweeper can run over it.
func (s *Service) Cooldowns() *cooldown.GormStore { return s.cooldowns }

// SignIns exposes the underlying sign-in store for administrative callers.
func (s *Service) SignIns() *signin.GormStore { return s.signIns }

// Handle is the per-entity view over the Service. It pins the entity row
// resolved at bind time; the index ID is stable for the entity's lifetime.
type Handle struct {
	svc    *Service
	entity *models.Entity
}

// Acquire registers or refreshes the entity and returns a Handle bound to
// it. Inbound events go through here so names stay current.
func (s *Service) Acquire(ctx context.Context, ident entity.Identity, name, info string) (*Handle, error) {
	row, errRegister := s.entities.Register(ctx, ident, name, info)
	if errRegister != nil {
		return nil, errRegister
	}
	return &Handle{svc: s, entity: row}, nil
}

// Bind returns a Handle for an already registered entity without touching
// its row. Returns entity.ErrNotFound when it was never registered.
func (s *Service) Bind(ctx context.Context, ident entity.Identity) (*Handle, error) {
	row, errResolve := s.entities.ResolveUnique(ctx, ident)
	if errResolve != nil {
		return nil, errResolve
	}
	return &Handle{svc: s, entity: row}, nil
}

// BindIndexID returns a Handle for the entity with the given index ID.
// Administrative callers address entities by index ID instead of the
// four-part identity.
func (s *Service) BindIndexID(ctx context.Context, indexID uint64) (*Handle, error) {
	row, errGet := s.entities.GetByIndexID(ctx, indexID)
	if errGet != nil {
		return nil, errGet
	}
	return &Handle{svc: s, entity: row}, nil
}

// Entity returns the bound entity row.
func (h *Handle) Entity() *models.Entity { return h.entity }

// IndexID returns the bound entity's index ID, the key all dependent rows
// use.
func (h *Handle) IndexID() uint64 { return h.entity.ID }

// Delete removes the bound entity row. Dependent rows stay behind keyed
// on a now-dangling index ID; re-registering creates a fresh ID, so they
// become unreachable rather than inherited.
func (h *Handle) Delete(ctx context.Context) error {
	return h.svc.entities.Delete(ctx, entity.Identity{
		BotIndexID: h.entity.BotIndexID,
		EntityID:   h.entity.EntityID,
		EntityType: entity.Type(h.entity.EntityType),
		ParentID:   h.entity.ParentID,
	})
}

func (h *Handle) signInLockKey() string {
	return fmt.Sprintf("signin:%d", h.entity.ID)
}
