package omega

import (
	"context"
	"time"

	"github.com/yokinanya/omega-miya/internal/models"
)

// Cooldown returns the row for one cooldown event, or cooldown.ErrNotFound.
func (h *Handle) Cooldown(ctx context.Context, event string) (*models.CoolDown, error) {
	return h.svc.cooldowns.Get(ctx, h.entity.ID, event)
}

// SetCooldown replaces the cooldown for event with an absolute expiry.
func (h *Handle) SetCooldown(ctx context.Context, event string, stopAt time.Time, description string) error {
	return h.svc.cooldowns.Set(ctx, h.entity.ID, event, stopAt, description)
}

// SetCooldownFor replaces the cooldown for event with an expiry measured
// from now.
func (h *Handle) SetCooldownFor(ctx context.Context, event string, duration time.Duration, description string) error {
	return h.svc.cooldowns.SetFor(ctx, h.entity.ID, event, duration, description)
}

// CheckCooldownExpired reports whether the event's cooldown has passed
// along with its expiry instant. An unset event reads as expired now.
func (h *Handle) CheckCooldownExpired(ctx context.Context, event string) (bool, time.Time, error) {
	return h.svc.cooldowns.CheckExpired(ctx, h.entity.ID, event)
}

// SetGlobalCooldown silences every plugin interaction with the entity
// until stopAt.
func (h *Handle) SetGlobalCooldown(ctx context.Context, stopAt time.Time) error {
	return h.SetCooldown(ctx, EventGlobalCooldown, stopAt, "global cooldown")
}

// SetGlobalCooldownFor is SetGlobalCooldown with a duration from now.
func (h *Handle) SetGlobalCooldownFor(ctx context.Context, duration time.Duration) error {
	return h.SetCooldownFor(ctx, EventGlobalCooldown, duration, "global cooldown")
}

// CheckGlobalCooldownExpired reports whether the global cooldown has
// passed.
func (h *Handle) CheckGlobalCooldownExpired(ctx context.Context) (bool, time.Time, error) {
	return h.CheckCooldownExpired(ctx, EventGlobalCooldown)
}
