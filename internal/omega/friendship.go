package omega

import (
	"context"

	"github.com/yokinanya/omega-miya/internal/friendship"
	"github.com/yokinanya/omega-miya/internal/models"
)

// SetFriendship writes the entity's counters to absolute values.
func (h *Handle) SetFriendship(ctx context.Context, values friendship.Values) error {
	return h.svc.friendships.Set(ctx, h.entity.ID, values)
}

// ChangeFriendship applies deltas to the stored counters, creating the
// row with default status when absent. A nil status keeps the stored one.
func (h *Handle) ChangeFriendship(ctx context.Context, status *string, mood, friendshipDelta, energy, currency, responseThreshold float64) error {
	return h.svc.friendships.Change(ctx, h.entity.ID, status, mood, friendshipDelta, energy, currency, responseThreshold)
}

// Friendship returns the stored counters, initializing a zeroed row when
// absent.
func (h *Handle) Friendship(ctx context.Context) (*models.Friendship, error) {
	return h.svc.friendships.QueryOrInit(ctx, h.entity.ID)
}
