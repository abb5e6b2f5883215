package omega

import (
	"context"
	"time"

	"github.com/yokinanya/omega-miya/internal/signin"
)

// SignIn records today's attendance. A repeat call the same day re-marks
// the existing row as a duplicate instead of adding one. Same-entity
// sign-ins are serialized through a per-entity lock so concurrent calls
// cannot both observe the day as unsigned.
func (h *Handle) SignIn(ctx context.Context) error {
	key := h.signInLockKey()
	h.svc.locks.Lock(key)
	defer h.svc.locks.Unlock(key)
	return h.svc.signIns.Record(ctx, h.entity.ID, time.Now(), "")
}

// SignInOnDate records attendance for an explicit day, used to backfill
// missed days. The row is annotated as a fixed sign-in.
func (h *Handle) SignInOnDate(ctx context.Context, day time.Time) error {
	key := h.signInLockKey()
	h.svc.locks.Lock(key)
	defer h.svc.locks.Unlock(key)
	return h.svc.signIns.Record(ctx, h.entity.ID, day, signin.InfoFixed)
}

// CheckTodaySignIn reports whether today's attendance is already recorded.
func (h *Handle) CheckTodaySignIn(ctx context.Context) (bool, error) {
	return h.svc.signIns.Signed(ctx, h.entity.ID, time.Now())
}

// SignInDays returns every recorded sign-in day, most recent first.
func (h *Handle) SignInDays(ctx context.Context) ([]time.Time, error) {
	return h.svc.signIns.Days(ctx, h.entity.ID)
}

// TotalSignInDays returns how many distinct days the entity signed in.
func (h *Handle) TotalSignInDays(ctx context.Context) (int, error) {
	days, errDays := h.svc.signIns.Days(ctx, h.entity.ID)
	if errDays != nil {
		return 0, errDays
	}
	return len(days), nil
}

// ContinuousSignInDays returns the streak of consecutive sign-in days
// ending today. Zero when today is unsigned.
func (h *Handle) ContinuousSignInDays(ctx context.Context) (int, error) {
	days, errDays := h.svc.signIns.Days(ctx, h.entity.ID)
	if errDays != nil {
		return 0, errDays
	}
	return signin.ContinuousStreak(days, time.Now()), nil
}

// LastMissingSignInDay returns the most recent day with no sign-in
// record: today when the current streak is broken or empty, otherwise the
// day before the streak started.
func (h *Handle) LastMissingSignInDay(ctx context.Context) (time.Time, error) {
	days, errDays := h.svc.signIns.Days(ctx, h.entity.ID)
	if errDays != nil {
		return time.Time{}, errDays
	}
	return signin.LastMissedDay(days, time.Now()), nil
}
