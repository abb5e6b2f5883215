package omega

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/yokinanya/omega-miya/internal/authnode"
	"github.com/yokinanya/omega-miya/internal/models"
)

// Character data rides on the auth setting table under reserved plugin
// names: attributes are non-negative integers stored as digit strings,
// profiles are free-form strings. Both are usable only while their row's
// available flag is 1.
var (
	// ErrValueUnavailable marks a row present but disabled.
	ErrValueUnavailable = errors.New("omega: character value disabled")
	// ErrMalformedValue marks an attribute whose stored value is not a
	// plain digit string.
	ErrMalformedValue = errors.New("omega: character value malformed")
)

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SetCharacterAttribute stores one integer attribute, enabling it.
func (h *Handle) SetCharacterAttribute(ctx context.Context, name string, value int) error {
	return h.SetAuthSetting(ctx, ModuleInternal, PluginCharacterAttribute, name, 1, strconv.Itoa(value))
}

// CharacterAttribute returns one attribute's value. Fails with
// authnode.ErrNotFound when never set, ErrValueUnavailable when disabled
// and ErrMalformedValue when the stored value is not a digit string.
func (h *Handle) CharacterAttribute(ctx context.Context, name string) (int, error) {
	row, errGet := h.AuthSetting(ctx, ModuleInternal, PluginCharacterAttribute, name)
	if errGet != nil {
		return 0, errGet
	}
	if row.Available != 1 {
		return 0, fmt.Errorf("%w: attribute %q", ErrValueUnavailable, name)
	}
	if !isDigits(row.Value) {
		return 0, fmt.Errorf("%w: attribute %q value %q", ErrMalformedValue, name, row.Value)
	}
	value, errParse := strconv.Atoi(row.Value)
	if errParse != nil {
		return 0, fmt.Errorf("%w: attribute %q value %q", ErrMalformedValue, name, row.Value)
	}
	return value, nil
}

// CharacterAttributeOrInit returns the attribute, calling factory for an
// initial value when it is missing, disabled or malformed. The factory
// runs at most once and its result is persisted before returning.
func (h *Handle) CharacterAttributeOrInit(ctx context.Context, name string, factory func() int) (int, error) {
	value, errGet := h.CharacterAttribute(ctx, name)
	if errGet == nil {
		return value, nil
	}
	if !errors.Is(errGet, authnode.ErrNotFound) &&
		!errors.Is(errGet, ErrValueUnavailable) &&
		!errors.Is(errGet, ErrMalformedValue) {
		return 0, errGet
	}
	value = factory()
	if errSet := h.SetCharacterAttribute(ctx, name, value); errSet != nil {
		return 0, errSet
	}
	return value, nil
}

// DisableCharacterAttribute keeps the attribute row but marks it unusable.
func (h *Handle) DisableCharacterAttribute(ctx context.Context, name string) error {
	return h.SetAuthSetting(ctx, ModuleInternal, PluginCharacterAttribute, name, 0, "")
}

// DeleteCharacterAttribute removes the attribute row.
func (h *Handle) DeleteCharacterAttribute(ctx context.Context, name string) error {
	return h.DeleteAuthSetting(ctx, ModuleInternal, PluginCharacterAttribute, name)
}

// AllCharacterAttributes returns every attribute row for the entity.
func (h *Handle) AllCharacterAttributes(ctx context.Context) ([]models.AuthSetting, error) {
	return h.PluginAuthSettings(ctx, ModuleInternal, PluginCharacterAttribute)
}

// SetCharacterProfile stores one profile string, enabling it.
func (h *Handle) SetCharacterProfile(ctx context.Context, name, value string) error {
	return h.SetAuthSetting(ctx, ModuleInternal, PluginCharacterProfile, name, 1, value)
}

// CharacterProfile returns one profile's value. Fails with
// authnode.ErrNotFound when never set and ErrValueUnavailable when
// disabled.
func (h *Handle) CharacterProfile(ctx context.Context, name string) (string, error) {
	row, errGet := h.AuthSetting(ctx, ModuleInternal, PluginCharacterProfile, name)
	if errGet != nil {
		return "", errGet
	}
	if row.Available != 1 {
		return "", fmt.Errorf("%w: profile %q", ErrValueUnavailable, name)
	}
	return row.Value, nil
}

// CharacterProfileOrInit returns the profile, calling factory for an
// initial value when it is missing or disabled. The factory runs at most
// once and its result is persisted before returning.
func (h *Handle) CharacterProfileOrInit(ctx context.Context, name string, factory func() string) (string, error) {
	value, errGet := h.CharacterProfile(ctx, name)
	if errGet == nil {
		return value, nil
	}
	if !errors.Is(errGet, authnode.ErrNotFound) && !errors.Is(errGet, ErrValueUnavailable) {
		return "", errGet
	}
	value = factory()
	if errSet := h.SetCharacterProfile(ctx, name, value); errSet != nil {
		return "", errSet
	}
	return value, nil
}

// DisableCharacterProfile keeps the profile row but marks it unusable.
func (h *Handle) DisableCharacterProfile(ctx context.Context, name string) error {
	return h.SetAuthSetting(ctx, ModuleInternal, PluginCharacterProfile, name, 0, "")
}

// DeleteCharacterProfile removes the profile row.
func (h *Handle) DeleteCharacterProfile(ctx context.Context, name string) error {
	return h.DeleteAuthSetting(ctx, ModuleInternal, PluginCharacterProfile, name)
}

// AllCharacterProfiles returns every profile row for the entity.
func (h *Handle) AllCharacterProfiles(ctx context.Context) ([]models.AuthSetting, error) {
	return h.PluginAuthSettings(ctx, ModuleInternal, PluginCharacterProfile)
}

// SetCharacterAttributeSetterCooldown throttles updates to one attribute
// until stopAt.
func (h *Handle) SetCharacterAttributeSetterCooldown(ctx context.Context, name string, stopAt time.Time) error {
	event := attributeSetterCooldownPrefix + "_" + name
	return h.SetCooldown(ctx, event, stopAt, fmt.Sprintf("attribute %q setter cooldown", name))
}

// CheckCharacterAttributeSetterCooldownExpired reports whether the
// attribute may be updated again.
func (h *Handle) CheckCharacterAttributeSetterCooldownExpired(ctx context.Context, name string) (bool, time.Time, error) {
	return h.CheckCooldownExpired(ctx, attributeSetterCooldownPrefix+"_"+name)
}

// SetCharacterProfileSetterCooldown throttles updates to one profile
// until stopAt.
func (h *Handle) SetCharacterProfileSetterCooldown(ctx context.Context, name string, stopAt time.Time) error {
	event := profileSetterCooldownPrefix + "_" + name
	return h.SetCooldown(ctx, event, stopAt, fmt.Sprintf("profile %q setter cooldown", name))
}

// CheckCharacterProfileSetterCooldownExpired reports whether the profile
// may be updated again.
func (h *Handle) CheckCharacterProfileSetterCooldownExpired(ctx context.Context, name string) (bool, time.Time, error) {
	return h.CheckCooldownExpired(ctx, profileSetterCooldownPrefix+"_"+name)
}
