package omega

import (
	"context"

	"github.com/yokinanya/omega-miya/internal/authnode"
	"github.com/yokinanya/omega-miya/internal/models"
)

// AuthSetting returns one permission node or persisted setting row.
func (h *Handle) AuthSetting(ctx context.Context, module, plugin, node string) (*models.AuthSetting, error) {
	return h.svc.auth.Get(ctx, h.entity.ID, module, plugin, node)
}

// SetAuthSetting creates or overwrites one permission node.
func (h *Handle) SetAuthSetting(ctx context.Context, module, plugin, node string, available int, value string) error {
	return h.svc.auth.Set(ctx, h.entity.ID, module, plugin, node, available, value)
}

// DeleteAuthSetting removes one permission node. Missing rows are not an
// error.
func (h *Handle) DeleteAuthSetting(ctx context.Context, module, plugin, node string) error {
	return h.svc.auth.Delete(ctx, h.entity.ID, module, plugin, node)
}

// CheckAuthSetting reports whether the stored node satisfies required.
// Strict demands equality, non-strict treats required as a floor. An
// absent node is false either way.
func (h *Handle) CheckAuthSetting(ctx context.Context, module, plugin, node string, required int, strict bool) (bool, error) {
	return h.svc.auth.Check(ctx, h.entity.ID, module, plugin, node, required, strict)
}

// VerifyAuthSetting is CheckAuthSetting with the absent case kept apart:
// Granted, Denied or Unset.
func (h *Handle) VerifyAuthSetting(ctx context.Context, module, plugin, node string, required int, strict bool) (authnode.VerifyResult, error) {
	return h.svc.auth.Verify(ctx, h.entity.ID, module, plugin, node, required, strict)
}

// AllAuthSettings returns every stored node for the entity.
func (h *Handle) AllAuthSettings(ctx context.Context) ([]models.AuthSetting, error) {
	return h.svc.auth.List(ctx, h.entity.ID, "", "")
}

// PluginAuthSettings returns every stored node one plugin owns.
func (h *Handle) PluginAuthSettings(ctx context.Context, module, plugin string) ([]models.AuthSetting, error) {
	return h.svc.auth.List(ctx, h.entity.ID, module, plugin)
}

// EnableGlobalPermission opens the entity's global feature switch. The
// switch gates every plugin interaction with the entity.
func (h *Handle) EnableGlobalPermission(ctx context.Context) error {
	return h.SetAuthSetting(ctx, ModuleInternal, PluginInternal, NodeGlobalPermission, 1, "")
}

// DisableGlobalPermission closes the entity's global feature switch.
func (h *Handle) DisableGlobalPermission(ctx context.Context) error {
	return h.SetAuthSetting(ctx, ModuleInternal, PluginInternal, NodeGlobalPermission, 0, "")
}

// CheckGlobalPermission reports whether the global switch is open.
func (h *Handle) CheckGlobalPermission(ctx context.Context) (bool, error) {
	return h.CheckAuthSetting(ctx, ModuleInternal, PluginInternal, NodeGlobalPermission, 1, true)
}

// SetPermissionLevel stores the entity's permission level.
func (h *Handle) SetPermissionLevel(ctx context.Context, level int) error {
	return h.SetAuthSetting(ctx, ModuleInternal, PluginInternal, NodePermissionLevel, level, "")
}

// CheckPermissionLevel reports whether the stored level reaches level.
func (h *Handle) CheckPermissionLevel(ctx context.Context, level int) (bool, error) {
	return h.CheckAuthSetting(ctx, ModuleInternal, PluginInternal, NodePermissionLevel, level, false)
}

// EnableSkipCooldown grants the entity the right to bypass one plugin's
// cooldowns.
func (h *Handle) EnableSkipCooldown(ctx context.Context, module, plugin string) error {
	return h.SetAuthSetting(ctx, module, plugin, NodeSkipCooldown, 1, "")
}

// DisableSkipCooldown revokes the bypass right.
func (h *Handle) DisableSkipCooldown(ctx context.Context, module, plugin string) error {
	return h.SetAuthSetting(ctx, module, plugin, NodeSkipCooldown, 0, "")
}

// CheckSkipCooldown reports whether the entity may bypass the plugin's
// cooldowns.
func (h *Handle) CheckSkipCooldown(ctx context.Context, module, plugin string) (bool, error) {
	return h.CheckAuthSetting(ctx, module, plugin, NodeSkipCooldown, 1, true)
}
