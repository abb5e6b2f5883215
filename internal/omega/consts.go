package omega

// Reserved module, plugin and node names used by the facade's own
// bookkeeping. Plugins must not write rows under these names.
const (
	ModuleInternal = "OmegaInternal"
	PluginInternal = "OmegaInternal"

	NodeGlobalPermission = "OmegaPermissionGlobalEnable"
	NodePermissionLevel  = "OmegaPermissionLevel"
	NodeSkipCooldown     = "skip_cooldown"

	EventGlobalCooldown = "OmegaGlobalCooldown"

	PluginCharacterAttribute = "OmegaInternalCharacterAttribute"
	PluginCharacterProfile   = "OmegaInternalCharacterProfile"

	attributeSetterCooldownPrefix = "OmegaICAttrSetter"
	profileSetterCooldownPrefix   = "OmegaICProfileSetter"
)
