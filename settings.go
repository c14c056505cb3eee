package toolcall

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Settings is the persisted operator configuration consulted by the core.
// Values are already decrypted when returned.
type Settings interface {
	// PluginSetting returns a stored value for a plugin setting, and false
	// when nothing is stored for the key
	PluginSetting(plugin, key string) (any, bool)

	// ToolEnabled returns the stored enablement for a tool, and false as the
	// second value when the operator never set it
	ToolEnabled(name string) (bool, bool)
}
