/*
builtin provides the compiled-in plugins: a calculator, date and time
helpers, a weather service and news headlines. Their manifests live in
the plugins directory at the root of the module. The weather and news
plugins need an API key in their settings before their tools are enabled.
*/
package builtin

import (
	// Packages
	client "github.com/mutablelogic/go-client"
	plugin "github.com/mutablelogic/go-toolcall/pkg/plugin"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Plugins returns the compiled-in plugins. The client options are used for
// plugins which call external services.
func Plugins(opts ...client.ClientOpt) plugin.Set {
	set, err := plugin.NewSet(
		Calculator(),
		Datetime(nil),
		Weather(opts...),
		News(opts...),
	)
	if err != nil {
		panic(err)
	}
	return set
}
