package plugin

import (
	"sort"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	toolcall "github.com/mutablelogic/go-toolcall"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Plugin is the compiled-in code of a plugin. The manifest names handlers
// by the keys of the map returned by Handlers.
type Plugin interface {
	// Return the plugin id, which matches the id in the manifest
	ID() string

	// Return the handlers of the plugin, keyed by handler name
	Handlers() map[string]schema.Handler
}

// Set is the table of compiled-in plugins keyed by plugin id
type Set map[string]Plugin

// Handlers maps handler names to functions
type Handlers map[string]schema.Handler

type plugin struct {
	id       string
	handlers Handlers
}

var _ Plugin = (*plugin)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a plugin from an id and a table of handlers
func New(id string, handlers Handlers) Plugin {
	return &plugin{id: id, handlers: handlers}
}

// NewSet returns a set of plugins, rejecting invalid and duplicate ids
func NewSet(plugins ...Plugin) (Set, error) {
	set := make(Set, len(plugins))
	if err := set.Add(plugins...); err != nil {
		return nil, err
	}
	return set, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Add plugins to the set
func (s Set) Add(plugins ...Plugin) error {
	for _, p := range plugins {
		id := p.ID()
		if !types.IsIdentifier(id) {
			return toolcall.ErrBadParameter.Withf("invalid plugin id: %q", id)
		}
		if _, exists := s[id]; exists {
			return toolcall.ErrDuplicateName.Withf("plugin %q", id)
		}
		s[id] = p
	}
	return nil
}

// Lookup returns a plugin by id, or nil
func (s Set) Lookup(id string) Plugin {
	return s[id]
}

// IDs returns the plugin ids in lexical order
func (s Set) IDs() []string {
	result := make([]string, 0, len(s))
	for id := range s {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

func (p *plugin) ID() string {
	return p.id
}

func (p *plugin) Handlers() map[string]schema.Handler {
	return p.handlers
}
