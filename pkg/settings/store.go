package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	// Packages
	toml "github.com/BurntSushi/toml"
	toolcall "github.com/mutablelogic/go-toolcall"
	encrypt "github.com/mutablelogic/go-toolcall/pkg/encrypt"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Store persists plugin settings and tool enablement
type Store interface {
	toolcall.Settings

	// Set a plugin setting. A nil value removes it.
	SetPluginSetting(plugin, key string, value any) error

	// Set the enablement of a tool
	SetToolEnabled(name string, enabled bool) error
}

// MemoryStore keeps settings in memory
type MemoryStore struct {
	mu      sync.RWMutex
	plugins map[string]map[string]any
	tools   map[string]bool
}

// FileStore is a MemoryStore which is written to a TOML file on every
// change. String values of the form ${VAR} are expanded from the
// environment when read, and sealed values are opened with the passphrase.
type FileStore struct {
	*MemoryStore
	path       string
	passphrase string
	opened     sync.Map // sealed value -> plaintext
}

// document is the layout of the settings file
type document struct {
	Plugins map[string]map[string]any `toml:"plugins"`
	Tools   map[string]bool           `toml:"tools"`
}

var _ Store = (*MemoryStore)(nil)
var _ Store = (*FileStore)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var reEnv = regexp.MustCompile(`\$\{([^}]+)\}`)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		plugins: make(map[string]map[string]any),
		tools:   make(map[string]bool),
	}
}

// OpenFile returns a store backed by a TOML file. A missing file is
// created on the first change.
func OpenFile(path string) (*FileStore, error) {
	store := &FileStore{MemoryStore: NewMemoryStore(), path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return store, nil
	} else if err != nil {
		return nil, err
	}
	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, toolcall.ErrParse.Withf("%s: %v", path, err)
	}
	for plugin, values := range doc.Plugins {
		store.plugins[plugin] = values
	}
	for name, enabled := range doc.Tools {
		store.tools[name] = enabled
	}
	return store, nil
}

///////////////////////////////////////////////////////////////////////////////
// MEMORY STORE

// PluginSetting returns a stored value
func (m *MemoryStore) PluginSetting(plugin, key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.plugins[plugin][key]
	return value, exists
}

// ToolEnabled returns the stored enablement of a tool
func (m *MemoryStore) ToolEnabled(name string) (bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	enabled, exists := m.tools[name]
	return enabled, exists
}

// SetPluginSetting stores a value, or removes it when nil
func (m *MemoryStore) SetPluginSetting(plugin, key string, value any) error {
	if plugin == "" || key == "" {
		return toolcall.ErrBadParameter.With("plugin and key are required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if value == nil {
		delete(m.plugins[plugin], key)
		return nil
	}
	if m.plugins[plugin] == nil {
		m.plugins[plugin] = make(map[string]any)
	}
	m.plugins[plugin][key] = value
	return nil
}

// SetToolEnabled stores the enablement of a tool
func (m *MemoryStore) SetToolEnabled(name string, enabled bool) error {
	if name == "" {
		return toolcall.ErrBadParameter.With("tool name is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tools[name] = enabled
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// FILE STORE

// Path returns the path of the settings file
func (f *FileStore) Path() string {
	return f.path
}

// SetPassphrase sets the passphrase used to seal and open secrets
func (f *FileStore) SetPassphrase(passphrase string) error {
	if err := encrypt.ValidatePassphrase(passphrase); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.passphrase = passphrase
	return nil
}

// PluginSetting returns a stored value with environment variables expanded.
// A sealed value which cannot be opened is reported as not stored.
func (f *FileStore) PluginSetting(plugin, key string) (any, bool) {
	value, exists := f.MemoryStore.PluginSetting(plugin, key)
	str, ok := value.(string)
	if !ok {
		return value, exists
	}
	if encrypt.IsSealed(str) {
		plaintext, err := f.open(str)
		if err != nil {
			return nil, false
		}
		return plaintext, true
	}
	return expandEnv(str), exists
}

// SetSecret stores a secret, sealed when a passphrase is set, and writes
// the file
func (f *FileStore) SetSecret(plugin, key, value string) error {
	f.mu.RLock()
	passphrase := f.passphrase
	f.mu.RUnlock()
	if passphrase == "" || value == "" || strings.Contains(value, "${") {
		return f.SetPluginSetting(plugin, key, value)
	}
	sealed, err := encrypt.Seal(passphrase, value)
	if err != nil {
		return err
	}
	f.opened.Store(sealed, value)
	return f.SetPluginSetting(plugin, key, sealed)
}

// SetPluginSetting stores a value and writes the file
func (f *FileStore) SetPluginSetting(plugin, key string, value any) error {
	if err := f.MemoryStore.SetPluginSetting(plugin, key, value); err != nil {
		return err
	}
	return f.save()
}

// SetToolEnabled stores the enablement of a tool and writes the file
func (f *FileStore) SetToolEnabled(name string, enabled bool) error {
	if err := f.MemoryStore.SetToolEnabled(name, enabled); err != nil {
		return err
	}
	return f.save()
}

func (f *FileStore) open(sealed string) (string, error) {
	if plaintext, exists := f.opened.Load(sealed); exists {
		return plaintext.(string), nil
	}
	f.mu.RLock()
	passphrase := f.passphrase
	f.mu.RUnlock()
	if passphrase == "" {
		return "", toolcall.ErrBadParameter.With("no passphrase to open secrets")
	}
	plaintext, err := encrypt.Open(passphrase, sealed)
	if err != nil {
		return "", err
	}
	f.opened.Store(sealed, plaintext)
	return plaintext, nil
}

func (f *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	doc := document{Plugins: f.plugins, Tools: f.tools}

	// Write to a temporary file and rename it into place
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".settings-*.toml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := toml.NewEncoder(tmp).Encode(doc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// expandEnv replaces ${VAR} with the value of the environment variable
func expandEnv(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return reEnv.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}"))
	})
}
