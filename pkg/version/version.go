package version

import (
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Metadata describes the running binary
type Metadata struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Compiler string `json:"compiler"`
	Source   string `json:"source,omitempty"`
	Hash     string `json:"hash,omitempty"`
	Time     string `json:"build_time,omitempty"`
	Modified bool   `json:"modified,omitempty"`
	Platform string `json:"platform"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Set with -ldflags
var (
	GitTag    string
	GitBranch string
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the tag, the branch or the short revision of the build,
// or "dev"
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	if hash := setting("vcs.revision"); len(hash) >= 12 {
		return hash[:12]
	}
	return "dev"
}

// New returns the metadata of the running binary
func New(name string) Metadata {
	meta := Metadata{
		Name:     name,
		Version:  Version(),
		Compiler: runtime.Version(),
		Hash:     setting("vcs.revision"),
		Time:     setting("vcs.time"),
		Modified: setting("vcs.modified") == "true",
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		meta.Source = info.Main.Path
	}
	return meta
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func setting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
