package version_test

import (
	"runtime"
	"testing"

	// Packages
	version "github.com/mutablelogic/go-toolcall/pkg/version"
	assert "github.com/stretchr/testify/assert"
)

func Test_version_001(t *testing.T) {
	assert := assert.New(t)
	meta := version.New("toolbot")
	assert.Equal("toolbot", meta.Name)
	assert.Equal(runtime.Version(), meta.Compiler)
	assert.Equal(runtime.GOOS+"/"+runtime.GOARCH, meta.Platform)
	assert.NotEmpty(meta.Version)
}

func Test_version_002(t *testing.T) {
	assert := assert.New(t)
	version.GitTag = "v1.2.3"
	defer func() { version.GitTag = "" }()
	assert.Equal("v1.2.3", version.Version())
}
