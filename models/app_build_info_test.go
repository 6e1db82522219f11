package models

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewAppBuildInfo_FillsUnknown(t *testing.T) {
	info := NewAppBuildInfo("1.2.0", "", "")

	assert.Equal(t, "1.2.0", info.BuildVersion())
	assert.Equal(t, BuildInfoUnknown, info.BuildDate())
	assert.Equal(t, BuildInfoUnknown, info.BuildCommit())
}

func TestAppBuildInfo_String(t *testing.T) {
	info := NewAppBuildInfo("1.2.0", "2026-10-01", "abc123")

	assert.Equal(t, "Build version: 1.2.0\nBuild date: 2026-10-01\nBuild commit: abc123", info.String())
}

func TestAppBuildInfo_MarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	log.Info().Object("build", NewAppBuildInfo("1.2.0", "2026-10-01", "")).Send()

	assert.JSONEq(t,
		`{"level":"info","build":{"version":"1.2.0","date":"2026-10-01","commit":"N/A"}}`,
		buf.String())
}
