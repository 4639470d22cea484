package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ShouldExitOnHelp(t *testing.T) {
	out := &bytes.Buffer{}
	opts, shouldExit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, opts)
}

func TestParse_UnknownFlag(t *testing.T) {
	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"--not-a-real-flag"}, out)
	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_RequiresBridgeAddrOrFixture(t *testing.T) {
	out := &bytes.Buffer{}
	_, _, err := Parse(nil, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one of -bridge-addr or -fixture is required")
}

func TestParse_FixtureIsSufficient(t *testing.T) {
	out := &bytes.Buffer{}
	opts, shouldExit, err := Parse([]string{"-fixture", "testdata/page.html"}, out)
	require.NoError(t, err)
	assert.False(t, shouldExit)
	require.NotNil(t, opts)
	assert.Equal(t, "testdata/page.html", opts.FixturePath)
}

func TestParse_BridgeAddrOverridesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.hcl")
	contents := "bridge_addr = \"ws://from-file:1\"\nbridge_namespace = \"/file\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	out := &bytes.Buffer{}
	opts, _, err := Parse([]string{"-config", path, "-bridge-addr", "ws://example:1234", "-bridge-namespace", "/ns"}, out)
	require.NoError(t, err)
	require.NotNil(t, opts)
	assert.Equal(t, "ws://example:1234", opts.Config.BridgeAddr)
	assert.Equal(t, "/ns", opts.Config.BridgeNamespace)
}
