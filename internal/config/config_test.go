package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/cexpr"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cexpr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestDefaultValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
parse:
  max_depth: 50
  power_binds_tighter: true
plot:
  cells: 40
  range: 4
server:
  addr: 127.0.0.1:9000
  read_timeout: 2s
  cache_size: 16
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 50, cfg.Parse.MaxDepth)
	assert.True(t, cfg.Parse.PowerBindsTighter)
	assert.Equal(t, 40, cfg.Plot.Cells)
	assert.Equal(t, 4.0, cfg.Plot.Range)
	// Unset fields keep their defaults.
	assert.Equal(t, 600, cfg.Plot.Width)
	assert.Equal(t, 0.4, cfg.Plot.Scale)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 16, cfg.Server.CacheSize)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvServerAddr, ":1234")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFormat, "JSON")
	path := writeConfig(t, "server:\n  addr: :9999\nlog:\n  level: debug\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":1234", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "JSON", cfg.Log.Format)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)), "got %v", err)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, "plot: [1, 2\n"))
	assert.Error(t, err)
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	cfg.Parse.MaxDepth = -1
	cfg.Plot.Cells = 0
	cfg.Server.MaxExprLen = 0
	err := cfg.Validate()
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 5)
}

func TestParseOptions(t *testing.T) {
	c := Parse{MaxDepth: 3}
	_, err := cexpr.Parse("((z))", c.Options()...)
	require.NoError(t, err)
	_, err = cexpr.Parse("((((z))))", c.Options()...)
	assert.ErrorIs(t, err, cexpr.ErrSyntax)

	e, err := cexpr.Parse("2*3^2", Parse{PowerBindsTighter: true}.Options()...)
	require.NoError(t, err)
	assert.Equal(t, complex(18, 0), e.Eval(0))
}
