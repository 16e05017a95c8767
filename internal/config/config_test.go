package config

import (
	"os"
	"path/filepath"
	"testing"

	"normfit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 1000, cfg.Fit.DefaultSize)
	assert.Equal(t, 100000, cfg.Fit.MaxSampleSize)
	assert.Equal(t, 0.05, cfg.Fit.Alpha)
	assert.Equal(t, "legacy", cfg.Fit.ExpectationMode)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("PORT", "9090")
	t.Setenv("NORMFIT_DEFAULT_SIZE", "500")
	t.Setenv("NORMFIT_EXPECTATION_MODE", "CDF")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PPROF_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 500, cfg.Fit.DefaultSize)
	assert.Equal(t, "cdf", cfg.Fit.ExpectationMode)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
	assert.True(t, cfg.Profiling.Enabled)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "normfit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7000"
fit:
  default_mean: -2.5
  default_variance: 9
  max_sample_size: 50000
`), 0o600))

	t.Setenv(ConfigFileEnv, path)
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7001", cfg.Server.Port, "env wins over file")
	assert.Equal(t, -2.5, cfg.Fit.DefaultMean)
	assert.Equal(t, 9.0, cfg.Fit.DefaultVariance)
	assert.Equal(t, 50000, cfg.Fit.MaxSampleSize)
	assert.Equal(t, 1000, cfg.Fit.DefaultSize, "unset keys keep defaults")
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fit:\n  default_size: 1\n"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fit: [unterminated"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestValidate_Rules(t *testing.T) {
	cfg := Default()
	cfg.Fit.MaxSampleSize = 10
	assert.Error(t, Validate(cfg), "max below default size")

	cfg = Default()
	cfg.Fit.ExpectationMode = "exact"
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Server.GinMode = "verbose"
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Fit.Alpha = 1
	assert.Error(t, Validate(cfg))

	assert.NoError(t, Validate(Default()))
}
