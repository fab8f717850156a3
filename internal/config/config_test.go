package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-lattice/internal/pricing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "lr", cfg.Scheme)
	require.Equal(t, 300, cfg.Steps)
	require.True(t, cfg.Parallel)
	require.Equal(t, 1.0, cfg.Bumps.TimeDays)
	require.Equal(t, 1e-4, cfg.Bumps.Vol)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "release", cfg.Server.Mode)
	require.Equal(t, "./out", cfg.ReportDir)
	require.Equal(t, int32(6), cfg.Precision)
	require.Equal(t, "stderr", cfg.Log.Output)
	require.Equal(t, 1, cfg.Log.Verbosity)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lattice.yaml")
	content := `
scheme: crr
steps: 501
parallel: false
bumps:
  time_days: 2
log:
  verbosity: 3
  format: json
server:
  addr: ":9090"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("LATTICE_PRECISION", "4")
	t.Setenv("LATTICE_BUMPS_VOL", "0.001")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "crr", cfg.Scheme)
	require.Equal(t, 501, cfg.Steps)
	require.False(t, cfg.Parallel)
	require.Equal(t, 2.0, cfg.Bumps.TimeDays)
	require.Equal(t, 0.001, cfg.Bumps.Vol)
	require.Equal(t, 1e-4, cfg.Bumps.Rate)
	require.Equal(t, 3, cfg.Log.Verbosity)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, int32(4), cfg.Precision)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("LATTICE_SCHEME", "trinomial")
	_, err := Load("")
	require.ErrorIs(t, err, pricing.ErrInvalidParameter)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{Scheme: "lr", Steps: 10, Bumps: BumpConfig{TimeDays: 1, Vol: 1e-4, Rate: 1e-4}, Precision: 6}
	}
	c := base()
	require.NoError(t, c.Validate())

	c = base()
	c.Steps = 0
	require.Error(t, c.Validate())

	c = base()
	c.Bumps.Rate = 0
	require.Error(t, c.Validate())

	c = base()
	c.Precision = 20
	require.Error(t, c.Validate())
}

func TestPricerOptions(t *testing.T) {
	c := Config{Scheme: "crr", Steps: 10, Parallel: false, Bumps: BumpConfig{TimeDays: 1, Vol: 1e-4, Rate: 1e-4}}
	opts, err := c.PricerOptions()
	require.NoError(t, err)
	require.Len(t, opts, 3)
	require.Equal(t, pricing.CoxRossRubinstein, pricing.NewPricer(opts...).Scheme())

	c.Parallel = true
	opts, err = c.PricerOptions()
	require.NoError(t, err)
	require.Len(t, opts, 2)

	c.Scheme = "binomial"
	_, err = c.PricerOptions()
	require.Error(t, err)
}
