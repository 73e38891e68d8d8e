package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "models/loan_risk_model.yaml", cfg.Model.File)
	assert.Empty(t, cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	body := `
server:
  port: "9090"
model:
  file: /opt/models/risk.yaml
simulation:
  n_simulations: 500
  horizon_months: 12
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/opt/models/risk.yaml", cfg.Model.File)
	assert.Equal(t, 500, cfg.Simulation.NSimulations)
	assert.Equal(t, 12, cfg.Simulation.HorizonMonths)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("MODEL_FILE", "/models/override.yaml")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "/models/override.yaml", cfg.Model.File)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = ""
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Model.File = ""
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Simulation.NSimulations = -1
	require.Error(t, cfg.Validate())
}

func TestSimulationParamsOverlay(t *testing.T) {
	cfg := Default()
	params := cfg.SimulationParams()
	assert.Equal(t, 100, params.NSimulations)
	assert.Equal(t, 24, params.HorizonMonths)
	assert.Equal(t, -500.0, params.StressThreshold)
	assert.Equal(t, 3, params.ConsecutiveMonths)

	cfg.Simulation.NSimulations = 250
	cfg.Simulation.StressThreshold = -1000
	params = cfg.SimulationParams()
	assert.Equal(t, 250, params.NSimulations)
	assert.Equal(t, -1000.0, params.StressThreshold)
	// Untouched fields keep the engine defaults.
	assert.Equal(t, 24, params.HorizonMonths)
	assert.Equal(t, []int{6, 12, 18, 24}, params.StressSampleMonths)
}
