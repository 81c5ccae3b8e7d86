package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, ":8080", GetString("listenAddr"))
	assert.Equal(t, "./rosters/units.json", GetString("rosterPath"))
	assert.Equal(t, 10000, GetInt("sim.defaultTrials"))
	assert.Equal(t, 200000, GetInt("sim.maxTrials"))
	assert.Equal(t, 500, GetInt("sim.progressEvery"))
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"listenAddr": ":9999",
		"sim": { "defaultTrials": 500 }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aos-duel.cfg.json"), []byte(cfg), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, ":9999", GetString("listenAddr"))
	assert.Equal(t, 500, GetInt("sim.defaultTrials"))
	// Untouched keys keep their defaults.
	assert.Equal(t, 200000, GetInt("sim.maxTrials"))
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aos-duel.cfg.json"), []byte(`{not json`), 0644))

	assert.Error(t, Load(dir))
}
