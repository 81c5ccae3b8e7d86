package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pefman/aos-duel/internal/game"
)

const sampleRoster = `{
	"units": [
		{
			"name": "Warden",
			"models": 20,
			"wounds_per_model": 1,
			"save": 4,
			"ward": 5,
			"champion": true,
			"weapons": [
				{"name": "Pike", "attacks": 2, "to_hit": 3, "to_wound": 4, "rend": 1, "damage": 1, "crit_mortals": true}
			]
		},
		{
			"name": "Bladelord",
			"models": 10,
			"wounds_per_model": 2,
			"save": 4,
			"ward": 7,
			"ethereal": true,
			"champion": true,
			"weapons": [
				{"name": "Blades", "attacks": 3, "to_hit": 3, "to_wound": 4, "rend": 1, "damage": 1, "crit_explode": true}
			]
		}
	]
}`

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "units.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidRoster(t *testing.T) {
	s, err := Load(writeRoster(t, sampleRoster))
	require.NoError(t, err)

	assert.Equal(t, []string{"Bladelord", "Warden"}, s.Names())

	warden, ok := s.Unit("Warden")
	require.True(t, ok)
	assert.Equal(t, 20, warden.TotalWounds)
	assert.Equal(t, 5, warden.Ward)
	require.Len(t, warden.Weapons, 1)
	assert.Equal(t, game.CritMortal, warden.Weapons[0].CritEffect)
	assert.Equal(t, 6, warden.Weapons[0].CritThreshold)

	bladelord, ok := s.Unit("Bladelord")
	require.True(t, ok)
	assert.Equal(t, 0, bladelord.Ward, "ward 7 normalizes to no ward")
	assert.Equal(t, game.CritExtraHits, bladelord.Weapons[0].CritEffect)

	_, ok = s.Unit("Nagash")
	assert.False(t, ok)
}

func TestLoad_Records(t *testing.T) {
	s, err := Load(writeRoster(t, sampleRoster))
	require.NoError(t, err)

	recs := s.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "Bladelord", recs[0].Name)
	assert.Equal(t, "Warden", recs[1].Name)

	rec, ok := s.Record("Warden")
	require.True(t, ok)
	assert.True(t, rec.Weapons[0].CritMortals)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestParse_BadJSON(t *testing.T) {
	_, err := Parse([]byte(`{"units": [`))
	assert.Error(t, err)
}

func TestParse_ConflictingCritModes(t *testing.T) {
	_, err := Parse([]byte(`{
		"units": [{
			"name": "Broken", "models": 1, "wounds_per_model": 1, "save": 4,
			"weapons": [{"name": "Axe", "attacks": 1, "to_hit": 3, "to_wound": 3, "damage": 1,
				"crit_mortals": true, "crit_explode": true}]
		}]
	}`))
	assert.ErrorIs(t, err, game.ErrConflictingCritModes)
}

func TestParse_InvalidUnit(t *testing.T) {
	_, err := Parse([]byte(`{
		"units": [{"name": "Broken", "models": -2, "wounds_per_model": 1, "save": 4}]
	}`))
	assert.ErrorIs(t, err, game.ErrInvalidUnit)
}

func TestParse_DuplicateNames(t *testing.T) {
	_, err := Parse([]byte(`{
		"units": [
			{"name": "Warden", "models": 1, "wounds_per_model": 1, "save": 4},
			{"name": "Warden", "models": 2, "wounds_per_model": 1, "save": 4}
		]
	}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}
