package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRun_AssignsIDAndTimestamp(t *testing.T) {
	t.Cleanup(Reset)

	saved := SaveRun(RunSummary{Attacker: "Varanguard", Defender: "Warden", Trials: 100})
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.At.IsZero())

	got, ok := GetRun(saved.ID)
	require.True(t, ok)
	assert.Equal(t, saved, got)

	_, ok = GetRun("missing")
	assert.False(t, ok)
}

func TestRecentRuns_NewestFirst(t *testing.T) {
	t.Cleanup(Reset)

	a := SaveRun(RunSummary{Attacker: "A"})
	b := SaveRun(RunSummary{Attacker: "B"})
	c := SaveRun(RunSummary{Attacker: "C"})

	recent := RecentRuns(2)
	require.Len(t, recent, 2)
	assert.Equal(t, c.ID, recent[0].ID)
	assert.Equal(t, b.ID, recent[1].ID)

	all := RecentRuns(0)
	require.Len(t, all, 3)
	assert.Equal(t, a.ID, all[2].ID)
}

func TestDailyBest_TracksHighestDamage(t *testing.T) {
	t.Cleanup(Reset)

	_, ok := DailyBest()
	assert.False(t, ok)

	SaveRun(RunSummary{Attacker: "A", MeanDamageDealt: 4.5})
	high := SaveRun(RunSummary{Attacker: "B", MeanDamageDealt: 9.25})
	SaveRun(RunSummary{Attacker: "C", MeanDamageDealt: 7.0})

	best, ok := DailyBest()
	require.True(t, ok)
	assert.Equal(t, high.ID, best.ID)
}
