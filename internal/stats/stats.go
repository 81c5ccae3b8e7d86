package stats

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// RunSummary records one completed simulation for the history views
// (in-memory only; history does not survive a restart).
type RunSummary struct {
	ID                 string    `json:"id"`
	At                 time.Time `json:"at"`
	Attacker           string    `json:"attacker"`
	Defender           string    `json:"defender"`
	Trials             int       `json:"trials"`
	InvertedFights     int       `json:"inverted_fights"`
	AttackerMeanWounds float64   `json:"attacker_mean_wounds"`
	DefenderMeanWounds float64   `json:"defender_mean_wounds"`
	// MeanDamageDealt is the defender's starting wounds minus its mean
	// remaining wounds.
	MeanDamageDealt float64 `json:"mean_damage_dealt"`
}

var (
	mu    sync.Mutex
	runs  = make(map[string]RunSummary)
	order []string
	// Per-day best run by mean damage dealt (date string YYYY-MM-DD UTC).
	dailyBest = make(map[string]RunSummary)
)

// SaveRun stores a run summary, assigning an ID and timestamp when
// missing, and updates the daily best. Returns the stored summary.
func SaveRun(s RunSummary) RunSummary {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.At.IsZero() {
		s.At = time.Now().UTC()
	}
	dateKey := s.At.UTC().Format("2006-01-02")

	mu.Lock()
	defer mu.Unlock()
	runs[s.ID] = s
	order = append(order, s.ID)
	if best, ok := dailyBest[dateKey]; !ok || s.MeanDamageDealt > best.MeanDamageDealt {
		dailyBest[dateKey] = s
	}
	return s
}

// GetRun returns a stored run by ID.
func GetRun(id string) (RunSummary, bool) {
	mu.Lock()
	defer mu.Unlock()
	s, ok := runs[id]
	return s, ok
}

// RecentRuns returns up to limit runs, newest first.
func RecentRuns(limit int) []RunSummary {
	mu.Lock()
	defer mu.Unlock()
	if limit <= 0 || limit > len(order) {
		limit = len(order)
	}
	out := make([]RunSummary, 0, limit)
	for i := len(order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, runs[order[i]])
	}
	return out
}

// DailyBest returns today's highest-damage run (UTC), if any.
func DailyBest() (RunSummary, bool) {
	dateKey := time.Now().UTC().Format("2006-01-02")
	mu.Lock()
	defer mu.Unlock()
	s, ok := dailyBest[dateKey]
	return s, ok
}

// Reset clears all recorded runs. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	runs = make(map[string]RunSummary)
	order = nil
	dailyBest = make(map[string]RunSummary)
}
