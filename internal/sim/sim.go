// Package sim runs Monte Carlo duels between two unit templates: many
// independent single-exchange engagements on fresh copies, aggregated
// into mean remaining wounds per side.
package sim

import (
	"errors"
	"fmt"

	"github.com/pefman/aos-duel/internal/engine"
	"github.com/pefman/aos-duel/internal/game"
)

// ErrNoTrials is returned when a simulation is requested with fewer
// than one trial; the mean would be undefined.
var ErrNoTrials = errors.New("trial count must be at least 1")

// Params configures one simulation run.
type Params struct {
	Trials int `json:"trials"`
	// InversionProb is the chance per trial that the defender strikes
	// first instead of the nominal attacker.
	InversionProb    float64 `json:"inversion_probability"`
	AttackerHitMod   int     `json:"attacker_hit_modifier,omitempty"`
	AttackerWoundMod int     `json:"attacker_wound_modifier,omitempty"`
	DefenderHitMod   int     `json:"defender_hit_modifier,omitempty"`
	DefenderWoundMod int     `json:"defender_wound_modifier,omitempty"`
	// Seed fixes the dice stream for reproducible runs; 0 seeds from
	// the clock.
	Seed int64 `json:"seed,omitempty"`
	// OnProgress, when set, is called every ProgressEvery trials and
	// once on the final trial.
	OnProgress    func(done, total int) `json:"-"`
	ProgressEvery int                   `json:"-"`
}

func (p Params) validate() error {
	if p.Trials < 1 {
		return ErrNoTrials
	}
	if p.InversionProb < 0 || p.InversionProb > 1 {
		return fmt.Errorf("inversion probability %v outside [0,1]", p.InversionProb)
	}
	return nil
}

// Result aggregates the terminal state of all trials.
type Result struct {
	AttackerMeanWounds float64 `json:"attacker_mean_wounds"`
	DefenderMeanWounds float64 `json:"defender_mean_wounds"`
	InvertedFights     int     `json:"inverted_fights"`
	Trials             int     `json:"trials"`
}

// Simulate runs p.Trials independent engagements between fresh clones
// of the two templates. Templates and their weapon lists are never
// mutated.
func Simulate(attacker, defender *game.Unit, p Params) (Result, error) {
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	roller := engine.NewRandom()
	if p.Seed != 0 {
		roller = engine.New(p.Seed)
	}

	every := p.ProgressEvery
	if every < 1 {
		every = 1
	}

	var attackerWounds, defenderWounds, inverted int
	for i := 0; i < p.Trials; i++ {
		att := attacker.Clone()
		def := defender.Clone()
		if runExchange(roller, att, def, p) {
			inverted++
		}
		attackerWounds += att.TotalWounds
		defenderWounds += def.TotalWounds
		if p.OnProgress != nil && ((i+1)%every == 0 || i+1 == p.Trials) {
			p.OnProgress(i+1, p.Trials)
		}
	}

	return Result{
		AttackerMeanWounds: float64(attackerWounds) / float64(p.Trials),
		DefenderMeanWounds: float64(defenderWounds) / float64(p.Trials),
		InvertedFights:     inverted,
		Trials:             p.Trials,
	}, nil
}

// runExchange plays one combat-phase exchange: the first striker
// resolves and applies its attacks, then the second striker counters if
// it still stands. Reports whether initiative was inverted.
func runExchange(r *engine.Roller, att, def *game.Unit, p Params) bool {
	first, second := att, def
	firstHit, firstWound := p.AttackerHitMod, p.AttackerWoundMod
	secondHit, secondWound := p.DefenderHitMod, p.DefenderWoundMod

	inverted := r.Float64() < p.InversionProb
	if inverted {
		first, second = def, att
		firstHit, firstWound = p.DefenderHitMod, p.DefenderWoundMod
		secondHit, secondWound = p.AttackerHitMod, p.AttackerWoundMod
	}

	if first.Alive {
		applyDamage(r, second, first.ResolveAttacks(r, firstHit, firstWound))
	}
	if second.Alive {
		applyDamage(r, first, second.ResolveAttacks(r, secondHit, secondWound))
	}
	return inverted
}

func applyDamage(r *engine.Roller, target *game.Unit, events []game.DamageEvent) {
	for _, ev := range events {
		if ev.Mortal {
			target.TakeDamage(r, ev.Damage, 0, true, false)
		} else {
			target.TakeDamage(r, ev.Damage, ev.Rend, false, false)
		}
	}
}
