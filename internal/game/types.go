package game

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pefman/aos-duel/internal/engine"
)

// Roller is the dice source threaded through combat resolution. It is
// satisfied by *engine.Roller; tests substitute scripted rollers.
type Roller interface {
	Roll(count, target int, dir engine.Direction) int
	RollCrits(count, target int, dir engine.Direction, critThreshold int) (hits, crits int)
}

// CritEffect describes what a critical hit does beyond being a hit.
// The effects are mutually exclusive by construction.
type CritEffect int

const (
	// CritNone: criticals are ordinary hits.
	CritNone CritEffect = iota
	// CritExtraHits: each critical counts as one additional hit on top of
	// the hit it already scored.
	CritExtraHits
	// CritMortal: criticals convert to mortal damage and skip the wound
	// roll entirely.
	CritMortal
)

func (c CritEffect) String() string {
	switch c {
	case CritNone:
		return "none"
	case CritExtraHits:
		return "extra_hits"
	case CritMortal:
		return "mortal"
	}
	return fmt.Sprintf("crit_effect(%d)", int(c))
}

// MarshalJSON emits the effect name so API payloads stay readable.
func (c CritEffect) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

var (
	ErrConflictingCritModes = errors.New("weapon sets both crit_mortals and crit_explode")
	ErrInvalidUnit          = errors.New("invalid unit definition")
	ErrInvalidWeapon        = errors.New("invalid weapon profile")
)

// Weapon is one immutable attack profile. Profiles are shared by
// reference across per-trial unit copies and never mutated mid-trial.
type Weapon struct {
	Name          string     `json:"name"`
	Attacks       int        `json:"attacks"`
	ToHit         int        `json:"to_hit"`
	ToWound       int        `json:"to_wound"`
	Rend          int        `json:"rend"`
	Damage        int        `json:"damage"`
	Companion     bool       `json:"companion,omitempty"` // excluded from the champion's bonus attack
	CritThreshold int        `json:"crit_threshold,omitempty"`
	CritEffect    CritEffect `json:"crit_effect"`
}

// Validate checks die ranges and fills the default crit threshold.
func (w *Weapon) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidWeapon)
	}
	if w.Attacks < 0 {
		return fmt.Errorf("%w: %s: negative attacks", ErrInvalidWeapon, w.Name)
	}
	if w.ToHit < 1 || w.ToHit > engine.DieFaces+1 {
		return fmt.Errorf("%w: %s: to_hit %d outside 1-%d", ErrInvalidWeapon, w.Name, w.ToHit, engine.DieFaces+1)
	}
	if w.ToWound < 1 || w.ToWound > engine.DieFaces+1 {
		return fmt.Errorf("%w: %s: to_wound %d outside 1-%d", ErrInvalidWeapon, w.Name, w.ToWound, engine.DieFaces+1)
	}
	if w.Rend < 0 {
		return fmt.Errorf("%w: %s: negative rend", ErrInvalidWeapon, w.Name)
	}
	if w.Damage < 0 {
		return fmt.Errorf("%w: %s: negative damage", ErrInvalidWeapon, w.Name)
	}
	if w.CritThreshold == 0 {
		w.CritThreshold = engine.DieFaces
	}
	if w.CritThreshold < 1 || w.CritThreshold > engine.DieFaces {
		return fmt.Errorf("%w: %s: crit_threshold %d outside 1-%d", ErrInvalidWeapon, w.Name, w.CritThreshold, engine.DieFaces)
	}
	switch w.CritEffect {
	case CritNone, CritExtraHits, CritMortal:
	default:
		return fmt.Errorf("%w: %s: unknown crit effect %d", ErrInvalidWeapon, w.Name, int(w.CritEffect))
	}
	return nil
}

// Unit is one combat formation. A validated Unit serves as an immutable
// template; each trial works on a Clone and discards it afterwards.
type Unit struct {
	Name            string   `json:"name"`
	Models          int      `json:"models"`
	WoundsPerModel  int      `json:"wounds_per_model"`
	Save            int      `json:"save"`
	Ward            int      `json:"ward,omitempty"` // 0 if none
	Ethereal        bool     `json:"ethereal,omitempty"`
	DamageReduction bool     `json:"damage_reduction,omitempty"`
	Champion        bool     `json:"champion,omitempty"`
	Weapons         []Weapon `json:"weapons"`
	TotalWounds     int      `json:"total_wounds"`
	Alive           bool     `json:"alive"`
}

// NewUnit validates a unit definition and prepares it as a template.
// Derived fields (total wounds, alive) are initialized here, and a ward
// of 7 (the tabletop "no ward" convention) is normalized to 0.
func NewUnit(def Unit) (*Unit, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidUnit)
	}
	if def.Models < 0 {
		return nil, fmt.Errorf("%w: %s: negative model count", ErrInvalidUnit, def.Name)
	}
	if def.WoundsPerModel < 1 {
		return nil, fmt.Errorf("%w: %s: wounds_per_model must be positive", ErrInvalidUnit, def.Name)
	}
	if def.Save < 1 || def.Save > engine.DieFaces+1 {
		return nil, fmt.Errorf("%w: %s: save %d outside 1-%d", ErrInvalidUnit, def.Name, def.Save, engine.DieFaces+1)
	}
	if def.Ward == engine.DieFaces+1 {
		def.Ward = 0
	}
	if def.Ward < 0 || def.Ward > engine.DieFaces {
		return nil, fmt.Errorf("%w: %s: ward %d outside 1-%d", ErrInvalidUnit, def.Name, def.Ward, engine.DieFaces)
	}
	for i := range def.Weapons {
		if err := def.Weapons[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", def.Name, err)
		}
	}
	def.TotalWounds = def.Models * def.WoundsPerModel
	def.Alive = def.Models > 0
	return &def, nil
}

// Clone returns a fresh copy for one trial. The weapons slice is shared
// with the template and treated as read-only.
func (u *Unit) Clone() *Unit {
	c := *u
	return &c
}
