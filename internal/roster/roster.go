// Package roster loads unit and weapon definitions from JSON documents.
// The records mirror what the scraping front end emits; the simulator
// core never reads files itself.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pefman/aos-duel/internal/game"
)

// WeaponRecord is the on-disk shape of one weapon profile. It keeps the
// two historical crit booleans; they are folded into a single effect on
// load and setting both is rejected.
type WeaponRecord struct {
	Name          string `json:"name"`
	Attacks       int    `json:"attacks"`
	ToHit         int    `json:"to_hit"`
	ToWound       int    `json:"to_wound"`
	Rend          int    `json:"rend"`
	Damage        int    `json:"damage"`
	Companion     bool   `json:"companion,omitempty"`
	CritThreshold int    `json:"crit_threshold,omitempty"`
	CritMortals   bool   `json:"crit_mortals,omitempty"`
	CritExplode   bool   `json:"crit_explode,omitempty"`
}

// Weapon converts the record into a validated profile.
func (r WeaponRecord) Weapon() (game.Weapon, error) {
	effect := game.CritNone
	switch {
	case r.CritMortals && r.CritExplode:
		return game.Weapon{}, fmt.Errorf("%s: %w", r.Name, game.ErrConflictingCritModes)
	case r.CritMortals:
		effect = game.CritMortal
	case r.CritExplode:
		effect = game.CritExtraHits
	}
	w := game.Weapon{
		Name:          r.Name,
		Attacks:       r.Attacks,
		ToHit:         r.ToHit,
		ToWound:       r.ToWound,
		Rend:          r.Rend,
		Damage:        r.Damage,
		Companion:     r.Companion,
		CritThreshold: r.CritThreshold,
		CritEffect:    effect,
	}
	if err := w.Validate(); err != nil {
		return game.Weapon{}, err
	}
	return w, nil
}

// UnitRecord is the on-disk shape of one unit.
type UnitRecord struct {
	Name            string         `json:"name"`
	Models          int            `json:"models"`
	WoundsPerModel  int            `json:"wounds_per_model"`
	Save            int            `json:"save"`
	Ward            int            `json:"ward,omitempty"` // 0 or 7 both mean no ward
	Ethereal        bool           `json:"ethereal,omitempty"`
	DamageReduction bool           `json:"damage_reduction,omitempty"`
	Champion        bool           `json:"champion"`
	Weapons         []WeaponRecord `json:"weapons"`
}

// Unit converts the record into a validated template.
func (r UnitRecord) Unit() (*game.Unit, error) {
	weapons := make([]game.Weapon, 0, len(r.Weapons))
	for _, wr := range r.Weapons {
		w, err := wr.Weapon()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Name, err)
		}
		weapons = append(weapons, w)
	}
	return game.NewUnit(game.Unit{
		Name:            r.Name,
		Models:          r.Models,
		WoundsPerModel:  r.WoundsPerModel,
		Save:            r.Save,
		Ward:            r.Ward,
		Ethereal:        r.Ethereal,
		DamageReduction: r.DamageReduction,
		Champion:        r.Champion,
		Weapons:         weapons,
	})
}

type rosterFile struct {
	Units []UnitRecord `json:"units"`
}

// Store indexes validated unit templates by name.
type Store struct {
	units   map[string]*game.Unit
	records map[string]UnitRecord
	names   []string
}

// Load reads a roster file, validates every definition, and indexes the
// templates by name.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return Parse(raw)
}

// Parse builds a store from raw roster JSON.
func Parse(raw []byte) (*Store, error) {
	var f rosterFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	s := &Store{
		units:   make(map[string]*game.Unit, len(f.Units)),
		records: make(map[string]UnitRecord, len(f.Units)),
	}
	for _, rec := range f.Units {
		u, err := rec.Unit()
		if err != nil {
			return nil, err
		}
		if _, dup := s.units[u.Name]; dup {
			return nil, fmt.Errorf("duplicate unit name %q", u.Name)
		}
		s.units[u.Name] = u
		s.records[u.Name] = rec
		s.names = append(s.names, u.Name)
	}
	sort.Slice(s.names, func(i, j int) bool {
		return strings.ToLower(s.names[i]) < strings.ToLower(s.names[j])
	})
	return s, nil
}

// Unit returns the template for name, if present. Callers must Clone
// before mutating.
func (s *Store) Unit(name string) (*game.Unit, bool) {
	u, ok := s.units[name]
	return u, ok
}

// Record returns the raw definition for name, if present.
func (s *Store) Record(name string) (UnitRecord, bool) {
	r, ok := s.records[name]
	return r, ok
}

// Names lists unit names in case-insensitive alphabetical order.
func (s *Store) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Records lists raw definitions in Names order.
func (s *Store) Records() []UnitRecord {
	out := make([]UnitRecord, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.records[n])
	}
	return out
}
