package game

import "github.com/pefman/aos-duel/internal/engine"

// TakeDamage runs incoming damage through the unit's defensive rolls and
// updates its wound pool and model count. Returns the unsaved amount.
//
// Save and ward rolls count dice BELOW the target as failures that let
// damage through, so rend raises the effective save target. Mortal
// damage skips save and rend but still meets the ward unless ignoreWard
// is set. Ethereal units roll against their unmodified save; rend never
// applies to them.
func (u *Unit) TakeDamage(r Roller, damage, rend int, mortal, ignoreWard bool) int {
	if damage < 0 {
		damage = 0
	}
	var unsaved int
	switch {
	case mortal:
		unsaved = damage
	case u.Ethereal:
		unsaved = r.Roll(damage, u.Save, engine.Below)
	default:
		unsaved = r.Roll(damage, u.Save+rend, engine.Below)
	}
	if u.Ward > 0 && !ignoreWard {
		unsaved = r.Roll(unsaved, u.Ward, engine.Below)
	}
	if u.DamageReduction && unsaved > 0 {
		unsaved--
	}

	u.TotalWounds -= unsaved
	if u.TotalWounds < 0 {
		u.TotalWounds = 0
	}
	// Each surviving model needs at least one wound left.
	models := u.TotalWounds / u.WoundsPerModel
	if u.TotalWounds%u.WoundsPerModel > 0 {
		models++
	}
	u.Models = models
	u.Alive = u.Models > 0
	return unsaved
}
