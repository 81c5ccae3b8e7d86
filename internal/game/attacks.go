package game

import "github.com/pefman/aos-duel/internal/engine"

// DamageEvent is one packet of damage produced by an attack sequence.
// Mortal events bypass the save roll on intake and carry no rend.
type DamageEvent struct {
	Damage int  `json:"damage"`
	Rend   int  `json:"rend"`
	Mortal bool `json:"mortal,omitempty"`
}

// ResolveAttacks rolls the full hit and wound sequence for every weapon
// the unit carries and returns the resulting damage events in weapon
// order. The champion adds one bonus attack to each non-companion
// weapon.
func (u *Unit) ResolveAttacks(r Roller, hitMod, woundMod int) []DamageEvent {
	var events []DamageEvent
	for i := range u.Weapons {
		w := &u.Weapons[i]

		dice := w.Attacks * u.Models
		if u.Champion && !w.Companion {
			dice++
		}

		var hits int
		switch w.CritEffect {
		case CritExtraHits:
			h, crits := r.RollCrits(dice, w.ToHit-hitMod, engine.Match, w.CritThreshold)
			hits = h + crits
		case CritMortal:
			h, crits := r.RollCrits(dice, w.ToHit-hitMod, engine.Match, w.CritThreshold)
			if crits > 0 {
				events = append(events, DamageEvent{Damage: crits * w.Damage, Mortal: true})
			}
			// Crits dealt their damage above and do not also wound.
			hits = h - crits
		default:
			hits = r.Roll(dice, w.ToHit-hitMod, engine.Match)
		}

		wounds := r.Roll(hits, w.ToWound-woundMod, engine.Match)
		if wounds > 0 {
			events = append(events, DamageEvent{Damage: wounds * w.Damage, Rend: w.Rend})
		}
	}
	return events
}
