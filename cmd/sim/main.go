package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pefman/aos-duel/internal/api"
	"github.com/pefman/aos-duel/internal/game"
	"github.com/pefman/aos-duel/internal/roster"
	"github.com/pefman/aos-duel/internal/sim"
)

func main() {
	var (
		rosterPath = flag.String("roster", "", "roster JSON file (omit to run the bundled demo matchups)")
		apiBase    = flag.String("api", "", "run the matchup via a running aos-duel api server instead of locally")
		attacker   = flag.String("attacker", "", "attacker unit name")
		defender   = flag.String("defender", "", "defender unit name")
		trials     = flag.Int("trials", 10000, "number of independent trials")
		inversion  = flag.Float64("inversion", 0, "probability [0,1] that the defender strikes first")
		seed       = flag.Int64("seed", 0, "dice seed (0 = time-based)")
		attHitMod  = flag.Int("attacker-hit-mod", 0, "attacker hit roll modifier")
		attWndMod  = flag.Int("attacker-wound-mod", 0, "attacker wound roll modifier")
		defHitMod  = flag.Int("defender-hit-mod", 0, "defender hit roll modifier")
		defWndMod  = flag.Int("defender-wound-mod", 0, "defender wound roll modifier")
	)
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	params := sim.Params{
		Trials:           *trials,
		InversionProb:    *inversion,
		AttackerHitMod:   *attHitMod,
		AttackerWoundMod: *attWndMod,
		DefenderHitMod:   *defHitMod,
		DefenderWoundMod: *defWndMod,
		Seed:             *seed,
	}

	switch {
	case *apiBase != "":
		runViaAPI(*apiBase, *attacker, *defender, params)
	case *rosterPath != "":
		runFromRoster(*rosterPath, *attacker, *defender, params)
	default:
		runDemo(params.Trials)
	}
}

func runViaAPI(base, attacker, defender string, params sim.Params) {
	if attacker == "" || defender == "" {
		log.Fatal().Msg("-attacker and -defender are required with -api")
	}
	client := api.NewClient(base)
	resp, err := client.Simulate(api.SimRequest{Attacker: attacker, Defender: defender, Params: params})
	if err != nil {
		log.Fatal().Err(err).Msg("simulate via api")
	}
	printResult(attacker, defender, resp.Result)
	fmt.Printf("recorded as run %s\n", resp.Run.ID)
}

func runFromRoster(path, attacker, defender string, params sim.Params) {
	if attacker == "" || defender == "" {
		log.Fatal().Msg("-attacker and -defender are required with -roster")
	}
	store, err := roster.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("load roster")
	}
	att, ok := store.Unit(attacker)
	if !ok {
		log.Fatal().Str("unit", attacker).Strs("known", store.Names()).Msg("unknown attacker")
	}
	def, ok := store.Unit(defender)
	if !ok {
		log.Fatal().Str("unit", defender).Strs("known", store.Names()).Msg("unknown defender")
	}
	result, err := sim.Simulate(att, def, params)
	if err != nil {
		log.Fatal().Err(err).Msg("simulate")
	}
	printResult(att.Name, def.Name, result)
}

func printResult(attacker, defender string, r sim.Result) {
	fmt.Printf("%s vs %s over %d trials - %s wounds: %.2f, %s wounds: %.2f, inversions: %d\n",
		attacker, defender, r.Trials,
		attacker, r.AttackerMeanWounds,
		defender, r.DefenderMeanWounds,
		r.InvertedFights)
}

func mustUnit(def game.Unit) *game.Unit {
	u, err := game.NewUnit(def)
	if err != nil {
		log.Fatal().Err(err).Msg("bad demo unit")
	}
	return u
}

// runDemo replays a handful of reference matchups useful as a smoke
// check after rule changes.
func runDemo(trials int) {
	lance := game.Weapon{Name: "Cursed Lance", Attacks: 3, ToHit: 3, ToWound: 3, Rend: 2, Damage: 1}
	hooves := game.Weapon{Name: "Hooves", Attacks: 2, ToHit: 5, ToWound: 3, Damage: 1, Companion: true}

	impact := game.Weapon{Name: "Impact", Attacks: 1, ToHit: 3, ToWound: 1, Damage: 1, CritEffect: game.CritMortal, CritThreshold: 3}
	dawnLance := game.Weapon{Name: "Dawn Lance", Attacks: 3, ToHit: 3, ToWound: 4, Rend: 1, Damage: 2, CritEffect: game.CritMortal}
	dawnHooves := game.Weapon{Name: "Hooves", Attacks: 2, ToHit: 5, ToWound: 3, Damage: 1, Companion: true}

	varanBlade := game.Weapon{Name: "Varan Blade", Attacks: 3, ToHit: 3, ToWound: 3, Rend: 2, Damage: 3, CritEffect: game.CritMortal}
	varanHooves := game.Weapon{Name: "Hooves", Attacks: 3, ToHit: 4, ToWound: 3, Damage: 1, Companion: true}

	pike := game.Weapon{Name: "Pike", Attacks: 2, ToHit: 3, ToWound: 4, Rend: 1, Damage: 1, CritEffect: game.CritMortal}
	blades := game.Weapon{Name: "Blades", Attacks: 3, ToHit: 3, ToWound: 4, Rend: 1, Damage: 1, CritEffect: game.CritMortal}

	chaosKnights := mustUnit(game.Unit{Name: "Chaos Knight", Models: 10, WoundsPerModel: 4, Save: 3, Champion: true, Weapons: []game.Weapon{lance, hooves}})
	varanguard := mustUnit(game.Unit{Name: "Varanguard", Models: 6, WoundsPerModel: 5, Save: 3, Champion: true, Weapons: []game.Weapon{varanBlade, varanHooves}})
	dawnriders := mustUnit(game.Unit{Name: "Dawnrider", Models: 10, WoundsPerModel: 3, Save: 3, Ward: 5, Champion: true, Weapons: []game.Weapon{dawnLance, dawnHooves, impact}})
	baseWardens := mustUnit(game.Unit{Name: "Warden", Models: 20, WoundsPerModel: 1, Save: 4, Champion: true, Weapons: []game.Weapon{pike}})
	wardWardens := mustUnit(game.Unit{Name: "Warden", Models: 20, WoundsPerModel: 1, Save: 4, Ward: 5, Champion: true, Weapons: []game.Weapon{pike}})
	megaWardens := mustUnit(game.Unit{Name: "Warden", Models: 20, WoundsPerModel: 1, Save: 4, Ward: 5, Ethereal: true, Champion: true, Weapons: []game.Weapon{pike}})
	bladelords := mustUnit(game.Unit{Name: "Bladelord", Models: 10, WoundsPerModel: 2, Save: 4, Ward: 5, Ethereal: true, Champion: true, Weapons: []game.Weapon{blades}})
	megaBladelords := mustUnit(game.Unit{Name: "Bladelord", Models: 10, WoundsPerModel: 2, Save: 4, Ward: 5, Ethereal: true, DamageReduction: true, Champion: true, Weapons: []game.Weapon{blades}})

	run := func(label string, attacker, defender *game.Unit, p sim.Params) {
		p.Trials = trials
		result, err := sim.Simulate(attacker, defender, p)
		if err != nil {
			log.Fatal().Err(err).Str("scenario", label).Msg("simulate")
		}
		fmt.Printf("%s - %s wounds: %.2f %s wounds: %.2f inversions: %d\n",
			label, attacker.Name, result.AttackerMeanWounds, defender.Name, result.DefenderMeanWounds, result.InvertedFights)
	}

	run("Dawnrider counter", dawnriders, chaosKnights, sim.Params{})
	run("Base warden scenario", varanguard, baseWardens, sim.Params{InversionProb: 4.0 / 6.0, AttackerHitMod: -1})
	run("Ward warden scenario", varanguard, wardWardens, sim.Params{InversionProb: 4.0 / 6.0, AttackerHitMod: -1})
	run("Mega warden scenario", varanguard, megaWardens, sim.Params{InversionProb: 4.0 / 6.0, AttackerHitMod: -1})
	run("Bladelord scenario", varanguard, bladelords, sim.Params{AttackerHitMod: -1})
	run("Mega bladelord scenario", varanguard, megaBladelords, sim.Params{AttackerHitMod: -1})
}
