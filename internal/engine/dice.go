package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// DieFaces is the face count of the standard combat die.
const DieFaces = 6

// Direction selects how a die face compares against its target value.
type Direction int

const (
	Match Direction = iota // counts faces >= target
	Above                  // counts faces > target
	Below                  // counts faces < target
)

func (d Direction) String() string {
	switch d {
	case Match:
		return "match"
	case Above:
		return "above"
	case Below:
		return "below"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection maps a roster/API identifier to a Direction. Unknown
// identifiers are an error, never a silent default.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "match":
		return Match, nil
	case "above":
		return Above, nil
	case "below":
		return Below, nil
	}
	return 0, fmt.Errorf("unknown roll direction %q", s)
}

// Roller produces batches of die results from a single seeded source.
// Each simulation owns one roller, so seeded runs replay exactly.
type Roller struct {
	r *rand.Rand
}

// New returns a roller with a fixed seed.
func New(seed int64) *Roller {
	return &Roller{r: rand.New(rand.NewSource(seed))}
}

// NewRandom returns a time-seeded roller.
func NewRandom() *Roller {
	return New(time.Now().UnixNano())
}

// Roll throws count dice and counts those satisfying dir against target.
// A non-positive count rolls nothing and returns 0.
func (ro *Roller) Roll(count, target int, dir Direction) int {
	hits, _ := ro.RollCrits(count, target, dir, DieFaces+1)
	return hits
}

// RollCrits is Roll with an additional count of dice at or above
// critThreshold, taken from the same batch rather than an independent
// re-roll.
func (ro *Roller) RollCrits(count, target int, dir Direction, critThreshold int) (hits, crits int) {
	for i := 0; i < count; i++ {
		face := 1 + ro.r.Intn(DieFaces)
		switch dir {
		case Match:
			if face >= target {
				hits++
			}
		case Above:
			if face > target {
				hits++
			}
		case Below:
			if face < target {
				hits++
			}
		}
		if face >= critThreshold {
			crits++
		}
	}
	return hits, crits
}

// Float64 returns a uniform value in [0,1), used for initiative draws.
func (ro *Roller) Float64() float64 {
	return ro.r.Float64()
}
