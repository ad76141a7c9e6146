package allocator

import (
	"math"
	"math/rand"
)

// quotientEpsilon bounds how close two Sainte-Laguë quotients must be to
// count as tied.
const quotientEpsilon = 1e-12

// SainteLague apportions seats among candidates proportionally to their
// weights using the Sainte-Laguë divisor sequence (divisor 2a+1).
//
//   - candidates fixes the evaluation order; it must be stable across runs
//     so that results depend only on inputs and seed, never on map order.
//   - weights are the demands; candidates with weight <= 0 never win a seat.
//   - current is the pre-existing assignment counted into the divisor
//     (may be nil).
//   - caps limits the additional seats per candidate (nil means unlimited).
//   - rng breaks quotient ties; it must be the caller's seeded generator.
//
// Stops early when no candidate remains eligible. Returns the additional
// seats per candidate.
func SainteLague(candidates []string, weights map[string]int, seats int, current map[string]int, caps map[string]int, rng *rand.Rand) map[string]int {
	alloc := make(map[string]int, len(candidates))
	for _, name := range candidates {
		alloc[name] = 0
	}
	if seats <= 0 || len(candidates) == 0 {
		return alloc
	}

	quotient := func(name string) float64 {
		a := current[name] + alloc[name]
		return float64(weights[name]) / float64(2*a+1)
	}

	for s := 0; s < seats; s++ {
		bestQ := math.Inf(-1)
		var tied []string

		for _, name := range candidates {
			if weights[name] <= 0 {
				continue
			}
			if caps != nil && alloc[name] >= caps[name] {
				continue
			}

			q := quotient(name)
			switch {
			case q > bestQ+quotientEpsilon:
				bestQ = q
				tied = tied[:0]
				tied = append(tied, name)
			case math.Abs(q-bestQ) <= quotientEpsilon:
				tied = append(tied, name)
			}
		}

		if len(tied) == 0 {
			break
		}

		winner := tied[0]
		if len(tied) > 1 {
			winner = tied[rng.Intn(len(tied))]
		}
		alloc[winner]++
	}

	return alloc
}
