package allocator

import (
	"fmt"
	"math/rand"
)

// Strategy selects how a Choice full-day rule is resolved to a concrete day.
type Strategy string

const (
	// StrategySlack picks the day maximizing the remaining slack
	// usable − (load + team size).
	StrategySlack Strategy = "slack"

	// StrategyBalance picks the day with the lowest current total load.
	StrategyBalance Strategy = "balance"

	// StrategyRandom picks a seeded uniform choice among the allowed days.
	StrategyRandom Strategy = "random"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategySlack, StrategyBalance, StrategyRandom:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown day-choice strategy %q (want slack, balance or random)", s)
	}
}

// ChooseDay resolves a Choice rule to one concrete day.
//
// loadByDay is the current per-day load estimate (full-day seats already
// locked in). Ties are always broken through rng, never by the order the
// options were listed in, so no day gains a positional advantage. Returns
// false when opts is empty.
func ChooseDay(opts []Weekday, teamSize, usable int, loadByDay map[Weekday]int, strategy Strategy, rng *rand.Rand) (Weekday, bool) {
	if len(opts) == 0 {
		return 0, false
	}

	if strategy == StrategyRandom {
		return opts[rng.Intn(len(opts))], true
	}

	// score: higher is better under either remaining strategy.
	score := func(d Weekday) int {
		if strategy == StrategyBalance {
			return -loadByDay[d]
		}
		return usable - (loadByDay[d] + teamSize)
	}

	best := score(opts[0])
	tied := []Weekday{opts[0]}
	for _, d := range opts[1:] {
		switch s := score(d); {
		case s > best:
			best = s
			tied = tied[:0]
			tied = append(tied, d)
		case s == best:
			tied = append(tied, d)
		}
	}

	if len(tied) == 1 {
		return tied[0], true
	}
	return tied[rng.Intn(len(tied))], true
}
