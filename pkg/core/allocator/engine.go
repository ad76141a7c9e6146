package allocator

import (
	"fmt"
	"math/rand"

	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/pkg/utils/textutil"
)

// TrimPolicy selects which full-day team absorbs a capacity cut first.
type TrimPolicy string

const (
	// TrimLargest removes seats from the team holding the most assigned
	// seats. The largest absorbs the cut first.
	TrimLargest TrimPolicy = "largest"

	// TrimSmallest removes seats from the smallest assigned team first.
	TrimSmallest TrimPolicy = "smallest"
)

// ParseTrimPolicy validates a trim policy name.
func ParseTrimPolicy(s string) (TrimPolicy, error) {
	switch TrimPolicy(s) {
	case TrimLargest, TrimSmallest:
		return TrimPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown trim policy %q (want largest or smallest)", s)
	}
}

// Options configures one allocation run.
type Options struct {
	// ReservedPool is the number of seats withheld per floor per day for
	// ad-hoc drop-in bookings.
	ReservedPool int

	// IgnoreRules bypasses rule parsing, day choice and full-day handling.
	// Only the headcount-proportional distribution with structural minimums
	// (2 if headcount >= 2, else the headcount) remains.
	IgnoreRules bool

	// Strategy resolves Choice full-day rules to a concrete day.
	Strategy Strategy

	// TrimPolicy decides which full-day team loses seats when lock-ins
	// exceed capacity.
	TrimPolicy TrimPolicy

	// StructuralMinimum raises every explicit minimum to at least 2 for
	// teams of 2 or more, matching the historical behaviour. Off by
	// default: explicit roster minimums are taken at face value.
	StructuralMinimum bool

	// ShuffleTeams randomizes the team processing order per run. Used by
	// the optimizer to explore different tie-break landscapes.
	ShuffleTeams bool

	// DeficitWeight and TrimWeight are the score penalties per deficit
	// seat and per trimmed full-day seat.
	DeficitWeight float64
	TrimWeight    float64
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		ReservedPool:  DefaultReservedPool,
		Strategy:      StrategySlack,
		TrimPolicy:    TrimLargest,
		DeficitWeight: DefaultDeficitWeight,
		TrimWeight:    DefaultTrimWeight,
	}
}

// Inputs is everything one allocation run consumes. Rules come pre-parsed;
// DroppedRules and Warnings carry parse-time audit entries into the result.
type Inputs struct {
	Teams        []Team
	Capacities   []FloorCapacity
	Rules        []FullDayRule
	DroppedRules []DroppedRuleEntry
	Warnings     []Warning
}

// teamState is the per-(floor, day) working state for one team.
type teamState struct {
	team     Team
	per      int // sanitized headcount
	min      int // effective minimum, clamped to [0, per]
	fullDay  [5]bool
	assigned int
}

// Run executes one full allocation: every floor, Monday through Friday.
//
// The run is a pure function of (inputs, opts, seed). All randomness is
// drawn from a single generator seeded here, so identical calls reproduce
// identical results.
func Run(in Inputs, opts Options, seed int64) VariantResult {
	rng := rand.New(rand.NewSource(seed))

	result := VariantResult{
		Seed: seed,
		Audit: Audit{
			Seed:         seed,
			Strategy:     opts.Strategy,
			DroppedRules: in.DroppedRules,
			Warnings:     in.Warnings,
		},
	}

	capacities := capacityIndex(in.Capacities)
	rulesByTeam := ruleIndex(in.Rules, opts.IgnoreRules)

	var (
		totalSqError float64
		nEval        int
		totalDeficit int
		totalTrims   int
	)

	for _, floor := range floorOrder(in.Teams) {
		states := buildFloorStates(in.Teams, floor, opts)
		if len(states) == 0 {
			continue
		}
		if opts.ShuffleTeams {
			rng.Shuffle(len(states), func(i, j int) {
				states[i], states[j] = states[j], states[i]
			})
		}

		total, usable := ResolveCapacity(floor, floorTeams(in.Teams, floor), capacities, opts.ReservedPool)

		resolveFullDays(states, rulesByTeam, floor, usable, opts, rng, &result.Audit)

		weeklyAssigned := make(map[string]int, len(states))
		floorRowStart := len(result.Rows)

		for _, day := range Weekdays {
			trims, infeasible := allocateDay(states, day, usable, opts.TrimPolicy, rng)

			for _, tr := range trims {
				tr.Floor = floor
				tr.Day = day
				result.Audit.Trims = append(result.Audit.Trims, tr)
				totalTrims += tr.SeatsRemoved
			}
			if infeasible != nil {
				infeasible.Floor = floor
				infeasible.Day = day
				result.Audit.InfeasibleDays = append(result.Audit.InfeasibleDays, *infeasible)
			}

			// Proportionality error against the day's fair-share target.
			sumPer := 0
			for _, st := range states {
				sumPer += st.per
			}
			if sumPer > 0 && usable > 0 {
				for _, st := range states {
					if st.per <= 0 {
						continue
					}
					target := float64(st.per) / float64(sumPer) * float64(usable)
					err := float64(st.assigned) - target
					totalSqError += err * err
					nEval++
				}
			}

			for _, st := range states {
				weeklyAssigned[st.team.Name] += st.assigned
				if st.assigned <= 0 {
					continue
				}
				daily := 0.0
				if usable > 0 {
					daily = round2(float64(st.assigned) / float64(usable) * 100)
				}
				result.Rows = append(result.Rows, AllocationRow{
					Floor:            floor,
					Team:             st.team.Name,
					Day:              day,
					Headcount:        st.per,
					Assigned:         st.assigned,
					DailyUtilization: daily,
				})
			}

			// The drop-in pool is emitted for every day and never starved
			// to cover a team shortfall; only a floor smaller than the pool
			// itself can cap it.
			pool := opts.ReservedPool
			if total < pool {
				pool = total
			}
			result.Rows = append(result.Rows, AllocationRow{
				Floor:    floor,
				Team:     ReservedPoolLabel,
				Day:      day,
				Assigned: pool,
			})

			deficits := collectDeficits(floor, day, states, infeasible != nil)
			for _, d := range deficits {
				totalDeficit += d.Deficit
			}
			result.Deficits = append(result.Deficits, deficits...)
		}

		applyWeeklyStats(result.Rows[floorRowStart:], states, weeklyAssigned)
	}

	mse := 0.0
	if nEval > 0 {
		mse = totalSqError / float64(nEval)
	}
	result.Score = Score{
		Total:        mse + opts.DeficitWeight*float64(totalDeficit) + opts.TrimWeight*float64(totalTrims),
		MSE:          mse,
		TotalDeficit: totalDeficit,
		TotalTrims:   totalTrims,
		Evaluations:  nEval,
	}

	return result
}

// allocateDay runs the five-step solver for one (floor, day). It mutates the
// states' assigned counts and returns the trims applied plus an infeasibility
// entry when minimums could not be covered.
func allocateDay(states []*teamState, day Weekday, usable int, policy TrimPolicy, rng *rand.Rand) ([]TrimEntry, *InfeasibleDayEntry) {
	for _, st := range states {
		st.assigned = 0
	}

	// Step 1: full-day lock-in.
	assignedTotal := 0
	for _, st := range states {
		if st.fullDay[day] {
			st.assigned = st.per
			assignedTotal += st.per
		}
	}

	// Step 2: trim full-day conflicts back to capacity, one seat at a time.
	trimmed := make(map[string]int)
	for assignedTotal > usable {
		victim := pickTrimVictim(states, day, policy, rng)
		if victim == nil {
			break
		}
		victim.assigned--
		assignedTotal--
		trimmed[victim.team.Name]++
	}

	var trims []TrimEntry
	for _, st := range states {
		if n := trimmed[st.team.Name]; n > 0 {
			trims = append(trims, TrimEntry{Team: st.team.Name, SeatsRemoved: n})
		}
	}

	// Step 3: minimum guarantee.
	var infeasible *InfeasibleDayEntry
	needTotal, requiredTotal := 0, 0
	for _, st := range states {
		requiredTotal += st.min
		needTotal += minimumNeed(st)
	}
	remaining := usable - assignedTotal

	if needTotal <= remaining {
		for _, st := range states {
			n := minimumNeed(st)
			st.assigned += n
			assignedTotal += n
		}
	} else {
		// Scarce capacity: only structurally significant minimums compete,
		// weighted by their unmet amount.
		infeasible = &InfeasibleDayEntry{RequiredMinimum: requiredTotal, UsableCapacity: usable}

		var candidates []string
		weights := make(map[string]int)
		caps := make(map[string]int)
		current := make(map[string]int)
		for _, st := range states {
			if st.per < 2 {
				continue
			}
			n := minimumNeed(st)
			if n <= 0 {
				continue
			}
			candidates = append(candidates, st.team.Name)
			weights[st.team.Name] = n
			caps[st.team.Name] = n
			current[st.team.Name] = st.assigned
		}

		if remaining > 0 && len(candidates) > 0 {
			extra := SainteLague(candidates, weights, remaining, current, caps, rng)
			for _, st := range states {
				if add := extra[st.team.Name]; add > 0 {
					st.assigned += add
					assignedTotal += add
				}
			}
		}
	}

	// Step 4: proportional remainder over remaining demand.
	remaining = usable - assignedTotal
	if remaining > 0 {
		var candidates []string
		weights := make(map[string]int)
		caps := make(map[string]int)
		current := make(map[string]int)
		for _, st := range states {
			demand := st.per - st.assigned
			if demand <= 0 {
				continue
			}
			candidates = append(candidates, st.team.Name)
			weights[st.team.Name] = demand
			caps[st.team.Name] = demand
			current[st.team.Name] = st.assigned
		}

		if len(candidates) > 0 {
			extra := SainteLague(candidates, weights, remaining, current, caps, rng)
			for _, st := range states {
				if add := extra[st.team.Name]; add > 0 {
					st.assigned += add
					assignedTotal += add
				}
			}
		}
	}

	// Step 5: the capacity invariant holds by construction; re-verify.
	if assignedTotal > usable {
		for assignedTotal > usable {
			victim := pickAnyVictim(states, rng)
			if victim == nil {
				break
			}
			victim.assigned--
			assignedTotal--
		}
	}

	return trims, infeasible
}

// minimumNeed is the unmet portion of a team's effective minimum.
func minimumNeed(st *teamState) int {
	n := st.min - st.assigned
	if n < 0 {
		return 0
	}
	return n
}

// pickTrimVictim selects the full-day team to lose one seat. Equal
// assignments tie and the tie goes to the seeded generator.
func pickTrimVictim(states []*teamState, day Weekday, policy TrimPolicy, rng *rand.Rand) *teamState {
	var tied []*teamState
	best := -1

	better := func(a, b int) bool {
		if policy == TrimSmallest {
			return a < b
		}
		return a > b
	}

	for _, st := range states {
		if !st.fullDay[day] || st.assigned <= 0 {
			continue
		}
		switch {
		case best < 0 || better(st.assigned, best):
			best = st.assigned
			tied = tied[:0]
			tied = append(tied, st)
		case st.assigned == best:
			tied = append(tied, st)
		}
	}

	if len(tied) == 0 {
		return nil
	}
	if len(tied) == 1 {
		return tied[0]
	}
	return tied[rng.Intn(len(tied))]
}

// pickAnyVictim selects the largest assigned team regardless of rules.
// Defensive path only.
func pickAnyVictim(states []*teamState, rng *rand.Rand) *teamState {
	var tied []*teamState
	best := 0
	for _, st := range states {
		switch {
		case st.assigned > best:
			best = st.assigned
			tied = tied[:0]
			tied = append(tied, st)
		case st.assigned == best && best > 0:
			tied = append(tied, st)
		}
	}
	if len(tied) == 0 {
		return nil
	}
	if len(tied) == 1 {
		return tied[0]
	}
	return tied[rng.Intn(len(tied))]
}

// resolveFullDays precomputes the full-day lookup per (team, day): Fixed
// rules apply directly, Choice rules are resolved through the configured
// strategy against the load the Fixed rules already imply.
func resolveFullDays(states []*teamState, rules map[string]FullDayRule, floor string, usable int, opts Options, rng *rand.Rand, audit *Audit) {
	if opts.IgnoreRules || len(rules) == 0 {
		return
	}

	loadByDay := make(map[Weekday]int, len(Weekdays))
	for _, d := range Weekdays {
		loadByDay[d] = 0
	}

	for _, st := range states {
		rule, ok := rules[textutil.Normalize(st.team.Name)]
		if !ok || rule.Kind != RuleFixed {
			continue
		}
		for _, d := range rule.Days {
			st.fullDay[d] = true
			loadByDay[d] += st.per
		}
	}

	for _, st := range states {
		rule, ok := rules[textutil.Normalize(st.team.Name)]
		if !ok || rule.Kind != RuleChoice {
			continue
		}
		chosen, ok := ChooseDay(rule.Days, st.per, usable, loadByDay, opts.Strategy, rng)
		if !ok {
			continue
		}
		st.fullDay[chosen] = true
		loadByDay[chosen] += st.per
		audit.DayChoices = append(audit.DayChoices, DayChoiceEntry{
			Floor:    floor,
			Team:     st.team.Name,
			Options:  rule.Days,
			Chosen:   chosen,
			Strategy: opts.Strategy,
		})
	}
}

// buildFloorStates sanitizes the floor's teams into working state.
func buildFloorStates(teams []Team, floor string, opts Options) []*teamState {
	var states []*teamState
	for _, t := range teams {
		if NormalizeFloor(t.Floor) != floor || t.Name == "" {
			continue
		}

		per := t.Headcount
		if per < 0 {
			per = 0
		}

		min := t.Minimum
		if opts.IgnoreRules {
			// Structural minimum only: 2 for teams of 2+, else the headcount.
			min = 2
		} else if opts.StructuralMinimum && per >= 2 && min < 2 {
			min = 2
		}
		if min < 0 {
			min = 0
		}
		if min > per {
			min = per
		}

		states = append(states, &teamState{team: t, per: per, min: min})
	}
	return states
}

// floorOrder returns the canonical floors in first-seen roster order.
func floorOrder(teams []Team) []string {
	var order []string
	seen := make(map[string]bool)
	for _, t := range teams {
		floor := NormalizeFloor(t.Floor)
		if floor == "" || seen[floor] {
			continue
		}
		seen[floor] = true
		order = append(order, floor)
	}
	return order
}

// floorTeams filters the roster down to one canonical floor.
func floorTeams(teams []Team, floor string) []Team {
	var out []Team
	for _, t := range teams {
		if NormalizeFloor(t.Floor) == floor {
			out = append(out, t)
		}
	}
	return out
}

// capacityIndex builds the canonical-floor capacity lookup, keeping only
// positive capacities (original behaviour: zero or negative rows are noise).
func capacityIndex(capacities []FloorCapacity) map[string]int {
	idx := make(map[string]int, len(capacities))
	for _, c := range capacities {
		floor := NormalizeFloor(c.Floor)
		if floor == "" || c.Total <= 0 {
			continue
		}
		idx[floor] = c.Total
	}
	return idx
}

// ruleIndex maps normalized team names to their full-day rule. Later rules
// for the same team override earlier ones.
func ruleIndex(rules []FullDayRule, ignore bool) map[string]FullDayRule {
	if ignore {
		return nil
	}
	idx := make(map[string]FullDayRule, len(rules))
	for _, r := range rules {
		if r.Kind == RuleNone || len(r.Days) == 0 {
			continue
		}
		idx[textutil.Normalize(r.Team)] = r
	}
	return idx
}
