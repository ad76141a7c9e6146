package allocator

import "math"

// RoundHalfUp rounds to the nearest integer with halves going up: 4.5 → 5.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// WeeklyAverage is the daily average seats implied by a weekly total,
// rounded half up over the five working days.
func WeeklyAverage(weeklyTotal int) int {
	return RoundHalfUp(float64(weeklyTotal) / float64(len(Weekdays)))
}

// WeeklyUtilization is weeklyTotal / (headcount × 5) × 100, or 0 for teams
// with no headcount.
func WeeklyUtilization(weeklyTotal, headcount int) float64 {
	if headcount <= 0 {
		return 0
	}
	return round2(float64(weeklyTotal) / float64(headcount*len(Weekdays)) * 100)
}

// applyWeeklyStats back-fills the weekly utilization and daily average onto
// a floor's allocation rows once all five days are assigned. Reserved-pool
// rows carry no weekly stats.
func applyWeeklyStats(rows []AllocationRow, states []*teamState, weeklyAssigned map[string]int) {
	headcounts := make(map[string]int, len(states))
	for _, st := range states {
		headcounts[st.team.Name] = st.per
	}

	for i := range rows {
		team := rows[i].Team
		if team == ReservedPoolLabel {
			continue
		}
		total := weeklyAssigned[team]
		rows[i].WeeklyUtilization = WeeklyUtilization(total, headcounts[team])
		rows[i].WeeklyAverage = WeeklyAverage(total)
	}
}
