package allocator

// collectDeficits emits one DeficitRecord per team whose assignment fell
// short of its effective minimum on the day. Measured against the minimum as
// configured for the run, not the possibly-reduced amount the scarce-capacity
// path granted. Teams with no headcount never produce deficits.
func collectDeficits(floor string, day Weekday, states []*teamState, infeasibleDay bool) []DeficitRecord {
	cause := CauseBelowMinimum
	if infeasibleDay {
		cause = CauseInsufficientCapacity
	}

	var records []DeficitRecord
	for _, st := range states {
		if st.per <= 0 {
			continue
		}
		deficit := st.min - st.assigned
		if deficit <= 0 {
			continue
		}
		records = append(records, DeficitRecord{
			Floor:           floor,
			Team:            st.team.Name,
			Day:             day,
			Headcount:       st.per,
			MinimumRequired: st.min,
			Assigned:        st.assigned,
			Deficit:         deficit,
			Cause:           cause,
		})
	}
	return records
}
