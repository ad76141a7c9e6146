package allocator

import (
	"regexp"
	"strconv"
	"strings"
)

var floorDigits = regexp.MustCompile(`\d+`)

// NormalizeFloor reduces a floor label to its canonical numeric form:
// "Piso 3", "Floor 3", "3", "3.0" and " 3 " all become "3". Returns "" when
// no number can be extracted.
func NormalizeFloor(label string) string {
	s := strings.TrimSpace(label)
	if s == "" {
		return ""
	}

	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
	}

	if m := floorDigits.FindString(s); m != "" {
		n, err := strconv.Atoi(m)
		if err == nil {
			return strconv.Itoa(n)
		}
	}

	return ""
}

// ResolveCapacity determines a floor's total and usable capacity.
//
// If the capacity table has no entry for the floor, the total is inferred as
// the sum of team headcounts plus the reserved pool, so an unseeded floor is
// never short by construction. Usable capacity is what remains for team
// seats after the reserved drop-in pool, floored at 0.
func ResolveCapacity(floor string, teams []Team, capacities map[string]int, reservedPool int) (total, usable int) {
	if c, ok := capacities[floor]; ok {
		total = c
	} else {
		for _, t := range teams {
			total += t.Headcount
		}
		total += reservedPool
	}

	if total < 0 {
		total = 0
	}

	usable = total - reservedPool
	if usable < 0 {
		usable = 0
	}

	return total, usable
}
