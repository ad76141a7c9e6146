package allocator

import (
	"regexp"
	"strings"

	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/pkg/utils/textutil"
)

// weekdayTokens maps normalized weekday tokens (Spanish and English, accents
// already folded by textutil.Normalize) to their Weekday.
var weekdayTokens = []struct {
	token string
	day   Weekday
}{
	{"lunes", Monday},
	{"martes", Tuesday},
	{"miercoles", Wednesday},
	{"jueves", Thursday},
	{"viernes", Friday},
	{"monday", Monday},
	{"tuesday", Tuesday},
	{"wednesday", Wednesday},
	{"thursday", Thursday},
	{"friday", Friday},
}

// choiceConnective matches the "o"/"or" connective that turns a day list
// into a pick-one alternative: "Lunes o Jueves", "Lunes, o Jueves",
// "Monday or Thursday".
var choiceConnective = regexp.MustCompile(`(?i)(\s+|,\s*)or?\s+`)

// ParseFullDayRule converts free scheduling text into a FullDayRule.
//
// Semantics:
//   - "Lunes, Miércoles"  → Fixed on both days
//   - "Lunes o Miércoles" → Choice (exactly one day is selected later)
//   - blank text          → RuleNone
//
// Unrecognized tokens are dropped silently. The returned day set preserves
// first-seen order and contains no duplicates. If no token parses, the rule
// comes back as RuleNone; the caller decides whether to audit the drop.
func ParseFullDayRule(team, text string) FullDayRule {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return FullDayRule{Team: team, Kind: RuleNone}
	}

	var parts []string
	kind := RuleFixed
	if choiceConnective.MatchString(raw) {
		kind = RuleChoice
		parts = choiceConnective.Split(raw, -1)
	} else {
		parts = strings.Split(raw, ",")
	}

	days := parseDayTokens(parts)
	if len(days) == 0 {
		return FullDayRule{Team: team, Kind: RuleNone}
	}

	return FullDayRule{Team: team, Kind: kind, Days: days}
}

// parseDayTokens extracts weekdays from text fragments, preserving
// first-seen order and deduplicating.
func parseDayTokens(parts []string) []Weekday {
	var days []Weekday
	seen := make(map[Weekday]bool)

	for _, part := range parts {
		norm := textutil.Normalize(part)
		if norm == "" {
			continue
		}
		for _, entry := range weekdayTokens {
			if strings.Contains(norm, entry.token) && !seen[entry.day] {
				seen[entry.day] = true
				days = append(days, entry.day)
			}
		}
	}

	return days
}
