// Package roster parses the abstract tabular inputs the engine consumes:
// the team roster, the optional floor-capacity table and the optional
// scheduling-rule table. Storage and file format are the caller's concern;
// a Table is just headers plus string rows.
//
// Headers are matched fuzzily (Spanish or English, accents ignored) because
// the upstream spreadsheets are hand-maintained.
package roster

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/pkg/core/allocator"
	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/pkg/utils/textutil"
)

// Table is a storage-agnostic tabular dataset.
type Table struct {
	Headers []string
	Rows    [][]string
}

// IsEmpty reports whether the table carries no data rows.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// ConfigurationError reports required roster columns that could not be
// found. The engine fails fast on it rather than proceed with partial data.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("roster is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// findColumn returns the index of the first header whose normalized form
// contains any of the keywords, or -1.
func findColumn(headers []string, keywords ...string) int {
	for i, h := range headers {
		norm := textutil.Normalize(h)
		for _, kw := range keywords {
			if strings.Contains(norm, kw) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseCount reads a seat/headcount number the way the spreadsheets write
// them: "12", "12,0", "12.0". Negative and unparseable values coerce to 0
// with a warning; blanks coerce silently.
func parseCount(raw, context string, warnings *[]allocator.Warning) int {
	if raw == "" {
		return 0
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		*warnings = append(*warnings, allocator.Warning{
			Context: context,
			Message: fmt.Sprintf("non-numeric value %q coerced to 0", raw),
		})
		return 0
	}
	n := int(f)
	if n < 0 {
		*warnings = append(*warnings, allocator.Warning{
			Context: context,
			Message: fmt.Sprintf("negative value %q coerced to 0", raw),
		})
		return 0
	}
	return n
}

// ParseTeams extracts the team roster. Required columns: floor, team,
// headcount, minimum. Returns a ConfigurationError when any is absent.
func ParseTeams(t Table) ([]allocator.Team, []allocator.Warning, error) {
	floorCol := findColumn(t.Headers, "piso", "floor")
	teamCol := findColumn(t.Headers, "equipo", "team")
	headCol := findColumn(t.Headers, "personas", "dotacion", "headcount", "total")
	minCol := findColumn(t.Headers, "minimo", "minimum")

	var missing []string
	if floorCol < 0 {
		missing = append(missing, "floor")
	}
	if teamCol < 0 {
		missing = append(missing, "team")
	}
	if headCol < 0 {
		missing = append(missing, "headcount")
	}
	if minCol < 0 {
		missing = append(missing, "minimum")
	}
	if len(missing) > 0 {
		return nil, nil, &ConfigurationError{Missing: missing}
	}

	var teams []allocator.Team
	var warnings []allocator.Warning
	for _, row := range t.Rows {
		name := cell(row, teamCol)
		if name == "" {
			continue
		}
		floor := cell(row, floorCol)
		teams = append(teams, allocator.Team{
			Name:      name,
			Floor:     floor,
			Headcount: parseCount(cell(row, headCol), "team "+name+" headcount", &warnings),
			Minimum:   parseCount(cell(row, minCol), "team "+name+" minimum", &warnings),
		})
	}

	return teams, warnings, nil
}

// ParseCapacities extracts the optional floor-capacity table: first column
// the floor label, second the total seats. Rows that do not parse, and
// non-positive capacities, are skipped.
func ParseCapacities(t Table) []allocator.FloorCapacity {
	var capacities []allocator.FloorCapacity
	for _, row := range t.Rows {
		floor := cell(row, 0)
		if allocator.NormalizeFloor(floor) == "" {
			continue
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(cell(row, 1), ",", "."), 64)
		if err != nil || int(f) <= 0 {
			continue
		}
		capacities = append(capacities, allocator.FloorCapacity{Floor: floor, Total: int(f)})
	}
	return capacities
}

// fullDayCriterion matches the "día completo <team>" / "full day <team>"
// criterion on normalized text.
var fullDayCriterion = regexp.MustCompile(`(?:dia completo|full day)\s+`)

// ParseRules extracts full-day scheduling rules from the optional rule
// table. Criterion rows that name a team but whose value yields no usable
// days are returned as dropped-rule audit entries; the team falls back to
// proportional distribution.
func ParseRules(t Table) ([]allocator.FullDayRule, []allocator.DroppedRuleEntry) {
	critCol := findColumn(t.Headers, "criterio", "parametro", "criterion")
	valueCol := findColumn(t.Headers, "valor", "value")
	if critCol < 0 || valueCol < 0 {
		return nil, nil
	}

	var rules []allocator.FullDayRule
	var dropped []allocator.DroppedRuleEntry
	for _, row := range t.Rows {
		crit := textutil.Normalize(cell(row, critCol))
		if !fullDayCriterion.MatchString(crit) {
			continue
		}
		parts := fullDayCriterion.Split(crit, -1)
		team := strings.TrimSpace(parts[len(parts)-1])
		if team == "" {
			continue
		}

		value := cell(row, valueCol)
		rule := allocator.ParseFullDayRule(team, value)
		if rule.Kind == allocator.RuleNone {
			if value != "" {
				dropped = append(dropped, allocator.DroppedRuleEntry{Team: team, Raw: value})
			}
			continue
		}
		rules = append(rules, rule)
	}

	return rules, dropped
}
