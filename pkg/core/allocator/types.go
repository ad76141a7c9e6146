package allocator

// Weekday identifies one of the five working days the engine plans for.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists the working days in planning order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayNames = [...]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}

func (d Weekday) String() string {
	if d < Monday || d > Friday {
		return "?"
	}
	return weekdayNames[d]
}

// Team is one roster entry: a team sitting on a floor with a headcount and a
// minimum daily presence requirement. Immutable during an allocation run.
type Team struct {
	Name      string
	Floor     string
	Headcount int
	Minimum   int
}

// FloorCapacity is the total number of physical seats on a floor.
type FloorCapacity struct {
	Floor string
	Total int
}

// RuleKind distinguishes the two full-day rule semantics.
type RuleKind int

const (
	// RuleNone means the team has no full-day constraint.
	RuleNone RuleKind = iota

	// RuleFixed means the team occupies its full headcount on every listed day.
	RuleFixed

	// RuleChoice means exactly one of the listed days is selected at
	// resolution time. The days are alternatives, not a conjunction.
	RuleChoice
)

func (k RuleKind) String() string {
	switch k {
	case RuleFixed:
		return "fixed"
	case RuleChoice:
		return "choice"
	default:
		return "none"
	}
}

// FullDayRule is the parsed form of a "día completo" scheduling constraint.
type FullDayRule struct {
	Team string
	Kind RuleKind
	Days []Weekday
}

// AllocationRow is one (floor, team, day) cell of the weekly distribution.
// The reserved drop-in pool appears as a row with Team == ReservedPoolLabel.
type AllocationRow struct {
	Floor     string
	Team      string
	Day       Weekday
	Headcount int
	Assigned  int

	// DailyUtilization is assigned / usable capacity × 100 for the day.
	DailyUtilization float64

	// WeeklyUtilization is the team's weekly total / (headcount × 5) × 100.
	WeeklyUtilization float64

	// WeeklyAverage is the team's weekly total / 5, rounded half up.
	WeeklyAverage int
}

// ReservedPoolLabel is the team label used for the drop-in pool rows.
const ReservedPoolLabel = "Cupos libres"

// DeficitRecord reports a team that fell short of its minimum presence on a
// given day. Produced only when Deficit > 0.
type DeficitRecord struct {
	Floor           string
	Team            string
	Day             Weekday
	Headcount       int
	MinimumRequired int
	Assigned        int
	Deficit         int
	Cause           string
}

// Deficit causes.
const (
	CauseInsufficientCapacity = "insufficient floor capacity"
	CauseBelowMinimum         = "below minimum requirement"
)

// DayChoiceEntry records which concrete day a Choice rule resolved to.
type DayChoiceEntry struct {
	Floor    string
	Team     string
	Options  []Weekday
	Chosen   Weekday
	Strategy Strategy
}

// InfeasibleDayEntry flags a (floor, day) whose usable capacity cannot cover
// the configured minimums. A capacity inconsistency the operator must see.
type InfeasibleDayEntry struct {
	Floor           string
	Day             Weekday
	RequiredMinimum int
	UsableCapacity  int
}

// TrimEntry records seats removed from a full-day team to fit capacity.
type TrimEntry struct {
	Floor        string
	Day          Weekday
	Team         string
	SeatsRemoved int
}

// DroppedRuleEntry records a scheduling-rule row whose text produced no
// usable days. The team falls back to proportional distribution.
type DroppedRuleEntry struct {
	Team string
	Raw  string
}

// Warning records a recoverable input problem (e.g. a negative headcount
// coerced to zero).
type Warning struct {
	Context string
	Message string
}

// Audit is the trail of every discretionary decision taken during one run.
type Audit struct {
	Seed           int64
	Strategy       Strategy
	DayChoices     []DayChoiceEntry
	InfeasibleDays []InfeasibleDayEntry
	Trims          []TrimEntry
	DroppedRules   []DroppedRuleEntry
	Warnings       []Warning
}

// Score is the structured quality measure of one variant. Lower is better.
type Score struct {
	Total        float64
	MSE          float64
	TotalDeficit int
	TotalTrims   int

	// Evaluations is the number of (floor, day, team) triples behind MSE.
	Evaluations int
}

// VariantResult is the full output of one allocation run.
type VariantResult struct {
	Seed     int64
	Rows     []AllocationRow
	Deficits []DeficitRecord
	Audit    Audit
	Score    Score
}
