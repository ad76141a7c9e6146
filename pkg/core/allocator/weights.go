package allocator

// Scoring and configuration defaults. The score of a variant is
//
//	score = MSE(assigned vs proportional target) +
//	        DeficitWeight × total deficit seats +
//	        TrimWeight × total full-day seats trimmed
//
// so a single unmet minimum outweighs a lot of proportionality error, and a
// trimmed full-day seat outweighs both. Lower scores win.
const (
	// DefaultReservedPool is the number of seats withheld per floor per day
	// for drop-in bookings.
	DefaultReservedPool = 2

	// DefaultDeficitWeight is the score penalty per unmet minimum seat.
	DefaultDeficitWeight = 50.0

	// DefaultTrimWeight is the score penalty per full-day seat removed to
	// fit capacity. Trims break a hard rule, so they cost the most.
	DefaultTrimWeight = 200.0

	// DefaultVariantCount is how many seeded variants the optimizer tries.
	DefaultVariantCount = 12

	// DefaultSeedStep separates the derived seeds of consecutive trials.
	DefaultSeedStep = 1
)
