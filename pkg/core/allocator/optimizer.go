package allocator

import "sync"

// OptimizerConfig controls the variant search.
type OptimizerConfig struct {
	// Variants is the number of trials; values below 1 run a single trial.
	Variants int

	// BaseSeed seeds the first trial; trial i runs with
	// BaseSeed + i×SeedStep.
	BaseSeed int64

	// SeedStep separates consecutive trial seeds (default 1).
	SeedStep int64
}

// Optimize runs the full pipeline once per derived seed and keeps the
// lowest-scoring variant.
//
// This is a local-search heuristic, not an exact optimum: it samples the
// tie-break landscape through different seeds and picks the best sample. No
// convergence guarantee is claimed.
//
// Trials are independent (each Run owns its generator), so they execute
// concurrently; the only synchronization point is the final min-by-score
// fold. Score ties go to the lowest seed, keeping the result deterministic.
func Optimize(in Inputs, opts Options, cfg OptimizerConfig) VariantResult {
	n := cfg.Variants
	if n < 1 {
		n = 1
	}
	step := cfg.SeedStep
	if step == 0 {
		step = DefaultSeedStep
	}

	results := make([]VariantResult, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Run(in, opts, cfg.BaseSeed+int64(i)*step)
		}(i)
	}
	wg.Wait()

	best := results[0]
	for _, r := range results[1:] {
		if r.Score.Total < best.Score.Total {
			best = r
		}
	}
	return best
}
