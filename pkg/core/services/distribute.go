package services

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/internal/config"
	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/pkg/core/allocator"
	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/pkg/core/roster"
)

// DistributeInputs are the tabular datasets one distribution run consumes.
// Capacities and Rules are optional.
type DistributeInputs struct {
	Teams      roster.Table
	Capacities roster.Table
	Rules      roster.Table
}

// DistributeResult contains the best variant and the settings that
// produced it.
type DistributeResult struct {
	// RunID correlates this run's outputs across logs and exports.
	RunID string

	Best     allocator.VariantResult
	Options  allocator.Options
	Variants int
}

// Distribute parses the input tables, runs the variant optimizer and
// returns the best-scoring weekly distribution.
//
// A roster without the required columns fails fast with a
// *roster.ConfigurationError; data-driven infeasibility never errors and is
// surfaced through the result's audit trail and deficit records instead.
func Distribute(in DistributeInputs, cfg *config.Config, logger *zap.Logger) (*DistributeResult, error) {
	runID := uuid.NewString()
	logger.Debug("Starting distribution run", zap.String("run_id", runID))

	teams, warnings, err := roster.ParseTeams(in.Teams)
	if err != nil {
		return nil, fmt.Errorf("failed to parse team roster: %w", err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("team roster is empty")
	}
	logger.Debug("Parsed team roster",
		zap.Int("teams", len(teams)),
		zap.Int("warnings", len(warnings)))
	for _, w := range warnings {
		logger.Warn("Input coerced", zap.String("context", w.Context), zap.String("detail", w.Message))
	}

	capacities := roster.ParseCapacities(in.Capacities)
	logger.Debug("Parsed floor capacities", zap.Int("floors", len(capacities)))

	opts := cfg.EngineOptions()

	var rules []allocator.FullDayRule
	var dropped []allocator.DroppedRuleEntry
	if !opts.IgnoreRules {
		rules, dropped = roster.ParseRules(in.Rules)
		logger.Debug("Parsed scheduling rules",
			zap.Int("rules", len(rules)),
			zap.Int("dropped", len(dropped)))
		for _, d := range dropped {
			logger.Warn("Dropped unparseable scheduling rule",
				zap.String("team", d.Team),
				zap.String("text", d.Raw))
		}
	} else {
		logger.Info("Scheduling rules ignored by configuration")
	}

	optCfg := cfg.OptimizerConfig()
	logger.Info("Running variant optimizer",
		zap.Int("variants", optCfg.Variants),
		zap.Int64("base_seed", optCfg.BaseSeed),
		zap.String("strategy", string(opts.Strategy)))

	best := allocator.Optimize(allocator.Inputs{
		Teams:        teams,
		Capacities:   capacities,
		Rules:        rules,
		DroppedRules: dropped,
		Warnings:     warnings,
	}, opts, optCfg)

	logger.Info("Distribution complete",
		zap.String("run_id", runID),
		zap.Int64("winning_seed", best.Seed),
		zap.Float64("score", best.Score.Total),
		zap.Int("deficit_seats", best.Score.TotalDeficit),
		zap.Int("trimmed_seats", best.Score.TotalTrims),
		zap.Int("rows", len(best.Rows)))

	return &DistributeResult{
		RunID:    runID,
		Best:     best,
		Options:  opts,
		Variants: optCfg.Variants,
	}, nil
}
