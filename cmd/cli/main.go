package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/internal/config"
	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/pkg/core/allocator"
	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/pkg/core/roster"
	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/pkg/core/services"
	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg    *config.Config
	logger *zap.Logger
}

var app *App

func main() {
	rootCmd := &cobra.Command{
		Use:   "puestos",
		Short: "Weekly desk distribution for teams across floors",
		Long:  `Computes a Monday-Friday desk quota per team per floor from a roster, optional floor capacities and optional full-day scheduling rules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.AddCommand(distributeCmd())
	rootCmd.AddCommand(parseRulesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and configuration
func initApp() error {
	var err error
	app = &App{}

	app.logger, err = logging.InitLogger("puestos")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	return nil
}

func distributeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Compute the weekly seat distribution and print the best-scoring variant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterPath, _ := cmd.Flags().GetString("roster")
			capacitiesPath, _ := cmd.Flags().GetString("capacities")
			rulesPath, _ := cmd.Flags().GetString("rules")

			if cmd.Flags().Changed("variants") {
				v, _ := cmd.Flags().GetInt("variants")
				app.cfg.VariantCount = v
			}
			if cmd.Flags().Changed("seed") {
				s, _ := cmd.Flags().GetInt64("seed")
				app.cfg.Seed = s
			}
			if cmd.Flags().Changed("ignore-rules") {
				app.cfg.IgnoreRules, _ = cmd.Flags().GetBool("ignore-rules")
			}
			if cmd.Flags().Changed("strategy") {
				s, _ := cmd.Flags().GetString("strategy")
				if _, err := allocator.ParseStrategy(s); err != nil {
					return err
				}
				app.cfg.DayChoiceStrategy = s
			}
			if err := config.Validate(app.cfg); err != nil {
				return err
			}

			inputs := services.DistributeInputs{}
			var err error
			if inputs.Teams, err = readTable(rosterPath); err != nil {
				return fmt.Errorf("failed to read roster: %w", err)
			}
			if capacitiesPath != "" {
				if inputs.Capacities, err = readTable(capacitiesPath); err != nil {
					return fmt.Errorf("failed to read capacities: %w", err)
				}
			}
			if rulesPath != "" {
				if inputs.Rules, err = readTable(rulesPath); err != nil {
					return fmt.Errorf("failed to read rules: %w", err)
				}
			}

			result, err := services.Distribute(inputs, app.cfg, app.logger)
			if err != nil {
				return err
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().String("roster", "", "CSV with columns floor, team, headcount, minimum (required)")
	cmd.Flags().String("capacities", "", "CSV with columns floor, total capacity (optional)")
	cmd.Flags().String("rules", "", "CSV with columns criterion, value (optional)")
	cmd.Flags().Int("variants", 0, "Number of seeded variants to score")
	cmd.Flags().Int64("seed", 0, "Base seed for the variant search")
	cmd.Flags().Bool("ignore-rules", false, "Ignore scheduling rules entirely")
	cmd.Flags().String("strategy", "", "Day-choice strategy: slack, balance or random")
	cmd.MarkFlagRequired("roster")

	return cmd
}

func parseRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-rules <text>",
		Short: "Show how a scheduling-rule text is interpreted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule := allocator.ParseFullDayRule("", args[0])
			if rule.Kind == allocator.RuleNone {
				fmt.Println("No usable days found - rule would be dropped")
				return nil
			}
			days := make([]string, len(rule.Days))
			for i, d := range rule.Days {
				days[i] = d.String()
			}
			fmt.Printf("%s: %s\n", rule.Kind, strings.Join(days, ", "))
			return nil
		},
	}
}

// readTable loads a CSV file into a storage-agnostic table. The first
// record is the header row.
func readTable(path string) (roster.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return roster.Table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return roster.Table{}, err
	}
	if len(records) == 0 {
		return roster.Table{}, nil
	}

	return roster.Table{Headers: records[0], Rows: records[1:]}, nil
}

func printResult(result *services.DistributeResult) {
	best := result.Best

	fmt.Printf("\n✓ Distribution computed (%d variants, winning seed %d, score %.2f)\n\n",
		result.Variants, best.Seed, best.Score.Total)

	fmt.Printf("%-6s %-24s %-10s %10s %9s %8s %8s %7s\n",
		"Floor", "Team", "Day", "Headcount", "Assigned", "Daily%", "Weekly%", "Avg/day")
	for _, row := range best.Rows {
		if row.Team == allocator.ReservedPoolLabel {
			fmt.Printf("%-6s %-24s %-10s %10s %9d\n",
				row.Floor, row.Team, row.Day, "-", row.Assigned)
			continue
		}
		fmt.Printf("%-6s %-24s %-10s %10d %9d %7.2f%% %7.2f%% %7d\n",
			row.Floor, row.Team, row.Day, row.Headcount, row.Assigned,
			row.DailyUtilization, row.WeeklyUtilization, row.WeeklyAverage)
	}

	if len(best.Deficits) > 0 {
		fmt.Printf("\n⚠️  %d deficit(s):\n", len(best.Deficits))
		for _, d := range best.Deficits {
			fmt.Printf("  %s / %s / %s: assigned %d of minimum %d (short %d) - %s\n",
				d.Floor, d.Team, d.Day, d.Assigned, d.MinimumRequired, d.Deficit, d.Cause)
		}
	}

	audit := best.Audit
	if len(audit.DayChoices) > 0 {
		fmt.Println("\nDay choices:")
		for _, c := range audit.DayChoices {
			opts := make([]string, len(c.Options))
			for i, d := range c.Options {
				opts[i] = d.String()
			}
			fmt.Printf("  %s on floor %s: %s chosen from [%s] (%s)\n",
				c.Team, c.Floor, c.Chosen, strings.Join(opts, ", "), c.Strategy)
		}
	}
	if len(audit.InfeasibleDays) > 0 {
		fmt.Println("\nInfeasible days (minimums exceed capacity):")
		for _, e := range audit.InfeasibleDays {
			fmt.Printf("  floor %s, %s: minimums require %d seats, only %d usable\n",
				e.Floor, e.Day, e.RequiredMinimum, e.UsableCapacity)
		}
	}
	if len(audit.Trims) > 0 {
		fmt.Println("\nFull-day trims:")
		for _, tr := range audit.Trims {
			fmt.Printf("  floor %s, %s: %s lost %d seat(s)\n", tr.Floor, tr.Day, tr.Team, tr.SeatsRemoved)
		}
	}
	if len(audit.DroppedRules) > 0 {
		fmt.Println("\nDropped rules:")
		for _, d := range audit.DroppedRules {
			fmt.Printf("  %s: %q\n", d.Team, d.Raw)
		}
	}
	fmt.Println()
}
