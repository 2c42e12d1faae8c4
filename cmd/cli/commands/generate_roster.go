package commands

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// GenerateRosterCmd creates the generateRoster command
func GenerateRosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateRoster",
		Short: "Generate the duty roster for a month",
		Long: `Generate the duty roster for a month and export it as CSV.

The month defaults to the configured year/month, then to next month.
With --publish the roster is also written to the configured roster spreadsheet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := cmd.Flags().GetInt("year")
			month, _ := cmd.Flags().GetInt("month")
			seedStr, _ := cmd.Flags().GetString("seed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			csvPath, _ := cmd.Flags().GetString("csv")
			publish, _ := cmd.Flags().GetBool("publish")
			force, _ := cmd.Flags().GetBool("force")

			opts := services.GenerateRosterOptions{
				Year:    year,
				Month:   month,
				DryRun:  dryRun,
				CSVPath: csvPath,
				Publish: publish,
				Force:   force,
			}
			if seedStr != "" {
				seed, err := strconv.ParseUint(seedStr, 10, 64)
				if err != nil {
					return fmt.Errorf("seed must be a non-negative integer: %w", err)
				}
				opts.Seed = &seed
			}

			app.Logger.Debug("generateRoster command",
				zap.Int("year", year),
				zap.Int("month", month),
				zap.String("seed", seedStr),
				zap.Bool("dry_run", dryRun))

			staffSource, err := services.ResolveStaffSource(app.Cfg, app.SheetsClient)
			if err != nil {
				return err
			}

			var publisher services.RosterPublisher
			if app.SheetsClient != nil {
				publisher = app.SheetsClient
			}

			result, err := services.GenerateRoster(app.Ctx, staffSource, publisher, app.Cfg, app.Logger, opts)
			if result == nil {
				return err
			}

			// Display results
			outcome := result.Outcome
			fmt.Printf("\nRoster for %s %d (run %s)\n", time.Month(result.Month), result.Year, result.RunID)
			if len(result.Holidays) > 0 {
				fmt.Printf("Holidays: %v\n", result.Holidays)
			}
			fmt.Println()

			renderGrid(os.Stdout, outcome.State, outcome.Summary)
			renderDutyChart(os.Stdout, outcome.State, outcome.Summary)
			renderIssues(os.Stdout, outcome)
			fmt.Println()

			if outcome.Success {
				fmt.Println("✓ Roster passed validation")
			}
			if dryRun {
				fmt.Println("Dry run: nothing was written")
			}
			if result.CSVPath != "" {
				fmt.Printf("✓ CSV written to %s\n", result.CSVPath)
			}
			if result.PublishedTab != "" {
				fmt.Printf("✓ Published to tab '%s'\n", result.PublishedTab)
			}
			fmt.Println()

			return err
		},
	}

	cmd.Flags().Int("year", 0, "Roster year (defaults to config, then next month's year)")
	cmd.Flags().Int("month", 0, "Roster month 1-12 (defaults to config, then next month)")
	cmd.Flags().String("seed", "", "Seed for random tie-breaks")
	cmd.Flags().Bool("dry-run", false, "Allocate and display without writing a CSV or publishing")
	cmd.Flags().String("csv", "", "CSV output path (default shift_<year>_<month>.csv in the output directory)")
	cmd.Flags().Bool("publish", false, "Publish the roster to the roster spreadsheet")
	cmd.Flags().Bool("force", false, "Publish even if the roster fails validation")

	return cmd
}
