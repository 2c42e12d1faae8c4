package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ShowCalendarCmd creates the showCalendar command
func ShowCalendarCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "showCalendar",
		Short: "Show the roster month with weekends and holidays marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := cmd.Flags().GetInt("year")
			month, _ := cmd.Flags().GetInt("month")
			year, month, err := services.ResolveMonth(app.Cfg, year, month, time.Now())
			if err != nil {
				return err
			}

			holidays, err := services.ResolveHolidays(app.Cfg, year, month, app.Logger)
			if err != nil {
				return err
			}

			days, err := calendar.Build(year, month, holidays)
			if err != nil {
				return err
			}

			offDays := 0
			fmt.Printf("\n%s %d\n\n", time.Month(month), year)
			for _, day := range days {
				marker := ""
				switch {
				case day.Holiday:
					marker = colorRed + "holiday" + colorReset
					offDays++
				case day.IsOffDay:
					marker = colorDim + "weekend" + colorReset
					offDays++
				}
				fmt.Printf("  %s  %s\n", day.Label(), marker)
			}
			fmt.Printf("\n%d days, %d off-days, %d weekdays\n\n", len(days), offDays, len(days)-offDays)

			return nil
		},
	}

	cmd.Flags().Int("year", 0, "Year (defaults to config, then next month's year)")
	cmd.Flags().Int("month", 0, "Month 1-12 (defaults to config, then next month)")

	return cmd
}
