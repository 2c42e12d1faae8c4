package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ListStaffCmd creates the listStaff command
func ListStaffCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listStaff",
		Short: "List staff, skills and constraints from the configured staff source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, known, err := allocator.InitDutyOrder(services.DutyOrderFromConfig(app.Cfg))
			if err != nil {
				return fmt.Errorf("invalid duty configuration: %w", err)
			}
			skills := services.SkillDuties(known)

			source, err := services.ResolveStaffSource(app.Cfg, app.SheetsClient)
			if err != nil {
				return err
			}

			var staff []model.StaffMember
			if source == nil {
				fmt.Println("No staff source configured, showing generated staff")
				staff = model.DefaultStaff(app.Cfg.StaffCount(), known)
			} else {
				staff, err = source.ListStaff(app.Ctx, skills)
				if err != nil {
					return fmt.Errorf("failed to list staff: %w", err)
				}
			}

			app.Logger.Debug("Staff fetched successfully", zap.Int("count", len(staff)))

			fmt.Printf("\nFound %d staff members:\n\n", len(staff))
			for _, member := range staff {
				fmt.Printf("- %s [%s]%s\n", member.Name, skillList(member, skills), constraintSummary(member))
			}
			fmt.Println()

			return nil
		},
	}
}

// skillList renders the skills a member holds in duty order
func skillList(member model.StaffMember, duties []model.DutyType) string {
	var held []string
	for _, duty := range duties {
		if member.HasSkill(duty) {
			held = append(held, string(duty))
		}
	}
	if len(held) == 0 {
		return "no skills"
	}
	return strings.Join(held, ", ")
}

func constraintSummary(member model.StaffMember) string {
	var parts []string
	add := func(label string, days []int) {
		if len(days) == 0 {
			return
		}
		sorted := append([]int(nil), days...)
		sort.Ints(sorted)
		parts = append(parts, fmt.Sprintf("%s %v", label, sorted))
	}
	add("unavailable", member.UnavailableDays)
	add("no time-sensitive", member.NoTimeSensitiveDays)
	add("paid leave", member.PaidLeaveDays)

	if len(parts) == 0 {
		return ""
	}
	return " - " + strings.Join(parts, "; ")
}
