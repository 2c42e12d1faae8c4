package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorDim     = "\033[2m"
)

const maxBarWidth = 40

// cellColor picks the display color for a finalized cell
func cellColor(cell allocator.Cell) string {
	switch cell.Kind {
	case allocator.KindDuty:
		if cell.Duty.IsTimeSensitive() {
			return colorMagenta
		}
		return colorGreen
	case allocator.KindPostNightRest:
		return colorYellow
	case allocator.KindCompensatoryRest:
		return colorCyan
	case allocator.KindPaidLeave:
		return colorBlue
	case allocator.KindOffDay, allocator.KindRoutineRest:
		return colorDim
	default:
		return ""
	}
}

// columnWidth returns the widest cell label in the grid, at least wide enough for a day header
func columnWidth(state *allocator.RosterState) int {
	width := len("00")
	for _, row := range state.Grid {
		for _, cell := range row {
			width = max(width, len(cell.Label()))
		}
	}
	return width
}

func nameWidth(state *allocator.RosterState) int {
	width := len("Name")
	for _, staff := range state.Staff {
		width = max(width, len(staff.Name()))
	}
	return width
}

// renderGrid writes the roster as a coloured table with one row per staff member.
// Off-day columns are marked with '*' under the day number.
func renderGrid(w io.Writer, state *allocator.RosterState, summary *allocator.Summary) {
	nameCol := nameWidth(state) + 2
	dayCol := columnWidth(state) + 1

	fmt.Fprintf(w, "%-*s", nameCol, "Name")
	for _, day := range state.Days {
		fmt.Fprintf(w, "%-*s", dayCol, fmt.Sprintf("%02d", day.Number))
	}
	if summary != nil {
		fmt.Fprintf(w, " %6s %5s", "Duties", "Rest")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-*s", nameCol, "")
	for _, day := range state.Days {
		label := day.Date.Format("Mon")[:2]
		if day.IsOffDay {
			label += "*"
		}
		fmt.Fprintf(w, "%-*s", dayCol, label)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, strings.Repeat("-", nameCol+dayCol*len(state.Days)))

	for _, staff := range state.Staff {
		fmt.Fprintf(w, "%-*s", nameCol, staff.Name())
		for _, cell := range state.Grid[staff.Row] {
			color := cellColor(cell)
			if color == "" {
				fmt.Fprintf(w, "%-*s", dayCol, cell.Label())
				continue
			}
			fmt.Fprintf(w, "%s%-*s%s", color, dayCol, cell.Label(), colorReset)
		}
		if summary != nil {
			fmt.Fprintf(w, " %6d %5d", summary.DutyCounts[staff.Name()], summary.RestCounts[staff.Name()])
		}
		fmt.Fprintln(w)
	}

	if summary != nil {
		fmt.Fprintf(w, "%-*s", nameCol, "Resting")
		for _, count := range summary.DailyRest {
			fmt.Fprintf(w, "%-*d", dayCol, count)
		}
		fmt.Fprintln(w)
	}
}

// barLength scales count against the largest count so the longest bar is width wide
func barLength(count, maxCount, width int) int {
	if maxCount <= 0 || count <= 0 {
		return 0
	}
	return max(1, count*width/maxCount)
}

// renderDutyChart writes a horizontal bar per staff member showing their duty count
func renderDutyChart(w io.Writer, state *allocator.RosterState, summary *allocator.Summary) {
	maxCount := 0
	for _, count := range summary.DutyCounts {
		maxCount = max(maxCount, count)
	}

	nameCol := nameWidth(state) + 2
	fmt.Fprintln(w, "\nDuties per staff member:")
	for _, staff := range state.Staff {
		count := summary.DutyCounts[staff.Name()]
		bar := strings.Repeat("█", barLength(count, maxCount, maxBarWidth))
		fmt.Fprintf(w, "%-*s%s%s%s %d%s\n", nameCol, staff.Name(), colorGreen, bar, colorReset, count,
			dutyBreakdown(summary.DutyTypeCounts[staff.Name()], state.WeekdayDuties, state.OffDayDuties))
	}
}

// dutyBreakdown lists per-type counts in duty order, e.g. " (1st 2, Night 1)"
func dutyBreakdown(counts map[model.DutyType]int, orders ...[]model.DutyType) string {
	seen := make(map[model.DutyType]bool)
	var parts []string
	for _, order := range orders {
		for _, duty := range order {
			if seen[duty] {
				continue
			}
			seen[duty] = true
			if counts[duty] > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", duty, counts[duty]))
			}
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// renderIssues lists unfilled slots, warnings and validation errors
func renderIssues(w io.Writer, outcome *allocator.AllocationOutcome) {
	if len(outcome.UnfilledSlots) > 0 {
		fmt.Fprintf(w, "\n%s⚠️  %d unfilled slots:%s\n", colorYellow, len(outcome.UnfilledSlots), colorReset)
		for _, slot := range outcome.UnfilledSlots {
			fmt.Fprintf(w, "  Day %2d: %s\n", slot.Day, slot.Duty)
		}
	}

	if len(outcome.Warnings) > 0 {
		fmt.Fprintf(w, "\n%s⚠️  %d warnings:%s\n", colorYellow, len(outcome.Warnings), colorReset)
		for _, warning := range outcome.Warnings {
			fmt.Fprintf(w, "  %s\n", warning.Description)
		}
	}

	if len(outcome.ValidationErrors) > 0 {
		fmt.Fprintf(w, "\n%s✗ %d validation errors:%s\n", colorRed, len(outcome.ValidationErrors), colorReset)
		for _, verr := range outcome.ValidationErrors {
			fmt.Fprintf(w, "  [%s] %s\n", verr.CriterionName, verr.Description)
		}
	}
}
