package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/clients/stafffile"
	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// ResolveStaffSource picks the staff source named in the config.
// Returns nil when neither a staff file nor a staff sheet is configured.
func ResolveStaffSource(cfg *config.Config, sheetsClient *sheetsclient.Client) (StaffSource, error) {
	switch {
	case cfg.StaffFile != "":
		return stafffile.NewSource(cfg.StaffFile), nil
	case cfg.StaffSheetID != "":
		if sheetsClient == nil {
			return nil, fmt.Errorf("staffSheetID is configured but no sheets client is available")
		}
		return sheetsClient.StaffSheet(cfg.StaffSheetID, cfg.StaffTab), nil
	default:
		return nil, nil
	}
}

// ResolveHolidays merges the fixed holidays with those expanded from the holiday rules.
// Fixed holidays are day numbers of the configured month, so they are skipped with a
// warning when another month is rostered.
func ResolveHolidays(cfg *config.Config, year, month int, logger *zap.Logger) ([]int, error) {
	fromRules, err := calendar.HolidaysFromRules(cfg.HolidayRules, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve holidays: %w", err)
	}

	fixed := cfg.Holidays
	if len(fixed) > 0 && !cfg.IsConfiguredMonth(year, month) {
		logger.Warn("Ignoring fixed holidays configured for another month",
			zap.Int("config_year", cfg.Year),
			zap.Int("config_month", cfg.Month),
			zap.Int("year", year),
			zap.Int("month", month),
			zap.Ints("holidays", fixed))
		fixed = nil
	}

	return calendar.MergeHolidays(fixed, fromRules), nil
}

// DutyOrderFromConfig converts the configured duty lists. Unset lists stay nil so the
// allocator applies its defaults.
func DutyOrderFromConfig(cfg *config.Config) allocator.DutyOrderInput {
	return allocator.DutyOrderInput{
		AncillaryDuties: dutyTypes(cfg.AncillaryDuties),
		WeekdayDuties:   dutyTypes(cfg.WeekdayDuties),
		OffDayDuties:    dutyTypes(cfg.OffDayDuties),
	}
}

func dutyTypes(names []string) []model.DutyType {
	if len(names) == 0 {
		return nil
	}
	duties := make([]model.DutyType, len(names))
	for i, name := range names {
		duties[i] = model.DutyType(name)
	}
	return duties
}

// SkillDuties filters duties down to those that are skills in their own right.
// The holiday day-shift borrows the night skill so it never needs its own column.
func SkillDuties(duties []model.DutyType) []model.DutyType {
	var skills []model.DutyType
	for _, duty := range duties {
		if duty.SkillFor() == duty {
			skills = append(skills, duty)
		}
	}
	return skills
}

// NextMonth returns the year and month following now
func NextMonth(now time.Time) (int, int) {
	next := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return next.Year(), int(next.Month())
}

// ResolveMonth picks the roster month: non-zero year and month win, then the configured
// values, then the month after now
func ResolveMonth(cfg *config.Config, year, month int, now time.Time) (int, int, error) {
	if year == 0 {
		year = cfg.Year
	}
	if month == 0 {
		month = cfg.Month
	}

	nextYear, nextMonth := NextMonth(now)
	if year == 0 {
		year = nextYear
	}
	if month == 0 {
		month = nextMonth
	}

	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: month must be between 1 and 12, got %d", calendar.ErrInvalidCalendar, month)
	}

	return year, month, nil
}
