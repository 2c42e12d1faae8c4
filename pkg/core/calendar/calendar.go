package calendar

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/teambition/rrule-go"
)

// ErrInvalidCalendar is returned for a year/month pair that cannot be expanded
var ErrInvalidCalendar = errors.New("invalid calendar input")

// Day describes a single calendar day of the roster month
type Day struct {
	Date    time.Time
	Number  int // 1-based day of month
	Weekday time.Weekday
	Holiday bool

	// IsOffDay is true for weekends and listed holidays
	IsOffDay bool
}

// Label returns the grid header for the day, e.g. "05(Thu)"
func (d Day) Label() string {
	return fmt.Sprintf("%02d(%s)", d.Number, d.Date.Format("Mon"))
}

// DaysIn returns the number of days in the given month
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Build expands (year, month) into an ordered slice of Day covering every day of the month.
// holidays contains day numbers that are treated as off-days regardless of weekday.
//
// Returns an error if:
//   - year is not positive
//   - month is outside [1, 12]
//   - a holiday day number is outside the month
func Build(year, month int, holidays []int) ([]Day, error) {
	if year <= 0 {
		return nil, fmt.Errorf("%w: year must be positive, got %d", ErrInvalidCalendar, year)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidCalendar, month)
	}

	numDays := DaysIn(year, month)
	for _, h := range holidays {
		if h < 1 || h > numDays {
			return nil, fmt.Errorf("%w: holiday day %d outside 1..%d", ErrInvalidCalendar, h, numDays)
		}
	}

	days := make([]Day, numDays)
	for i := 0; i < numDays; i++ {
		date := time.Date(year, time.Month(month), i+1, 0, 0, 0, 0, time.UTC)
		weekday := date.Weekday()
		holiday := slices.Contains(holidays, i+1)

		days[i] = Day{
			Date:     date,
			Number:   i + 1,
			Weekday:  weekday,
			Holiday:  holiday,
			IsOffDay: holiday || weekday == time.Saturday || weekday == time.Sunday,
		}
	}

	return days, nil
}

// HolidaysFromRules expands RRULE strings into the holiday day numbers falling in the given month.
// Each rule is anchored at the first day of the month's year so yearly rules such as
// "FREQ=YEARLY;BYMONTH=2;BYMONTHDAY=11" resolve without an explicit DTSTART.
// The result is sorted and free of duplicates.
func HolidaysFromRules(rules []string, year, month int) ([]int, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidCalendar, month)
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)
	anchor := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	var days []int
	for i, ruleStr := range rules {
		rule, err := rrule.StrToRRule(ruleStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse holiday rule %d: %w", i, err)
		}

		rule.DTStart(anchor)
		for _, occurrence := range rule.Between(monthStart, monthEnd, true) {
			days = append(days, occurrence.Day())
		}
	}

	slices.Sort(days)
	return slices.Compact(days), nil
}

// MergeHolidays combines static holiday lists, dropping duplicates
func MergeHolidays(lists ...[]int) []int {
	var merged []int
	for _, list := range lists {
		merged = append(merged, list...)
	}
	slices.Sort(merged)
	return slices.Compact(merged)
}
