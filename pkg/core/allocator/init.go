package allocator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// ErrInvalidConstraint is returned when staff constraint data cannot be ingested
var ErrInvalidConstraint = errors.New("invalid constraint data")

// InitStaffInput contains the raw data needed to build the constraint store
type InitStaffInput struct {
	// Staff in roster row order
	Staff []model.StaffMember

	// NumDays is the number of days in the roster month
	NumDays int

	// KnownDuties is every duty type in use this run
	KnownDuties []model.DutyType
}

// InitStaff validates staff constraint data and builds per-staff state.
//
// Invalid input (errors returned):
//   - Empty or duplicate staff names
//   - Day numbers outside [1, NumDays] in any constraint set
//   - Skill entries for duty types not in use
//
// Missing skill entries are kept as-is and read as ineligible.
func InitStaff(input InitStaffInput) ([]*StaffState, error) {
	seen := make(map[string]bool)
	staff := make([]*StaffState, 0, len(input.Staff))

	for row, member := range input.Staff {
		if member.Name == "" {
			return nil, fmt.Errorf("%w: staff member in row %d has no name", ErrInvalidConstraint, row)
		}
		if seen[member.Name] {
			return nil, fmt.Errorf("%w: duplicate staff name '%s'", ErrInvalidConstraint, member.Name)
		}
		seen[member.Name] = true

		for duty := range member.Skills {
			if !slices.Contains(input.KnownDuties, duty) {
				return nil, fmt.Errorf("%w: staff '%s' has skill entry for unknown duty type '%s'",
					ErrInvalidConstraint, member.Name, duty)
			}
		}

		unavailable, err := daySet(member.Name, "unavailable", member.UnavailableDays, input.NumDays)
		if err != nil {
			return nil, err
		}
		noTimeSensitive, err := daySet(member.Name, "no time-sensitive", member.NoTimeSensitiveDays, input.NumDays)
		if err != nil {
			return nil, err
		}
		paidLeave, err := daySet(member.Name, "paid leave", member.PaidLeaveDays, input.NumDays)
		if err != nil {
			return nil, err
		}

		staff = append(staff, &StaffState{
			Member:          member,
			Row:             row,
			Unavailable:     unavailable,
			NoTimeSensitive: noTimeSensitive,
			PaidLeave:       paidLeave,
			DutyTypeCounts:  make(map[model.DutyType]int),
			LastDutyIndex:   -2,
		})
	}

	return staff, nil
}

// daySet converts a list of day numbers into a lookup set, rejecting out-of-range days
func daySet(staffName, kind string, days []int, numDays int) (map[int]bool, error) {
	set := make(map[int]bool, len(days))
	for _, day := range days {
		if day < 1 || day > numDays {
			return nil, fmt.Errorf("%w: %s day %d for '%s' is outside 1..%d",
				ErrInvalidConstraint, kind, day, staffName, numDays)
		}
		set[day] = true
	}
	return set, nil
}

// DutyOrderInput describes the duty lists to process each day
type DutyOrderInput struct {
	// AncillaryDuties; nil means model.DefaultAncillaryDuties
	AncillaryDuties []model.DutyType

	// WeekdayDuties; nil means 1st, 2nd, Night, Extended, then ancillary duties
	WeekdayDuties []model.DutyType

	// OffDayDuties; nil means 1st, 2nd, Night, HolidayDay
	OffDayDuties []model.DutyType
}

// InitDutyOrder resolves the weekday and off-day duty lists and the set of known duty types.
// Every listed duty must be a core duty or a configured ancillary duty, and may appear once per list.
func InitDutyOrder(input DutyOrderInput) (weekday, offDay, known []model.DutyType, err error) {
	ancillary := input.AncillaryDuties
	if ancillary == nil {
		ancillary = model.DefaultAncillaryDuties
	}

	known = append(model.CoreDuties(), ancillary...)

	weekday = input.WeekdayDuties
	if weekday == nil {
		weekday = append([]model.DutyType{
			model.DutyPrimary,
			model.DutySecondary,
			model.DutyNight,
			model.DutyExtended,
		}, ancillary...)
	}

	offDay = input.OffDayDuties
	if offDay == nil {
		offDay = []model.DutyType{
			model.DutyPrimary,
			model.DutySecondary,
			model.DutyNight,
			model.DutyHolidayDay,
		}
	}

	for _, list := range [][]model.DutyType{weekday, offDay} {
		seen := make(map[model.DutyType]bool)
		for _, duty := range list {
			if !slices.Contains(known, duty) {
				return nil, nil, nil, fmt.Errorf("%w: unknown duty type '%s' in duty order", ErrInvalidConstraint, duty)
			}
			if seen[duty] {
				return nil, nil, nil, fmt.Errorf("%w: duty type '%s' listed twice in duty order", ErrInvalidConstraint, duty)
			}
			seen[duty] = true
		}
	}

	return weekday, offDay, known, nil
}

// InitRosterState creates an empty grid for the given staff and days and applies paid leave.
// Paid leave cells are reserved before allocation starts so no later step can overwrite them.
func InitRosterState(days []calendar.Day, staff []*StaffState, weekdayDuties, offDayDuties []model.DutyType) *RosterState {
	grid := make([][]Cell, len(staff))
	for row := range staff {
		grid[row] = make([]Cell, len(days))
	}

	state := &RosterState{
		Days:          days,
		Staff:         staff,
		Grid:          grid,
		ReservedOff:   make([]int, len(days)),
		WeekdayDuties: weekdayDuties,
		OffDayDuties:  offDayDuties,
	}

	for _, member := range staff {
		for dayIdx, day := range days {
			if member.PaidLeave[day.Number] {
				state.claim(member.Row, dayIdx, Cell{State: StateReserved, Kind: KindPaidLeave})
			}
		}
	}

	return state
}

// validateDays checks that a precomputed calendar is contiguous and starts at day 1
func validateDays(days []calendar.Day) error {
	if len(days) == 0 {
		return fmt.Errorf("%w: calendar has no days", calendar.ErrInvalidCalendar)
	}
	for i, day := range days {
		if day.Number != i+1 {
			return fmt.Errorf("%w: day %d at position %d, days must be contiguous from 1",
				calendar.ErrInvalidCalendar, day.Number, i)
		}
	}
	return nil
}
