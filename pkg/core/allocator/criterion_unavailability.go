package allocator

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// UnavailabilityCriterion enforces per-staff unavailable days.
//
// Validity:
//   - Returns false on any day in the staff member's hard unavailability set
//   - Returns false for time-sensitive duties (night, extended, holiday day-shift)
//     on any day in the staff member's "no time-sensitive duty" set
type UnavailabilityCriterion struct{}

// NewUnavailabilityCriterion creates a new UnavailabilityCriterion
func NewUnavailabilityCriterion() *UnavailabilityCriterion {
	return &UnavailabilityCriterion{}
}

func (c *UnavailabilityCriterion) Name() string {
	return "Unavailability"
}

func (c *UnavailabilityCriterion) IsEligible(state *RosterState, staff *StaffState, dayIndex int, duty model.DutyType) bool {
	dayNumber := state.Days[dayIndex].Number

	if staff.Unavailable[dayNumber] {
		return false
	}

	if duty.IsTimeSensitive() && staff.NoTimeSensitive[dayNumber] {
		return false
	}

	return true
}

func (c *UnavailabilityCriterion) ValidateRosterState(state *RosterState) []ValidationError {
	var errors []ValidationError

	for _, staff := range state.Staff {
		for dayIdx, cell := range state.Grid[staff.Row] {
			if !cell.IsDuty() {
				continue
			}

			dayNumber := state.Days[dayIdx].Number
			if staff.Unavailable[dayNumber] {
				errors = append(errors, ValidationError{
					StaffName:     staff.Name(),
					Day:           dayNumber,
					CriterionName: c.Name(),
					Description:   fmt.Sprintf("Assigned '%s' on an unavailable day", cell.Duty),
				})
				continue
			}

			if cell.Duty.IsTimeSensitive() && staff.NoTimeSensitive[dayNumber] {
				errors = append(errors, ValidationError{
					StaffName:     staff.Name(),
					Day:           dayNumber,
					CriterionName: c.Name(),
					Description:   fmt.Sprintf("Assigned time-sensitive duty '%s' on a restricted day", cell.Duty),
				})
			}
		}
	}

	return errors
}
