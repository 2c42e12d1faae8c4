package allocator

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// PostNightRestCriterion guarantees the day after a night duty is a post-night rest.
//
// Validity:
//   - Night duty is only allowed when the following day's cell is still empty, so the
//     post-night rest can always be written there. A night on the last day of the month
//     has no following day and is always allowed.
type PostNightRestCriterion struct{}

// NewPostNightRestCriterion creates a new PostNightRestCriterion
func NewPostNightRestCriterion() *PostNightRestCriterion {
	return &PostNightRestCriterion{}
}

func (c *PostNightRestCriterion) Name() string {
	return "PostNightRest"
}

func (c *PostNightRestCriterion) IsEligible(state *RosterState, staff *StaffState, dayIndex int, duty model.DutyType) bool {
	if duty != model.DutyNight {
		return true
	}

	nextIdx := dayIndex + 1
	if nextIdx >= len(state.Days) {
		return true
	}

	return state.IsEmpty(staff.Row, nextIdx)
}

func (c *PostNightRestCriterion) ValidateRosterState(state *RosterState) []ValidationError {
	var errors []ValidationError

	for _, staff := range state.Staff {
		cells := state.Grid[staff.Row]
		for dayIdx := 0; dayIdx < len(cells)-1; dayIdx++ {
			if !cells[dayIdx].IsDuty() || cells[dayIdx].Duty != model.DutyNight {
				continue
			}

			next := cells[dayIdx+1]
			if next.Kind != KindPostNightRest {
				errors = append(errors, ValidationError{
					StaffName:     staff.Name(),
					Day:           state.Days[dayIdx+1].Number,
					CriterionName: c.Name(),
					Description:   fmt.Sprintf("Day after night duty holds '%s' instead of post-night rest", next.Label()),
				})
			}
		}
	}

	return errors
}
