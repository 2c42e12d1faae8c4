package allocator

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// NoConsecutiveDutiesCriterion prevents a staff member carrying a duty on two consecutive days.
//
// Validity:
//   - Returns false unless the staff member's last duty day index is strictly less than dayIndex-1
type NoConsecutiveDutiesCriterion struct{}

// NewNoConsecutiveDutiesCriterion creates a new NoConsecutiveDutiesCriterion
func NewNoConsecutiveDutiesCriterion() *NoConsecutiveDutiesCriterion {
	return &NoConsecutiveDutiesCriterion{}
}

func (c *NoConsecutiveDutiesCriterion) Name() string {
	return "NoConsecutiveDuties"
}

func (c *NoConsecutiveDutiesCriterion) IsEligible(state *RosterState, staff *StaffState, dayIndex int, duty model.DutyType) bool {
	return staff.LastDutyIndex < dayIndex-1
}

func (c *NoConsecutiveDutiesCriterion) ValidateRosterState(state *RosterState) []ValidationError {
	var errors []ValidationError

	for _, staff := range state.Staff {
		cells := state.Grid[staff.Row]
		for dayIdx := 1; dayIdx < len(cells); dayIdx++ {
			prev := cells[dayIdx-1]
			curr := cells[dayIdx]
			if prev.IsDuty() && curr.IsDuty() {
				errors = append(errors, ValidationError{
					StaffName:     staff.Name(),
					Day:           state.Days[dayIdx].Number,
					CriterionName: c.Name(),
					Description: fmt.Sprintf("Duties on consecutive days %d ('%s') and %d ('%s')",
						state.Days[dayIdx-1].Number, prev.Duty, state.Days[dayIdx].Number, curr.Duty),
				})
			}
		}
	}

	return errors
}
