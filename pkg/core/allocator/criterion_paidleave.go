package allocator

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// PaidLeaveCriterion keeps declared paid leave days free of duties.
// Paid leave cells are reserved before allocation, so the veto only matters for
// states built without InitRosterState.
type PaidLeaveCriterion struct{}

// NewPaidLeaveCriterion creates a new PaidLeaveCriterion
func NewPaidLeaveCriterion() *PaidLeaveCriterion {
	return &PaidLeaveCriterion{}
}

func (c *PaidLeaveCriterion) Name() string {
	return "PaidLeave"
}

func (c *PaidLeaveCriterion) IsEligible(state *RosterState, staff *StaffState, dayIndex int, duty model.DutyType) bool {
	return !staff.PaidLeave[state.Days[dayIndex].Number]
}

func (c *PaidLeaveCriterion) ValidateRosterState(state *RosterState) []ValidationError {
	var errors []ValidationError

	for _, staff := range state.Staff {
		for dayIdx, day := range state.Days {
			if !staff.PaidLeave[day.Number] {
				continue
			}

			cell := state.Grid[staff.Row][dayIdx]
			if cell.Kind != KindPaidLeave {
				errors = append(errors, ValidationError{
					StaffName:     staff.Name(),
					Day:           day.Number,
					CriterionName: c.Name(),
					Description:   fmt.Sprintf("Declared paid leave day holds '%s'", cell.Label()),
				})
			}
		}
	}

	return errors
}
