package allocator

import "fmt"

// ValidateRosterState validates the finalized roster against all provided criteria
// and checks that every cell holds exactly one final value.
// An empty slice indicates the roster is valid.
func ValidateRosterState(state *RosterState, criteria []Criterion) []ValidationError {
	var errors []ValidationError

	for _, staff := range state.Staff {
		for dayIdx, cell := range state.Grid[staff.Row] {
			if cell.State != StateFinal || cell.Kind == KindEmpty {
				errors = append(errors, ValidationError{
					StaffName:     staff.Name(),
					Day:           state.Days[dayIdx].Number,
					CriterionName: "CompleteGrid",
					Description:   fmt.Sprintf("Cell is not finalized (state %d, label '%s')", cell.State, cell.Label()),
				})
			}
		}
	}

	for _, criterion := range criteria {
		errors = append(errors, criterion.ValidateRosterState(state)...)
	}

	return errors
}
