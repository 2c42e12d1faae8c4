package allocator

import "github.com/jakechorley/duty-roster/pkg/core/model"

// Criterion is a hard constraint on duty assignment.
//
// Each criterion is consulted twice: while the engine filters candidates for a
// (day, duty) slot, and again over the finalized grid to confirm the roster honours it.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsEligible determines if a staff member may take the duty on the given day index.
	// This acts as a veto - if ANY criterion returns false, the staff member is not a candidate.
	IsEligible(state *RosterState, staff *StaffState, dayIndex int, duty model.DutyType) bool

	// ValidateRosterState checks the finalized roster against this criterion.
	// Returns a slice of validation errors (empty if all valid).
	ValidateRosterState(state *RosterState) []ValidationError
}

// DefaultCriteria returns the fatigue and eligibility rules the engine always enforces
func DefaultCriteria() []Criterion {
	return []Criterion{
		NewSkillCriterion(),
		NewUnavailabilityCriterion(),
		NewNoConsecutiveDutiesCriterion(),
		NewPostNightRestCriterion(),
		NewPaidLeaveCriterion(),
	}
}

// IsEligibleForDuty checks if a staff member is a candidate for a (day, duty) slot.
//
// Returns false if:
//   - The staff member's cell for the day has already been written
//   - Any criterion's IsEligible hook returns false
func IsEligibleForDuty(state *RosterState, staff *StaffState, dayIndex int, duty model.DutyType, criteria []Criterion) bool {
	if !state.IsEmpty(staff.Row, dayIndex) {
		return false
	}

	for _, criterion := range criteria {
		if !criterion.IsEligible(state, staff, dayIndex, duty) {
			return false
		}
	}

	return true
}
