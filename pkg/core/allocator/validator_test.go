package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

func criterionNames(errors []ValidationError) []string {
	names := make([]string, len(errors))
	for i, e := range errors {
		names[i] = e.CriterionName
	}
	return names
}

func TestValidateRosterState_ValidRoster(t *testing.T) {
	state := newTestState(t, []model.StaffMember{
		{Name: "Ann", Skills: allSkills()},
	}, false, false, false)

	state.claim(0, 0, Cell{State: StateFinal, Kind: KindDuty, Duty: model.DutyNight})
	state.claim(0, 1, Cell{State: StateFinal, Kind: KindPostNightRest})
	state.claim(0, 2, Cell{State: StateFinal, Kind: KindDuty, Duty: model.DutyPrimary})

	errors := ValidateRosterState(state, DefaultCriteria())
	assert.Empty(t, errors, "Should have no errors for a valid roster")
}

func TestValidateRosterState_IncompleteGrid(t *testing.T) {
	state := newTestState(t, []model.StaffMember{{Name: "Ann"}}, false, false)
	state.claim(0, 0, Cell{State: StateFinal, Kind: KindRoutineRest})

	errors := ValidateRosterState(state, nil)

	assert.Len(t, errors, 1)
	assert.Equal(t, "CompleteGrid", errors[0].CriterionName)
	assert.Equal(t, 2, errors[0].Day)
}

func TestValidateRosterState_MultipleViolations(t *testing.T) {
	state := newTestState(t, []model.StaffMember{
		{Name: "Ann", Skills: skills(model.DutyPrimary), UnavailableDays: []int{3}, PaidLeaveDays: []int{4}},
	}, false, false, false, false)

	// Written directly to bypass the claim guard, as a broken engine might
	state.Grid[0][0] = Cell{State: StateFinal, Kind: KindDuty, Duty: model.DutyNight}
	state.Grid[0][1] = Cell{State: StateFinal, Kind: KindDuty, Duty: model.DutyPrimary}
	state.Grid[0][2] = Cell{State: StateFinal, Kind: KindDuty, Duty: model.DutyPrimary}
	state.Grid[0][3] = Cell{State: StateFinal, Kind: KindDuty, Duty: model.DutyPrimary}

	errors := ValidateRosterState(state, DefaultCriteria())

	names := criterionNames(errors)
	assert.Contains(t, names, "Skill")
	assert.Contains(t, names, "NoConsecutiveDuties")
	assert.Contains(t, names, "PostNightRest")
	assert.Contains(t, names, "Unavailability")
	assert.Contains(t, names, "PaidLeave")
	assert.NotContains(t, names, "CompleteGrid")
}
