package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

func TestSkillList(t *testing.T) {
	duties := []model.DutyType{model.DutyPrimary, model.DutyNight, "CT"}

	member := model.StaffMember{Skills: map[model.DutyType]bool{"CT": true, model.DutyPrimary: true}}
	assert.Equal(t, "1st, CT", skillList(member, duties))
	assert.Equal(t, "no skills", skillList(model.StaffMember{}, duties))
}

func TestConstraintSummary(t *testing.T) {
	member := model.StaffMember{
		UnavailableDays: []int{12, 3},
		PaidLeaveDays:   []int{20},
	}
	assert.Equal(t, " - unavailable [3 12]; paid leave [20]", constraintSummary(member))
	assert.Equal(t, "", constraintSummary(model.StaffMember{}))
}
