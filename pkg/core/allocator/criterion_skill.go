package allocator

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// SkillCriterion restricts duties to staff holding the matching skill.
// The holiday day-shift is checked against the night-duty skill.
type SkillCriterion struct{}

// NewSkillCriterion creates a new SkillCriterion
func NewSkillCriterion() *SkillCriterion {
	return &SkillCriterion{}
}

func (c *SkillCriterion) Name() string {
	return "Skill"
}

func (c *SkillCriterion) IsEligible(state *RosterState, staff *StaffState, dayIndex int, duty model.DutyType) bool {
	return staff.Member.HasSkill(duty)
}

func (c *SkillCriterion) ValidateRosterState(state *RosterState) []ValidationError {
	var errors []ValidationError

	for _, staff := range state.Staff {
		for dayIdx, cell := range state.Grid[staff.Row] {
			if cell.IsDuty() && !staff.Member.HasSkill(cell.Duty) {
				errors = append(errors, ValidationError{
					StaffName:     staff.Name(),
					Day:           state.Days[dayIdx].Number,
					CriterionName: c.Name(),
					Description:   fmt.Sprintf("Assigned '%s' without the '%s' skill", cell.Duty, cell.Duty.SkillFor()),
				})
			}
		}
	}

	return errors
}
