package allocator

import (
	"fmt"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// skills builds a skill table with every listed duty enabled
func skills(duties ...model.DutyType) map[model.DutyType]bool {
	table := make(map[model.DutyType]bool, len(duties))
	for _, duty := range duties {
		table[duty] = true
	}
	return table
}

// allSkills enables every core duty plus the default ancillary duties
func allSkills() map[model.DutyType]bool {
	return skills(append(model.CoreDuties(), model.DefaultAncillaryDuties...)...)
}

// staffPool returns n staff members named Staff1..Staffn holding every skill
func staffPool(n int) []model.StaffMember {
	staff := make([]model.StaffMember, n)
	for i := range staff {
		staff[i] = model.StaffMember{
			Name:   fmt.Sprintf("Staff%d", i+1),
			Skills: allSkills(),
		}
	}
	return staff
}

// customDays builds a contiguous calendar where offDays[i] marks day i+1 as an off-day.
// Dates start on Monday 2 March 2026 and are only used for labels.
func customDays(offDays ...bool) []calendar.Day {
	days := make([]calendar.Day, len(offDays))
	for i, off := range offDays {
		date := time.Date(2026, time.March, 2+i, 0, 0, 0, 0, time.UTC)
		days[i] = calendar.Day{
			Date:     date,
			Number:   i + 1,
			Weekday:  date.Weekday(),
			IsOffDay: off,
		}
	}
	return days
}

// rowFor returns the grid row for the named staff member
func rowFor(state *RosterState, name string) []Cell {
	for _, staff := range state.Staff {
		if staff.Name() == name {
			return state.Grid[staff.Row]
		}
	}
	return nil
}

// assertInvariants checks the hard properties every finalized roster must satisfy
func assertInvariants(t interface {
	Errorf(format string, args ...interface{})
}, state *RosterState) {
	for _, staff := range state.Staff {
		cells := state.Grid[staff.Row]
		for dayIdx, cell := range cells {
			if cell.State != StateFinal || cell.Kind == KindEmpty {
				t.Errorf("%s day %d: cell not finalized", staff.Name(), dayIdx+1)
			}
			if dayIdx == 0 {
				continue
			}
			prev := cells[dayIdx-1]
			if prev.IsDuty() && cell.IsDuty() {
				t.Errorf("%s: duties on consecutive days %d and %d", staff.Name(), dayIdx, dayIdx+1)
			}
			if prev.IsDuty() && prev.Duty == model.DutyNight && cell.Kind != KindPostNightRest {
				t.Errorf("%s day %d: expected post-night rest after night duty, got '%s'",
					staff.Name(), dayIdx+1, cell.Label())
			}
		}
	}
}
