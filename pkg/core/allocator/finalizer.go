package allocator

import "github.com/jakechorley/duty-roster/pkg/core/model"

// RestPolicy selects which cells count towards the rest aggregates
type RestPolicy struct {
	// CountPaidLeave includes paid leave cells. Off-days and compensatory rests always count.
	CountPaidLeave bool
}

// countsAsRest reports whether a finalized cell is a rest under the policy
func (p RestPolicy) countsAsRest(cell Cell) bool {
	switch cell.Kind {
	case KindOffDay, KindCompensatoryRest:
		return true
	case KindPaidLeave:
		return p.CountPaidLeave
	default:
		return false
	}
}

// Summary holds the statistics derived from a finalized roster
type Summary struct {
	// DutyCounts is the number of duties per staff member
	DutyCounts map[string]int

	// DutyTypeCounts breaks DutyCounts down by duty type
	DutyTypeCounts map[string]map[model.DutyType]int

	// RestCounts is the number of rest cells per staff member
	RestCounts map[string]int

	// DailyRest is the number of staff resting on each day, indexed by day index
	DailyRest []int

	// ReservedOff is the number of compensatory rests reserved on each day, indexed by day index
	ReservedOff []int
}

// Finalize fills every cell still empty with the off-day or routine rest marker,
// promotes reserved cells to final, and derives the roster statistics.
func Finalize(state *RosterState, policy RestPolicy) *Summary {
	for _, staff := range state.Staff {
		row := state.Grid[staff.Row]
		for dayIdx := range row {
			switch row[dayIdx].State {
			case StateEmpty:
				kind := KindRoutineRest
				if state.Days[dayIdx].IsOffDay {
					kind = KindOffDay
				}
				row[dayIdx] = Cell{State: StateFinal, Kind: kind}
			case StateReserved:
				row[dayIdx].State = StateFinal
			}
		}
	}

	summary := &Summary{
		DutyCounts:     make(map[string]int, len(state.Staff)),
		DutyTypeCounts: make(map[string]map[model.DutyType]int, len(state.Staff)),
		RestCounts:     make(map[string]int, len(state.Staff)),
		DailyRest:      make([]int, len(state.Days)),
		ReservedOff:    append([]int(nil), state.ReservedOff...),
	}

	for _, staff := range state.Staff {
		name := staff.Name()
		typeCounts := make(map[model.DutyType]int)
		rest := 0

		for dayIdx, cell := range state.Grid[staff.Row] {
			if cell.IsDuty() {
				summary.DutyCounts[name]++
				typeCounts[cell.Duty]++
			}
			if policy.countsAsRest(cell) {
				rest++
				summary.DailyRest[dayIdx]++
			}
		}

		// Ensure staff with no duties still have an entry
		if _, ok := summary.DutyCounts[name]; !ok {
			summary.DutyCounts[name] = 0
		}
		summary.DutyTypeCounts[name] = typeCounts
		summary.RestCounts[name] = rest
	}

	return summary
}
