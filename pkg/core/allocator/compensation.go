package allocator

import "fmt"

// compensationRequest describes a compensatory rest to reserve for one staff member
type compensationRequest struct {
	staff *StaffState

	// originIdx is the day index of the off-day being compensated
	originIdx int

	// after is the last day index that may not be used; the primary scan starts at after+1
	after int

	// fallback allows any empty day of the month when no ordinary weekday is free
	fallback bool
}

// reserveCompensation reserves one empty ordinary weekday after req.after for the staff member,
// picking uniformly among the free days. With fallback enabled and no weekday free, every other
// empty day of the month is considered. Returns false when nothing could be reserved.
func (a *Allocator) reserveCompensation(req compensationRequest) bool {
	state := a.state
	row := req.staff.Row

	var weekdays []int
	for dayIdx := req.after + 1; dayIdx < len(state.Days); dayIdx++ {
		if !state.Days[dayIdx].IsOffDay && state.IsEmpty(row, dayIdx) {
			weekdays = append(weekdays, dayIdx)
		}
	}

	if dayIdx, ok := a.pickDay(weekdays); ok {
		a.markCompensation(row, dayIdx, req.originIdx)
		return true
	}

	if !req.fallback {
		return false
	}

	var anyDay []int
	for dayIdx := range state.Days {
		// The origin day and the days up to req.after are spoken for (post-night rest)
		if dayIdx >= req.originIdx && dayIdx <= req.after {
			continue
		}
		if state.IsEmpty(row, dayIdx) {
			anyDay = append(anyDay, dayIdx)
		}
	}

	if dayIdx, ok := a.pickDay(anyDay); ok {
		a.markCompensation(row, dayIdx, req.originIdx)
		return true
	}

	return false
}

// pickDay returns a uniformly random entry of days
func (a *Allocator) pickDay(days []int) (int, bool) {
	if len(days) == 0 {
		return 0, false
	}
	a.rng.Shuffle(len(days), func(i, j int) {
		days[i], days[j] = days[j], days[i]
	})
	return days[0], true
}

func (a *Allocator) markCompensation(row, dayIdx, originIdx int) {
	cell := Cell{
		State:     StateReserved,
		Kind:      KindCompensatoryRest,
		OriginDay: a.state.Days[originIdx].Number,
	}
	if a.state.claim(row, dayIdx, cell) {
		a.state.ReservedOff[dayIdx]++
	}
}

// dropCompensation records a compensatory rest that could not be reserved
func (a *Allocator) dropCompensation(staff *StaffState, originIdx int, reason string) {
	originDay := a.state.Days[originIdx].Number
	a.warnings = append(a.warnings, Warning{
		Kind:        WarningCompensationDropped,
		StaffName:   staff.Name(),
		OriginDay:   originDay,
		Description: fmt.Sprintf("No free day left to compensate %s on day %d", reason, originDay),
	})
}
