package allocator

import (
	"math/rand/v2"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Allocator manages one roster generation run
type Allocator struct {
	criteria []Criterion
	state    *RosterState
	rng      *rand.Rand

	compensationFallback bool

	unfilled []UnfilledSlot
	warnings []Warning
}

// AllocationConfig contains the configuration for a roster generation run
type AllocationConfig struct {
	// Year and Month select the roster month
	Year  int
	Month int

	// Holidays are day numbers treated as off-days in addition to weekends
	Holidays []int

	// Days optionally replaces the calendar built from Year/Month/Holidays.
	// Must be contiguous and numbered from 1.
	Days []calendar.Day

	// Staff in roster row order
	Staff []model.StaffMember

	// Duty lists; nil selects the defaults (see DutyOrderInput)
	AncillaryDuties []model.DutyType
	WeekdayDuties   []model.DutyType
	OffDayDuties    []model.DutyType

	// PaidLeaveCountsAsRest includes paid leave days in the rest aggregates
	PaidLeaveCountsAsRest bool

	// DisableCompensationFallback stops holiday-work compensation from falling back to
	// any free day of the month when no ordinary weekday is left
	DisableCompensationFallback bool

	// Rand is the tie-break source. Nil means a fresh time-seeded source.
	Rand *rand.Rand
}

// AllocationOutcome represents the result of a roster generation run
type AllocationOutcome struct {
	// State is the finalized roster
	State *RosterState

	// Summary holds the derived statistics
	Summary *Summary

	// UnfilledSlots lists (day, duty) pairs no one could take
	UnfilledSlots []UnfilledSlot

	// Warnings lists non-fatal conditions such as dropped compensatory rests
	Warnings []Warning

	// ValidationErrors contains any rule violations found in the final state
	ValidationErrors []ValidationError

	// Success indicates the finalized roster passed validation
	Success bool
}

// NewRand returns a tie-break source seeded with seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// InitAllocation builds the calendar, constraint store and empty roster for a run.
// All input validation happens here, before any allocation.
func InitAllocation(config AllocationConfig) (*Allocator, error) {
	days := config.Days
	if days == nil {
		var err error
		days, err = calendar.Build(config.Year, config.Month, config.Holidays)
		if err != nil {
			return nil, err
		}
	} else if err := validateDays(days); err != nil {
		return nil, err
	}

	weekdayDuties, offDayDuties, knownDuties, err := InitDutyOrder(DutyOrderInput{
		AncillaryDuties: config.AncillaryDuties,
		WeekdayDuties:   config.WeekdayDuties,
		OffDayDuties:    config.OffDayDuties,
	})
	if err != nil {
		return nil, err
	}

	staff, err := InitStaff(InitStaffInput{
		Staff:       config.Staff,
		NumDays:     len(days),
		KnownDuties: knownDuties,
	})
	if err != nil {
		return nil, err
	}

	rng := config.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = NewRand(seed)
	}

	return &Allocator{
		criteria:             DefaultCriteria(),
		state:                InitRosterState(days, staff, weekdayDuties, offDayDuties),
		rng:                  rng,
		compensationFallback: !config.DisableCompensationFallback,
	}, nil
}

// Allocate runs the day-by-day, duty-by-duty allocation and returns the finalized roster.
// Errors only come from invalid input; over-constrained inputs leave unfilled slots instead.
func Allocate(config AllocationConfig) (*AllocationOutcome, error) {
	allocator, err := InitAllocation(config)
	if err != nil {
		return nil, err
	}

	state := allocator.state

	for dayIdx := range state.Days {
		// Post-night rest takes precedence over every duty of the day
		allocator.applyPostNightRest(dayIdx)

		for _, duty := range state.DutiesFor(dayIdx) {
			chosen := allocator.selectCandidate(dayIdx, duty)
			if chosen == nil {
				allocator.unfilled = append(allocator.unfilled, UnfilledSlot{
					Day:  state.Days[dayIdx].Number,
					Duty: duty,
				})
				continue
			}

			allocator.assign(chosen, dayIdx, duty)

			if state.Days[dayIdx].IsOffDay && duty.EarnsCompensation() {
				after := dayIdx
				if duty == model.DutyNight {
					after = dayIdx + 1
				}
				req := compensationRequest{
					staff:     chosen,
					originIdx: dayIdx,
					after:     after,
					fallback:  allocator.compensationFallback,
				}
				if !allocator.reserveCompensation(req) {
					allocator.dropCompensation(chosen, dayIdx, string(duty))
				}
			}
		}
	}

	summary := Finalize(state, RestPolicy{CountPaidLeave: config.PaidLeaveCountsAsRest})

	return allocator.buildOutcome(summary), nil
}

// applyPostNightRest writes a post-night rest for every staff member who worked a night
// on the previous day. A rest falling on an off-day earns a compensatory weekday.
func (a *Allocator) applyPostNightRest(dayIdx int) {
	if dayIdx == 0 {
		return
	}

	state := a.state
	for _, staff := range state.Staff {
		prev := state.Cell(staff.Row, dayIdx-1)
		if !prev.IsDuty() || prev.Duty != model.DutyNight {
			continue
		}

		if !state.claim(staff.Row, dayIdx, Cell{State: StateFinal, Kind: KindPostNightRest}) {
			continue
		}

		if state.Days[dayIdx].IsOffDay {
			req := compensationRequest{
				staff:     staff,
				originIdx: dayIdx,
				after:     dayIdx,
				fallback:  false,
			}
			if !a.reserveCompensation(req) {
				a.dropCompensation(staff, dayIdx, "post-night rest")
			}
		}
	}
}

// selectCandidate returns the eligible staff member with the fewest duties so far,
// or nil if nobody is eligible
func (a *Allocator) selectCandidate(dayIdx int, duty model.DutyType) *StaffState {
	var candidates []*StaffState
	for _, staff := range a.state.Staff {
		if IsEligibleForDuty(a.state, staff, dayIdx, duty, a.criteria) {
			candidates = append(candidates, staff)
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	return RankCandidates(candidates, duty, a.rng)[0]
}

// assign commits a duty to the staff member and updates their counters
func (a *Allocator) assign(staff *StaffState, dayIdx int, duty model.DutyType) {
	a.state.claim(staff.Row, dayIdx, Cell{State: StateFinal, Kind: KindDuty, Duty: duty})
	staff.DutyCount++
	staff.DutyTypeCounts[duty]++
	staff.LastDutyIndex = dayIdx
}

// buildOutcome creates the final allocation outcome report
func (a *Allocator) buildOutcome(summary *Summary) *AllocationOutcome {
	// Initialize with empty slices (not nil) for easier consumption
	outcome := &AllocationOutcome{
		State:            a.state,
		Summary:          summary,
		UnfilledSlots:    []UnfilledSlot{},
		Warnings:         []Warning{},
		ValidationErrors: []ValidationError{},
	}

	outcome.UnfilledSlots = append(outcome.UnfilledSlots, a.unfilled...)
	outcome.Warnings = append(outcome.Warnings, a.warnings...)
	outcome.ValidationErrors = append(outcome.ValidationErrors, ValidateRosterState(a.state, a.criteria)...)

	outcome.Success = len(outcome.ValidationErrors) == 0

	return outcome
}
