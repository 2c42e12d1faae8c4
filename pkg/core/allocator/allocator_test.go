package allocator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

func TestAllocate_GridShapeAndInvariants(t *testing.T) {
	config := AllocationConfig{
		Year:                  2026,
		Month:                 2,
		Holidays:              []int{11, 23},
		Staff:                 staffPool(12),
		PaidLeaveCountsAsRest: true,
		Rand:                  NewRand(42),
	}

	outcome, err := Allocate(config)
	require.NoError(t, err)
	require.NotNil(t, outcome)

	state := outcome.State
	require.Len(t, state.Grid, 12)
	for _, row := range state.Grid {
		assert.Len(t, row, 28)
	}

	assertInvariants(t, state)
	assert.Empty(t, outcome.ValidationErrors)
	assert.True(t, outcome.Success)

	// Counters agree with the grid
	for _, staff := range state.Staff {
		assert.Equal(t, staff.DutyCount, outcome.Summary.DutyCounts[staff.Name()], staff.Name())
	}
}

func TestAllocate_SameSeedSameGrid(t *testing.T) {
	config := func(seed uint64) AllocationConfig {
		return AllocationConfig{
			Year:  2026,
			Month: 3,
			Staff: staffPool(10),
			Rand:  NewRand(seed),
		}
	}

	first, err := Allocate(config(7))
	require.NoError(t, err)
	second, err := Allocate(config(7))
	require.NoError(t, err)

	assert.Equal(t, first.State.Labels(), second.State.Labels())
	assert.Equal(t, first.Summary.DutyCounts, second.Summary.DutyCounts)
	assert.Equal(t, first.Warnings, second.Warnings)
}

func TestAllocate_FiveDayScenario(t *testing.T) {
	dutyA := model.DutyType("A")
	dutyB := model.DutyType("B")

	config := func(seed uint64) AllocationConfig {
		return AllocationConfig{
			Days: customDays(false, false, false, false, false),
			Staff: []model.StaffMember{
				{Name: "Ann", Skills: skills(dutyA, dutyB)},
				{Name: "Ben", Skills: skills(dutyA, dutyB)},
				{Name: "Cat", Skills: skills(dutyA, dutyB)},
			},
			AncillaryDuties: []model.DutyType{dutyA, dutyB},
			WeekdayDuties:   []model.DutyType{dutyA, dutyB},
			OffDayDuties:    []model.DutyType{},
			Rand:            NewRand(seed),
		}
	}

	first, err := Allocate(config(1))
	require.NoError(t, err)
	second, err := Allocate(config(1))
	require.NoError(t, err)
	assert.Equal(t, first.State.Labels(), second.State.Labels(), "Same seed should give identical grids")

	for seed := uint64(0); seed < 20; seed++ {
		outcome, err := Allocate(config(seed))
		require.NoError(t, err)

		assertInvariants(t, outcome.State)
		assert.True(t, outcome.Success)

		// Whoever sits out day 1 is the only candidate on day 2, so B goes unfilled on days 2 and 4
		assert.Equal(t, []UnfilledSlot{{Day: 2, Duty: dutyB}, {Day: 4, Duty: dutyB}}, outcome.UnfilledSlots)

		counts := []int{}
		for _, name := range []string{"Ann", "Ben", "Cat"} {
			counts = append(counts, outcome.Summary.DutyCounts[name])
		}
		assert.ElementsMatch(t, []int{3, 3, 2}, counts)
	}
}

func TestAllocate_SaturdayNightEarnsCompensation(t *testing.T) {
	// 1 August 2026 is a Saturday
	config := AllocationConfig{
		Year:  2026,
		Month: 8,
		Staff: []model.StaffMember{
			{Name: "Owl", Skills: skills(model.DutyNight)},
			{Name: "Day1", Skills: skills(model.DutyPrimary)},
			{Name: "Day2", Skills: skills(model.DutyPrimary)},
		},
		AncillaryDuties: []model.DutyType{},
		WeekdayDuties:   []model.DutyType{model.DutyPrimary},
		OffDayDuties:    []model.DutyType{model.DutyNight},
		Rand:            NewRand(3),
	}

	outcome, err := Allocate(config)
	require.NoError(t, err)

	state := outcome.State
	require.True(t, state.Days[0].IsOffDay)

	owl := rowFor(state, "Owl")
	require.NotNil(t, owl)
	assert.Equal(t, "Night", owl[0].Label())
	assert.Equal(t, LabelPostNightRest, owl[1].Label())

	// The Saturday night and the Sunday post-night rest each earn a weekday off
	for _, origin := range []int{1, 2} {
		found := false
		for dayIdx, cell := range owl {
			if cell.Kind == KindCompensatoryRest && cell.OriginDay == origin {
				found = true
				assert.Greater(t, dayIdx, 1)
				assert.False(t, state.Days[dayIdx].IsOffDay, "Compensation should land on an ordinary weekday")
			}
		}
		assert.True(t, found, "Expected compensatory rest for day %d", origin)
	}

	assertInvariants(t, state)
	assert.True(t, outcome.Success)
}

func TestAllocate_CompensationFallback(t *testing.T) {
	// Day 1 is the only weekday and it lies before the holiday work on day 2
	config := func(disable bool) AllocationConfig {
		return AllocationConfig{
			Days:                        customDays(false, true, true),
			Staff:                       []model.StaffMember{{Name: "Solo", Skills: skills(model.DutyNight)}},
			AncillaryDuties:             []model.DutyType{},
			WeekdayDuties:               []model.DutyType{},
			OffDayDuties:                []model.DutyType{model.DutyHolidayDay},
			DisableCompensationFallback: disable,
			Rand:                        NewRand(5),
		}
	}

	t.Run("fallback enabled", func(t *testing.T) {
		outcome, err := Allocate(config(false))
		require.NoError(t, err)

		row := rowFor(outcome.State, "Solo")
		assert.Equal(t, string(model.DutyHolidayDay), row[1].Label())

		var comps []int
		for dayIdx, cell := range row {
			if cell.Kind == KindCompensatoryRest {
				assert.Equal(t, "C2", cell.Label())
				comps = append(comps, dayIdx)
			}
		}
		require.Len(t, comps, 1)
		assert.Contains(t, []int{0, 2}, comps[0])
		assert.Empty(t, outcome.Warnings)
		assert.Equal(t, []UnfilledSlot{{Day: 3, Duty: model.DutyHolidayDay}}, outcome.UnfilledSlots)
	})

	t.Run("fallback disabled", func(t *testing.T) {
		outcome, err := Allocate(config(true))
		require.NoError(t, err)

		for _, cell := range rowFor(outcome.State, "Solo") {
			assert.NotEqual(t, KindCompensatoryRest, cell.Kind)
		}
		require.Len(t, outcome.Warnings, 1)
		assert.Equal(t, WarningCompensationDropped, outcome.Warnings[0].Kind)
		assert.Equal(t, "Solo", outcome.Warnings[0].StaffName)
		assert.Equal(t, 2, outcome.Warnings[0].OriginDay)
	})
}

func TestAllocate_PostNightRestOnOffDayWithoutWeekdayLeft(t *testing.T) {
	config := AllocationConfig{
		Days:            customDays(false, true, true),
		Staff:           []model.StaffMember{{Name: "Solo", Skills: skills(model.DutyNight)}},
		AncillaryDuties: []model.DutyType{},
		WeekdayDuties:   []model.DutyType{model.DutyNight},
		OffDayDuties:    []model.DutyType{},
		Rand:            NewRand(1),
	}

	outcome, err := Allocate(config)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"Night", LabelPostNightRest, LabelOffDay}}, outcome.State.Labels())
	require.Len(t, outcome.Warnings, 1)
	assert.Equal(t, 2, outcome.Warnings[0].OriginDay)
	assert.Contains(t, outcome.Warnings[0].Description, "post-night rest")
}

func TestAllocate_ZeroSkillStaffNeverChosen(t *testing.T) {
	staff := append(staffPool(8), model.StaffMember{Name: "Observer"})

	for seed := uint64(0); seed < 5; seed++ {
		outcome, err := Allocate(AllocationConfig{
			Year:  2026,
			Month: 2,
			Staff: staff,
			Rand:  NewRand(seed),
		})
		require.NoError(t, err)

		assert.Equal(t, 0, outcome.Summary.DutyCounts["Observer"])
		for _, cell := range rowFor(outcome.State, "Observer") {
			assert.False(t, cell.IsDuty())
		}
	}
}

func TestAllocate_EqualizesSingleDutyType(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		outcome, err := Allocate(AllocationConfig{
			Year:  2026,
			Month: 2,
			Staff: []model.StaffMember{
				{Name: "A", Skills: skills(model.DutyPrimary)},
				{Name: "B", Skills: skills(model.DutyPrimary)},
				{Name: "C", Skills: skills(model.DutyPrimary)},
				{Name: "D", Skills: skills(model.DutyPrimary)},
			},
			AncillaryDuties: []model.DutyType{},
			WeekdayDuties:   []model.DutyType{model.DutyPrimary},
			OffDayDuties:    []model.DutyType{},
			Rand:            NewRand(seed),
		})
		require.NoError(t, err)
		assert.Empty(t, outcome.UnfilledSlots)

		minCount, maxCount := 1<<30, 0
		total := 0
		for _, counts := range outcome.Summary.DutyTypeCounts {
			n := counts[model.DutyPrimary]
			minCount = min(minCount, n)
			maxCount = max(maxCount, n)
			total += n
		}
		assert.Equal(t, 20, total, "February 2026 has 20 weekdays")
		assert.LessOrEqual(t, maxCount-minCount, 1)
	}
}

func TestAllocate_EqualizesMixedDutyTypes(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		outcome, err := Allocate(AllocationConfig{
			Year:  2026,
			Month: 2,
			Staff: staffPool(12),
			Rand:  NewRand(seed),
		})
		require.NoError(t, err)

		for _, duty := range outcome.State.KnownDuties {
			minCount, maxCount := 1<<30, 0
			for _, counts := range outcome.Summary.DutyTypeCounts {
				minCount = min(minCount, counts[duty])
				maxCount = max(maxCount, counts[duty])
			}
			assert.LessOrEqual(t, maxCount-minCount, 4, "seed %d: %s", seed, duty)
		}
	}
}

func TestAllocate_PaidLeaveAndRestPolicy(t *testing.T) {
	staff := staffPool(8)
	staff[0].PaidLeaveDays = []int{3, 10}

	run := func(countPaidLeave bool) *AllocationOutcome {
		outcome, err := Allocate(AllocationConfig{
			Year:                  2026,
			Month:                 2,
			Staff:                 staff,
			PaidLeaveCountsAsRest: countPaidLeave,
			Rand:                  NewRand(11),
		})
		require.NoError(t, err)
		return outcome
	}

	with := run(true)
	without := run(false)

	row := rowFor(with.State, "Staff1")
	assert.Equal(t, LabelPaidLeave, row[2].Label())
	assert.Equal(t, LabelPaidLeave, row[9].Label())
	assert.True(t, with.Success)

	assert.Equal(t, with.State.Labels(), without.State.Labels())
	assert.Equal(t, without.Summary.RestCounts["Staff1"]+2, with.Summary.RestCounts["Staff1"])
	assert.Equal(t, without.Summary.RestCounts["Staff2"], with.Summary.RestCounts["Staff2"])
}

func TestAllocate_NoTimeSensitiveDays(t *testing.T) {
	staff := staffPool(10)
	for day := 1; day <= 28; day++ {
		staff[0].NoTimeSensitiveDays = append(staff[0].NoTimeSensitiveDays, day)
	}
	staff[1].UnavailableDays = []int{1, 2, 3, 4, 5}

	outcome, err := Allocate(AllocationConfig{Year: 2026, Month: 2, Staff: staff, Rand: NewRand(9)})
	require.NoError(t, err)

	for _, cell := range rowFor(outcome.State, "Staff1") {
		if cell.IsDuty() {
			assert.False(t, cell.Duty.IsTimeSensitive(), "Unexpected time-sensitive duty '%s'", cell.Duty)
		}
	}
	for _, cell := range rowFor(outcome.State, "Staff2")[:5] {
		assert.False(t, cell.IsDuty())
	}
	assert.True(t, outcome.Success)
}

func TestAllocate_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		config  AllocationConfig
		wantErr error
	}{
		{
			name:    "month out of range",
			config:  AllocationConfig{Year: 2026, Month: 13, Staff: staffPool(2)},
			wantErr: calendar.ErrInvalidCalendar,
		},
		{
			name:    "non-positive year",
			config:  AllocationConfig{Year: 0, Month: 1, Staff: staffPool(2)},
			wantErr: calendar.ErrInvalidCalendar,
		},
		{
			name:    "non-contiguous custom days",
			config:  AllocationConfig{Days: append(customDays(false), customDays(false, false, false)[2]), Staff: staffPool(2)},
			wantErr: calendar.ErrInvalidCalendar,
		},
		{
			name: "duplicate staff",
			config: AllocationConfig{Year: 2026, Month: 2, Staff: []model.StaffMember{
				{Name: "Same"}, {Name: "Same"},
			}},
			wantErr: ErrInvalidConstraint,
		},
		{
			name: "unavailable day outside month",
			config: AllocationConfig{Year: 2026, Month: 2, Staff: []model.StaffMember{
				{Name: "Late", UnavailableDays: []int{29}},
			}},
			wantErr: ErrInvalidConstraint,
		},
		{
			name: "unknown weekday duty",
			config: AllocationConfig{Year: 2026, Month: 2, Staff: staffPool(2),
				WeekdayDuties: []model.DutyType{"Triage"}},
			wantErr: ErrInvalidConstraint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := Allocate(tt.config)
			require.Error(t, err)
			assert.Nil(t, outcome)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
