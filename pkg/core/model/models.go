package model

// DutyType is a named role to be filled on a given day
type DutyType string

const (
	DutyPrimary    DutyType = "1st"
	DutySecondary  DutyType = "2nd"
	DutyNight      DutyType = "Night"
	DutyExtended   DutyType = "Extended"
	DutyHolidayDay DutyType = "HolidayDay"
)

// DefaultAncillaryDuties are the ancillary duty types used when none are configured
var DefaultAncillaryDuties = []DutyType{"CT", "MRI"}

// IsTimeSensitive reports whether the duty is subject to the "no time-sensitive duty" constraint
func (d DutyType) IsTimeSensitive() bool {
	return d == DutyNight || d == DutyExtended || d == DutyHolidayDay
}

// SkillFor returns the skill a staff member must hold to take this duty.
// The holiday day-shift is staffed from the night-duty pool.
func (d DutyType) SkillFor() DutyType {
	if d == DutyHolidayDay {
		return DutyNight
	}
	return d
}

// EarnsCompensation reports whether working this duty on an off-day earns a compensatory rest day
func (d DutyType) EarnsCompensation() bool {
	return d == DutyNight || d == DutyHolidayDay
}

// CoreDuties returns the duty types every roster knows about, in catalogue order
func CoreDuties() []DutyType {
	return []DutyType{DutyPrimary, DutySecondary, DutyNight, DutyExtended, DutyHolidayDay}
}

// StaffMember represents one member of the staff pool and their constraints for the month
type StaffMember struct {
	Name string

	// Skills maps duty type to eligibility. Missing entries are treated as ineligible.
	Skills map[DutyType]bool

	// UnavailableDays are day numbers on which no duty may be assigned
	UnavailableDays []int

	// NoTimeSensitiveDays are day numbers on which night, extended and holiday day-shift
	// duties may not be assigned. Ordinary daytime duties are still allowed.
	NoTimeSensitiveDays []int

	// PaidLeaveDays are pre-approved paid leave day numbers
	PaidLeaveDays []int
}

// HasSkill reports whether the staff member may take the given duty
func (s StaffMember) HasSkill(duty DutyType) bool {
	return s.Skills[duty.SkillFor()]
}
