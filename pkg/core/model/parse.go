package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDayList parses a comma-separated list of day numbers such as "1, 5, 12".
// Inclusive ranges ("3-5") are expanded. Blank input yields an empty list.
// Range checks against the month happen later, when constraints are ingested.
func ParseDayList(s string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if from, to, isRange := strings.Cut(part, "-"); isRange {
			start, err := strconv.Atoi(strings.TrimSpace(from))
			if err != nil {
				return nil, fmt.Errorf("invalid day range '%s': %w", part, err)
			}
			end, err := strconv.Atoi(strings.TrimSpace(to))
			if err != nil {
				return nil, fmt.Errorf("invalid day range '%s': %w", part, err)
			}
			if end < start {
				return nil, fmt.Errorf("invalid day range '%s': end before start", part)
			}
			for day := start; day <= end; day++ {
				days = append(days, day)
			}
			continue
		}

		day, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid day '%s': %w", part, err)
		}
		days = append(days, day)
	}
	return days, nil
}

// ParseUnavailableText parses one "Name:1,5,12" entry per line into day lists keyed by name.
// Lines without a colon are ignored. Repeated names accumulate.
func ParseUnavailableText(text string) (map[string][]int, error) {
	result := make(map[string][]int)
	for i, line := range strings.Split(text, "\n") {
		name, dayList, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("line %d: missing staff name", i+1)
		}

		days, err := ParseDayList(dayList)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		result[name] = append(result[name], days...)
	}
	return result, nil
}

// ParseNameList splits newline-separated names, trimming blanks
func ParseNameList(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// AllSkills returns a skill table with every listed duty enabled
func AllSkills(duties []DutyType) map[DutyType]bool {
	skills := make(map[DutyType]bool, len(duties))
	for _, duty := range duties {
		skills[duty] = true
	}
	return skills
}

// DefaultStaff generates count staff members named Staff1..StaffN holding every listed skill
func DefaultStaff(count int, duties []DutyType) []StaffMember {
	staff := make([]StaffMember, count)
	for i := range staff {
		staff[i] = StaffMember{
			Name:   fmt.Sprintf("Staff%d", i+1),
			Skills: AllSkills(duties),
		}
	}
	return staff
}
