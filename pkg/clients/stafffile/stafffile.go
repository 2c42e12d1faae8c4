package stafffile

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// File is the on-disk layout of a staff file.
//
//	staff:
//	  - name: Alice
//	    skills: [1st, 2nd, Night]   # omitted means every duty, [] means none
//	    unavailable: "1,5,12"
//	    noTimeSensitive: "7-9"
//	    paidLeave: "20"
//	names: |                        # extra staff holding every skill
//	  Carol
//	  Dave
//	unavailableText: |              # "Name:days" per line, merged into hard unavailability
//	  Carol:3,4
type File struct {
	Staff           []Entry `yaml:"staff" validate:"dive"`
	Names           string  `yaml:"names,omitempty"`
	UnavailableText string  `yaml:"unavailableText,omitempty"`
}

// Entry describes one staff member
type Entry struct {
	Name            string   `yaml:"name" validate:"required"`
	Skills          []string `yaml:"skills,omitempty" validate:"omitempty,dive,required"`
	Unavailable     string   `yaml:"unavailable,omitempty"`
	NoTimeSensitive string   `yaml:"noTimeSensitive,omitempty"`
	PaidLeave       string   `yaml:"paidLeave,omitempty"`
}

var validate = validator.New()

// Source reads staff from a YAML file
type Source struct {
	Path string
}

// NewSource creates a Source for the given path
func NewSource(path string) *Source {
	return &Source{Path: path}
}

// ListStaff loads the staff file. duties is the set of duty types in use;
// entries without a skills list receive all of them.
func (s *Source) ListStaff(ctx context.Context, duties []model.DutyType) ([]model.StaffMember, error) {
	return Load(s.Path, duties)
}

// Load reads and parses a staff file
func Load(path string, duties []model.DutyType) ([]model.StaffMember, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read staff file: %w", err)
	}

	return Parse(data, duties)
}

// Parse converts staff file content into staff members, in file order:
// the staff list first, then the names block
func Parse(data []byte, duties []model.DutyType) ([]model.StaffMember, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse staff file: %w", err)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("staff file validation failed: %w", err)
	}

	staff := make([]model.StaffMember, 0, len(file.Staff))
	for _, entry := range file.Staff {
		member, err := entry.toMember(duties)
		if err != nil {
			return nil, fmt.Errorf("staff '%s': %w", entry.Name, err)
		}
		staff = append(staff, member)
	}

	for _, name := range model.ParseNameList(file.Names) {
		staff = append(staff, model.StaffMember{Name: name, Skills: model.AllSkills(duties)})
	}

	if file.UnavailableText != "" {
		extra, err := model.ParseUnavailableText(file.UnavailableText)
		if err != nil {
			return nil, fmt.Errorf("failed to parse unavailableText: %w", err)
		}
		if err := mergeUnavailable(staff, extra); err != nil {
			return nil, err
		}
	}

	return staff, nil
}

func (e Entry) toMember(duties []model.DutyType) (model.StaffMember, error) {
	member := model.StaffMember{Name: e.Name}

	if e.Skills == nil {
		member.Skills = model.AllSkills(duties)
	} else {
		member.Skills = make(map[model.DutyType]bool, len(e.Skills))
		for _, skill := range e.Skills {
			member.Skills[model.DutyType(skill)] = true
		}
	}

	var err error
	if member.UnavailableDays, err = model.ParseDayList(e.Unavailable); err != nil {
		return member, fmt.Errorf("unavailable: %w", err)
	}
	if member.NoTimeSensitiveDays, err = model.ParseDayList(e.NoTimeSensitive); err != nil {
		return member, fmt.Errorf("noTimeSensitive: %w", err)
	}
	if member.PaidLeaveDays, err = model.ParseDayList(e.PaidLeave); err != nil {
		return member, fmt.Errorf("paidLeave: %w", err)
	}

	return member, nil
}

// mergeUnavailable appends parsed unavailability to the matching staff members.
// Names that match nobody are rejected so typos surface instead of being ignored.
func mergeUnavailable(staff []model.StaffMember, extra map[string][]int) error {
	index := make(map[string]int, len(staff))
	for i, member := range staff {
		index[member.Name] = i
	}

	for name, days := range extra {
		i, ok := index[name]
		if !ok {
			return fmt.Errorf("unavailableText names unknown staff member '%s'", name)
		}
		staff[i].UnavailableDays = append(staff[i].UnavailableDays, days...)
	}

	return nil
}
