package allocator

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// CellState tracks the lifecycle of a single roster cell.
// A cell is written at most once; later writers see a non-empty state and back off.
type CellState int

const (
	// StateEmpty means nothing has claimed the cell yet
	StateEmpty CellState = iota
	// StateReserved means the cell was claimed ahead of the day being processed
	// (paid leave, compensatory rest)
	StateReserved
	// StateFinal means the cell holds its final value
	StateFinal
)

// CellKind is the kind of value held by a roster cell
type CellKind int

const (
	KindEmpty CellKind = iota
	KindDuty
	KindPostNightRest
	KindCompensatoryRest
	KindPaidLeave
	KindRoutineRest
	KindOffDay
)

// Cell labels used when rendering the grid
const (
	LabelPostNightRest = "PN"
	LabelPaidLeave     = "PL"
	LabelRoutineRest   = "-"
	LabelOffDay        = "Off"
)

// Cell is the value assigned to one (staff, day) pair
type Cell struct {
	State CellState
	Kind  CellKind

	// Duty is set when Kind is KindDuty
	Duty model.DutyType

	// OriginDay is the day number a compensatory rest compensates for
	OriginDay int
}

// IsEmpty returns true if nothing has been written to the cell
func (c Cell) IsEmpty() bool {
	return c.State == StateEmpty
}

// IsDuty returns true if the cell carries a duty assignment
func (c Cell) IsDuty() bool {
	return c.Kind == KindDuty
}

// Label returns the display label for the cell
func (c Cell) Label() string {
	switch c.Kind {
	case KindDuty:
		return string(c.Duty)
	case KindPostNightRest:
		return LabelPostNightRest
	case KindCompensatoryRest:
		return fmt.Sprintf("C%d", c.OriginDay)
	case KindPaidLeave:
		return LabelPaidLeave
	case KindRoutineRest:
		return LabelRoutineRest
	case KindOffDay:
		return LabelOffDay
	default:
		return ""
	}
}

// StaffState is the per-staff slice of the constraint store plus the running counters
// the engine needs for equalization and the no-consecutive-duty rule
type StaffState struct {
	Member model.StaffMember

	// Row is the staff member's row in the grid
	Row int

	// Constraint sets keyed by day number
	Unavailable     map[int]bool
	NoTimeSensitive map[int]bool
	PaidLeave       map[int]bool

	// DutyCount is the number of duties assigned so far in this run
	DutyCount int

	// DutyTypeCounts breaks DutyCount down by duty type
	DutyTypeCounts map[model.DutyType]int

	// LastDutyIndex is the day index of the most recent duty (-2 before any assignment)
	LastDutyIndex int
}

// Name returns the staff member's unique name
func (s *StaffState) Name() string {
	return s.Member.Name
}

// RosterState represents the roster grid and counters during one generation run
type RosterState struct {
	// Days of the month in order
	Days []calendar.Day

	// Staff in input order; Staff[i].Row == i
	Staff []*StaffState

	// Grid is indexed [row][dayIndex]
	Grid [][]Cell

	// ReservedOff counts compensatory rests reserved on each day
	ReservedOff []int

	// WeekdayDuties and OffDayDuties are the ordered duty lists processed each day
	WeekdayDuties []model.DutyType
	OffDayDuties  []model.DutyType
}

// Cell returns the cell for the given row and day index
func (s *RosterState) Cell(row, dayIndex int) Cell {
	return s.Grid[row][dayIndex]
}

// IsEmpty returns true if the cell for the given row and day index is unclaimed.
// Day indices outside the month count as not empty.
func (s *RosterState) IsEmpty(row, dayIndex int) bool {
	if dayIndex < 0 || dayIndex >= len(s.Days) {
		return false
	}
	return s.Grid[row][dayIndex].IsEmpty()
}

// DutiesFor returns the ordered duty list for the given day index
func (s *RosterState) DutiesFor(dayIndex int) []model.DutyType {
	if s.Days[dayIndex].IsOffDay {
		return s.OffDayDuties
	}
	return s.WeekdayDuties
}

// claim writes cell into the grid if the target is still empty.
// Returns false, leaving the grid untouched, if another writer got there first.
func (s *RosterState) claim(row, dayIndex int, cell Cell) bool {
	if !s.IsEmpty(row, dayIndex) {
		return false
	}
	s.Grid[row][dayIndex] = cell
	return true
}

// Labels renders the grid as display labels, one row per staff member
func (s *RosterState) Labels() [][]string {
	labels := make([][]string, len(s.Grid))
	for row, cells := range s.Grid {
		labels[row] = make([]string, len(cells))
		for day, cell := range cells {
			labels[row][day] = cell.Label()
		}
	}
	return labels
}

// UnfilledSlot is a (day, duty) pair for which no eligible candidate existed
type UnfilledSlot struct {
	Day  int // day number
	Duty model.DutyType
}

// WarningKind classifies non-fatal conditions raised during a run
type WarningKind string

const (
	// WarningCompensationDropped is raised when no day could be reserved for a compensatory rest
	WarningCompensationDropped WarningKind = "compensation_dropped"
)

// Warning is a non-fatal condition observed during a run
type Warning struct {
	Kind        WarningKind
	StaffName   string
	OriginDay   int
	Description string
}

// ValidationError represents a rule violation found in a finalized roster
type ValidationError struct {
	StaffName     string
	Day           int // day number, 0 when not tied to a day
	CriterionName string
	Description   string
}
