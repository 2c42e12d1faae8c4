package sheetsclient

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Column names in the staff sheet. Besides these, each duty type in use has a
// checkbox column headed with the duty name.
const (
	ColumnName            = "Name"
	ColumnUnavailable     = "Unavailable"
	ColumnNoTimeSensitive = "No time-sensitive"
	ColumnPaidLeave       = "Paid leave"
)

// StaffSheet reads staff and their constraints from one tab of a spreadsheet
type StaffSheet struct {
	client        *Client
	spreadsheetID string
	tab           string
}

// StaffSheet returns a staff source backed by the given spreadsheet tab
func (c *Client) StaffSheet(spreadsheetID, tab string) *StaffSheet {
	return &StaffSheet{client: c, spreadsheetID: spreadsheetID, tab: tab}
}

// ListStaff retrieves and parses staff from the configured tab
func (s *StaffSheet) ListStaff(ctx context.Context, duties []model.DutyType) ([]model.StaffMember, error) {
	values, err := s.client.GetValues(ctx, s.spreadsheetID, s.tab)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	staff, missing, err := parseStaff(values, duties)
	if err != nil {
		return nil, fmt.Errorf("failed to parse staff: %w", err)
	}

	for _, duty := range missing {
		s.client.logger.Warn("Staff sheet has no column for duty, nobody will hold this skill",
			zap.String("duty", string(duty)),
			zap.String("tab", s.tab))
	}

	return staff, nil
}

// parseStaff converts raw spreadsheet data into staff members.
// Returns the duty types that have no column in the header.
func parseStaff(raw [][]interface{}, duties []model.DutyType) ([]model.StaffMember, []model.DutyType, error) {
	if len(raw) < 1 {
		return nil, nil, fmt.Errorf("no header row found")
	}

	headerRow := raw[0]
	columnIndex := func(name string) int {
		for i, cell := range headerRow {
			if cellStr, ok := cell.(string); ok && strings.TrimSpace(cellStr) == name {
				return i
			}
		}
		return -1
	}

	nameCol := columnIndex(ColumnName)
	if nameCol == -1 {
		return nil, nil, fmt.Errorf("missing required field in header: %s", ColumnName)
	}

	dutyCols := make(map[model.DutyType]int)
	var missing []model.DutyType
	for _, duty := range duties {
		if col := columnIndex(string(duty)); col != -1 {
			dutyCols[duty] = col
		} else {
			missing = append(missing, duty)
		}
	}

	unavailableCol := columnIndex(ColumnUnavailable)
	noTimeSensitiveCol := columnIndex(ColumnNoTimeSensitive)
	paidLeaveCol := columnIndex(ColumnPaidLeave)

	getField := func(index int, row []interface{}) string {
		if index < 0 || index >= len(row) {
			return ""
		}
		switch v := row[index].(type) {
		case string:
			return strings.TrimSpace(v)
		case nil:
			return ""
		default:
			return fmt.Sprint(v)
		}
	}

	staff := make([]model.StaffMember, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		name := getField(nameCol, row)
		// Skip empty rows
		if name == "" {
			continue
		}

		member := model.StaffMember{
			Name:   name,
			Skills: make(map[model.DutyType]bool, len(dutyCols)),
		}
		for duty, col := range dutyCols {
			if isChecked(getField(col, row)) {
				member.Skills[duty] = true
			}
		}

		var err error
		if member.UnavailableDays, err = model.ParseDayList(getField(unavailableCol, row)); err != nil {
			return nil, nil, fmt.Errorf("row %d (%s): %s: %w", i+1, name, ColumnUnavailable, err)
		}
		if member.NoTimeSensitiveDays, err = model.ParseDayList(getField(noTimeSensitiveCol, row)); err != nil {
			return nil, nil, fmt.Errorf("row %d (%s): %s: %w", i+1, name, ColumnNoTimeSensitive, err)
		}
		if member.PaidLeaveDays, err = model.ParseDayList(getField(paidLeaveCol, row)); err != nil {
			return nil, nil, fmt.Errorf("row %d (%s): %s: %w", i+1, name, ColumnPaidLeave, err)
		}

		staff = append(staff, member)
	}

	return staff, missing, nil
}

// isChecked interprets a checkbox or yes/no cell
func isChecked(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "y", "x", "1", "✓":
		return true
	default:
		return false
	}
}
