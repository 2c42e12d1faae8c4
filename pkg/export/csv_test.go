package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// idleRoster allocates February 2026 to staff without skills, so every cell is a rest marker
func idleRoster(t *testing.T) *allocator.AllocationOutcome {
	t.Helper()
	outcome, err := allocator.Allocate(allocator.AllocationConfig{
		Year:  2026,
		Month: 2,
		Staff: []model.StaffMember{
			{Name: "Ann", PaidLeaveDays: []int{2}},
			{Name: "Ben, Jr."},
		},
		PaidLeaveCountsAsRest: true,
		Rand:                  allocator.NewRand(1),
	})
	require.NoError(t, err)
	return outcome
}

func TestDefaultFileName(t *testing.T) {
	assert.Equal(t, "shift_2026_2.csv", DefaultFileName(2026, 2))
	assert.Equal(t, "shift_2026_11.csv", DefaultFileName(2026, 11))
}

func TestTable_GridOnly(t *testing.T) {
	outcome := idleRoster(t)

	table := Table(outcome.State, nil)

	require.Len(t, table, 3)
	header := table[0]
	require.Len(t, header, 29)
	assert.Equal(t, "Name", header[0])
	assert.Equal(t, "01(Sun)", header[1])
	assert.Equal(t, "02(Mon)", header[2])
	assert.Equal(t, "28(Sat)", header[28])

	assert.Equal(t, []string{"Ann", "Off", "PL", "-"}, table[1][:4])
	assert.Equal(t, []string{"Ben, Jr.", "Off", "-", "-"}, table[2][:4])
}

func TestTable_WithSummary(t *testing.T) {
	outcome := idleRoster(t)

	table := Table(outcome.State, outcome.Summary)

	header := table[0]
	require.Len(t, header, 31)
	assert.Equal(t, []string{"Duties", "Rest"}, header[29:])

	// February 2026 has 8 weekend days; Ann's paid leave counts as rest
	assert.Equal(t, []string{"0", "9"}, table[1][29:])
	assert.Equal(t, []string{"0", "8"}, table[2][29:])
}

func TestWriteCSV_BOMAndQuoting(t *testing.T) {
	outcome := idleRoster(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, outcome.State, nil))

	content := buf.String()
	require.True(t, strings.HasPrefix(content, "\ufeff"), "CSV should start with a UTF-8 BOM")
	assert.Contains(t, content, `"Ben, Jr."`)

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(content, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, Table(outcome.State, nil), records)
}

func TestWriteCSVFile_CreatesDirectories(t *testing.T) {
	outcome := idleRoster(t)
	path := filepath.Join(t.TempDir(), "out", DefaultFileName(2026, 2))

	require.NoError(t, WriteCSVFile(path, outcome.State, outcome.Summary))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\ufeff")))
	assert.Contains(t, string(data), "Name,01(Sun)")
}
