package sheetsclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// fakeSheets records the calls made against a single spreadsheet
type fakeSheets struct {
	mu       sync.Mutex
	tabs     []string
	values   [][]interface{}
	calls    []string
	lastBody sheets.ValueRange
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	path := r.URL.Path

	switch {
	case r.Method == http.MethodGet && strings.Contains(path, "/values/"):
		f.calls = append(f.calls, "values")
		_ = json.NewEncoder(w).Encode(sheets.ValueRange{Values: f.values})
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/spreadsheets/sheet-id"):
		f.calls = append(f.calls, "get")
		resp := sheets.Spreadsheet{}
		for _, tab := range f.tabs {
			resp.Sheets = append(resp.Sheets, &sheets.Sheet{Properties: &sheets.SheetProperties{Title: tab}})
		}
		_ = json.NewEncoder(w).Encode(resp)
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		f.calls = append(f.calls, "create")
		_ = json.NewEncoder(w).Encode(sheets.BatchUpdateSpreadsheetResponse{
			Replies: []*sheets.Response{{AddSheet: &sheets.AddSheetResponse{Properties: &sheets.SheetProperties{SheetId: 7}}}},
		})
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":clear"):
		f.calls = append(f.calls, "clear")
		_, _ = w.Write([]byte("{}"))
	case r.Method == http.MethodPut:
		f.calls = append(f.calls, "update")
		_ = json.NewDecoder(r.Body).Decode(&f.lastBody)
		_, _ = w.Write([]byte("{}"))
	default:
		http.Error(w, "unexpected request "+r.Method+" "+path, http.StatusNotFound)
	}
}

func newFakeClient(t *testing.T, fake *fakeSheets) *Client {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	service, err := sheets.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	return NewClientWithService(service, zap.NewNop())
}

func TestRosterTabTitle(t *testing.T) {
	assert.Equal(t, "Roster 2026-02", RosterTabTitle(2026, 2))
	assert.Equal(t, "Roster 2026-11", RosterTabTitle(2026, 11))
}

func TestToValues(t *testing.T) {
	values := toValues([][]string{{"Name", "01(Sun)"}, {"Ann"}})
	assert.Equal(t, [][]interface{}{{"Name", "01(Sun)"}, {"Ann"}}, values)
}

func TestPublishRoster_CreatesMissingTab(t *testing.T) {
	fake := &fakeSheets{tabs: []string{"Staff"}}
	client := newFakeClient(t, fake)

	rows := [][]string{{"Name", "01(Sun)"}, {"Ann", "1st"}}
	err := client.PublishRoster(context.Background(), "sheet-id", "Roster 2026-02", rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"get", "create", "update"}, fake.calls)
	assert.Equal(t, [][]interface{}{{"Name", "01(Sun)"}, {"Ann", "1st"}}, fake.lastBody.Values)
}

func TestPublishRoster_ClearsExistingTab(t *testing.T) {
	fake := &fakeSheets{tabs: []string{"Staff", "Roster 2026-02"}}
	client := newFakeClient(t, fake)

	err := client.PublishRoster(context.Background(), "sheet-id", "Roster 2026-02", [][]string{{"Name"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"get", "clear", "update"}, fake.calls)
}

func TestPublishRoster_MetadataError(t *testing.T) {
	client := newFakeClient(t, &fakeSheets{})

	err := client.PublishRoster(context.Background(), "other-id", "Roster 2026-02", nil)
	assert.ErrorContains(t, err, "failed to get spreadsheet metadata")
}
