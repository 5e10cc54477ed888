package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"attendancenotifier/attendance"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

func newTestService(t *testing.T, handler http.Handler) *sheetsapi.Service {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := sheetsapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("failed to create sheets service: %v", err)
	}
	return svc
}

func TestSource_Fetch(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || !strings.HasPrefix(r.URL.Path, "/v4/spreadsheets/sheet-1/values/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"range":          "Data!A1:D4",
			"majorDimension": "ROWS",
			"values": [][]interface{}{
				{"EmployeeCode", "ActivityDate", "CheckInTime", "CheckOutTime"},
				{"E001", "2026-10-18", "09:45:00", "17:50:00"},
				{},
				{"E002", "2026-10-18", "10:45:00"},
			},
		})
	}))

	records, err := NewSource(svc, "sheet-1", "Data", nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Get(attendance.ColumnCheckOutTime) != "17:50:00" {
		t.Fatalf("unexpected first record: %v", records[0])
	}
	if v, ok := records[1][attendance.ColumnCheckOutTime]; !ok || v != "" {
		t.Fatalf("expected missing trailing cell to map to empty string, got %q (present=%v)", v, ok)
	}
}

func TestSource_FetchFailure(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	}))

	_, err := NewSource(svc, "sheet-1", "Data", nil).Fetch(context.Background())
	if !errors.Is(err, attendance.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestToRecords_Empty(t *testing.T) {
	t.Parallel()

	if got := toRecords(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := toRecords([][]interface{}{{"EmployeeCode"}}); len(got) != 0 {
		t.Fatalf("expected no records for header-only sheet, got %d", len(got))
	}
}

func TestWriter_WriteClassified(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		cleared bool
		written sheetsapi.ValueRange
	)

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":clear"):
			cleared = true
			_, _ = io.WriteString(w, `{"spreadsheetId":"sheet-1","clearedRange":"Output!A1:Z100"}`)
		case r.Method == http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(&written); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			_, _ = io.WriteString(w, `{"spreadsheetId":"sheet-1","updatedRows":2}`)
		default:
			http.NotFound(w, r)
		}
	}))

	records := []attendance.ClassifiedAttendance{{
		EmployeeCode:   "E001",
		Name:           "Alice",
		Date:           "2026-10-18",
		CheckInStatus:  attendance.StatusOnTime,
		CheckOutStatus: attendance.StatusMissing,
	}}

	if err := NewWriter(svc, "sheet-1", "Output", nil).WriteClassified(context.Background(), records); err != nil {
		t.Fatalf("WriteClassified returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if !cleared {
		t.Fatal("expected output tab to be cleared first")
	}
	if len(written.Values) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(written.Values))
	}
	if written.Values[1][8] != string(attendance.StatusMissing) {
		t.Fatalf("unexpected check-out status cell: %v", written.Values[1][8])
	}
}
