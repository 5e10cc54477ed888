package sheets

import (
	"context"
	"fmt"

	"attendancenotifier/attendance"

	"go.uber.org/zap"
	sheetsapi "google.golang.org/api/sheets/v4"
)

var outputHeader = []interface{}{
	"EmployeeCode", "Name", "Shift", "Email", "Date",
	"CheckIn", "CheckOut", "CheckInStatus", "CheckOutStatus",
}

// Writer перезаписывает вкладку результатов классифицированными строками
type Writer struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	tab           string
	logger        *zap.Logger
}

func NewWriter(svc *sheetsapi.Service, spreadsheetID, tab string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{svc: svc, spreadsheetID: spreadsheetID, tab: tab, logger: logger}
}

func (w *Writer) WriteClassified(ctx context.Context, records []attendance.ClassifiedAttendance) error {
	if _, err := w.svc.Spreadsheets.Values.Clear(w.spreadsheetID, w.tab, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", w.tab, err)
	}

	rows := make([][]interface{}, 0, len(records)+1)
	rows = append(rows, outputHeader)
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.EmployeeCode, r.Name, r.Shift, r.Email, r.Date,
			r.CheckIn, r.CheckOut, string(r.CheckInStatus), string(r.CheckOutStatus),
		})
	}

	resp, err := w.svc.Spreadsheets.Values.Update(w.spreadsheetID, w.tab+"!A1", &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", w.tab, err)
	}

	w.logger.Info("output tab updated",
		zap.String("tab", w.tab),
		zap.Int64("rows", resp.UpdatedRows),
	)
	return nil
}
