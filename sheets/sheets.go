package sheets

import (
	"context"
	"fmt"
	"strings"

	"attendancenotifier/attendance"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// NewService создаёт клиент Google Sheets по файлу сервисного аккаунта.
// Дополнительные опции идут после стандартных и могут их переопределить.
func NewService(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*sheetsapi.Service, error) {
	base := []option.ClientOption{
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	}
	svc, err := sheetsapi.NewService(ctx, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrSourceUnavailable, err)
	}
	return svc, nil
}

// Source читает все строки вкладки с отметками
type Source struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	tab           string
	logger        *zap.Logger
}

func NewSource(svc *sheetsapi.Service, spreadsheetID, tab string, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{svc: svc, spreadsheetID: spreadsheetID, tab: tab, logger: logger}
}

// Fetch возвращает все строки вкладки в исходном порядке.
// Первая строка таблицы считается заголовком.
func (s *Source) Fetch(ctx context.Context) ([]attendance.RawRecord, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.tab).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s/%s: %v", attendance.ErrSourceUnavailable, s.spreadsheetID, s.tab, err)
	}

	records := toRecords(resp.Values)
	s.logger.Info("attendance rows fetched",
		zap.String("tab", s.tab),
		zap.Int("rows", len(records)),
	)
	return records, nil
}

func toRecords(values [][]interface{}) []attendance.RawRecord {
	if len(values) == 0 {
		return nil
	}

	header := make([]string, len(values[0]))
	for i, v := range values[0] {
		header[i] = strings.TrimSpace(cellString(v))
	}

	records := make([]attendance.RawRecord, 0, len(values)-1)
	for _, row := range values[1:] {
		rec := make(attendance.RawRecord, len(header))
		blank := true
		for i, h := range header {
			if h == "" {
				continue
			}
			var v string
			if i < len(row) {
				v = cellString(row[i])
			}
			if strings.TrimSpace(v) != "" {
				blank = false
			}
			rec[h] = v
		}
		if blank {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
