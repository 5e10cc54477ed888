package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"attendancenotifier/attendance"
	"attendancenotifier/utils"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Колонки справочника сотрудников
const (
	ColumnPunchCode = "Punch Code"
	ColumnName      = "Name"
	ColumnShift     = "Shift"
	ColumnEmail     = "Email"
)

var referenceColumns = []string{ColumnPunchCode, ColumnName, ColumnShift, ColumnEmail}

// EmployeeStore - куда складывается загруженный справочник
type EmployeeStore interface {
	ReplaceEmployees(employees []attendance.Employee) (int, error)
}

type ExcelProcessor struct {
	store  EmployeeStore
	logger *zap.Logger
}

func NewExcelProcessor(store EmployeeStore, logger *zap.Logger) *ExcelProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExcelProcessor{store: store, logger: logger}
}

// LoadReference читает справочник из файла и полностью заменяет им хранилище.
// Любая ошибка оборачивается в attendance.ErrReferenceLoad.
func (ep *ExcelProcessor) LoadReference(filePath string) (int, error) {
	employees, err := LoadEmployees(filePath, ep.logger)
	if err != nil {
		return 0, err
	}

	n, err := ep.store.ReplaceEmployees(employees)
	if err != nil {
		return 0, fmt.Errorf("%w: store employees: %v", attendance.ErrReferenceLoad, err)
	}
	return n, nil
}

// LoadEmployees читает справочник из .csv или .xlsx.
// Первая строка - заголовок, порядок колонок не важен.
func LoadEmployees(filePath string, logger *zap.Logger) ([]attendance.Employee, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		rows [][]string
		err  error
	)

	switch {
	case utils.IsExcelFile(filePath):
		rows, err = readExcelRows(filePath)
	case utils.IsCSVFile(filePath):
		rows, err = readCSVRows(filePath)
	default:
		err = fmt.Errorf("unsupported file type %q", utils.GetFileExtension(filePath))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", attendance.ErrReferenceLoad, filePath, err)
	}

	employees, err := parseEmployees(rows, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", attendance.ErrReferenceLoad, filePath, err)
	}
	return employees, nil
}

func readExcelRows(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %v", err)
	}
	defer f.Close()

	// Получаем имя первого листа
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in excel file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}
	return rows, nil
}

func readCSVRows(filePath string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func parseEmployees(rows [][]string, logger *zap.Logger) ([]attendance.Employee, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	index, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	cell := func(row []string, column string) string {
		i := index[column]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var employees []attendance.Employee
	for rowIndex, row := range rows[1:] {
		code := cell(row, ColumnPunchCode)
		// Пропускаем пустые строки
		if code == "" {
			if !isBlank(row) {
				logger.Warn("skipping reference row",
					zap.Int("row", rowIndex+2),
					zap.String("reason", "empty "+ColumnPunchCode),
				)
			}
			continue
		}

		employees = append(employees, attendance.Employee{
			PunchCode: code,
			Name:      cell(row, ColumnName),
			Shift:     cell(row, ColumnShift),
			Email:     cell(row, ColumnEmail),
		})
	}
	return employees, nil
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		for _, col := range referenceColumns {
			if strings.EqualFold(h, col) {
				if _, seen := index[col]; !seen {
					index[col] = i
				}
			}
		}
	}

	var missing []string
	for _, col := range referenceColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
