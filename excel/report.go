package excel

import (
	"fmt"
	"os"
	"path/filepath"

	"attendancenotifier/attendance"

	"github.com/tealeg/xlsx"
)

const reportSheetName = "Attendance"

var reportHeaders = []string{
	"Date", "Employee Code", "Name", "Shift", "Email",
	"Check-in Time", "Check-in Status", "Check-out Time", "Check-out Status",
}

// ExportReport сохраняет классифицированные записи в .xlsx в каталоге dir
// и возвращает путь к файлу
func ExportReport(records []attendance.ClassifiedAttendance, dir, date string) (string, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(reportSheetName)
	if err != nil {
		return "", err
	}

	// Заголовки
	headerRow := sheet.AddRow()
	for _, header := range reportHeaders {
		headerRow.AddCell().Value = header
	}

	// Данные
	for _, r := range records {
		row := sheet.AddRow()
		for _, v := range []string{
			r.Date, r.EmployeeCode, r.Name, r.Shift, r.Email,
			r.CheckIn, string(r.CheckInStatus), r.CheckOut, string(r.CheckOutStatus),
		} {
			row.AddCell().Value = v
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", date)
	path := filepath.Join(dir, filename)

	if err := file.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

// Reporter сохраняет отчёт каждого запуска в каталог Dir
type Reporter struct {
	Dir string
}

func (r Reporter) Export(records []attendance.ClassifiedAttendance, date string) (string, error) {
	return ExportReport(records, r.Dir, date)
}
