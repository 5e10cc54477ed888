package attendance

import (
	"errors"
	"fmt"
	"strings"

	"attendancenotifier/utils"

	"go.uber.org/zap"
)

// EmployeeLookup - справочник сотрудников.
// Если сотрудника нет, возвращается ErrEmployeeNotFound.
type EmployeeLookup interface {
	EmployeeByCode(code string) (Employee, error)
}

type Classifier struct {
	lookup EmployeeLookup
	logger *zap.Logger
}

func NewClassifier(lookup EmployeeLookup, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{lookup: lookup, logger: logger}
}

// Classify отбирает записи за targetDate и вычисляет статусы прихода и ухода.
// Записи с некорректным временем пропускаются и попадают в Result.Skipped.
// Ошибка возвращается только при сбое справочника.
func (c *Classifier) Classify(records []RawRecord, targetDate string) (Result, error) {
	var result Result

	for i, row := range records {
		if strings.TrimSpace(row.Get(ColumnActivityDate)) != targetDate {
			continue
		}

		classified, err := c.classifyRow(row, targetDate)
		switch {
		case err == nil:
			result.Records = append(result.Records, classified)
		case errors.Is(err, ErrMalformedTime):
			c.logger.Warn("skipping attendance row",
				zap.Int("row", i),
				zap.String("employee_code", row.Get(ColumnEmployeeCode)),
				zap.Error(err),
			)
			result.Skipped = append(result.Skipped, SkippedRecord{Index: i, Record: row, Reason: err})
		default:
			return Result{}, err
		}
	}

	c.logger.Info("attendance classified",
		zap.String("target_date", targetDate),
		zap.Int("input", len(records)),
		zap.Int("classified", len(result.Records)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

func (c *Classifier) classifyRow(row RawRecord, targetDate string) (ClassifiedAttendance, error) {
	rawIn := row.Get(ColumnCheckInTime)
	rawOut := row.Get(ColumnCheckOutTime)

	checkIn, err := utils.ParseClock(rawIn)
	if err != nil {
		return ClassifiedAttendance{}, fmt.Errorf("%w: %s %q", ErrMalformedTime, ColumnCheckInTime, rawIn)
	}
	checkOut, err := utils.ParseClock(rawOut)
	if err != nil {
		return ClassifiedAttendance{}, fmt.Errorf("%w: %s %q", ErrMalformedTime, ColumnCheckOutTime, rawOut)
	}

	code := strings.TrimSpace(row.Get(ColumnEmployeeCode))
	emp, err := c.lookup.EmployeeByCode(code)
	switch {
	case err == nil:
	case errors.Is(err, ErrEmployeeNotFound):
		emp = Employee{PunchCode: code, Name: UnknownValue, Shift: UnknownValue}
	default:
		return ClassifiedAttendance{}, fmt.Errorf("lookup employee %q: %w", code, err)
	}

	inStatus, outStatus := Statuses(checkIn, checkOut)

	return ClassifiedAttendance{
		EmployeeCode:   code,
		Name:           emp.Name,
		Shift:          emp.Shift,
		Email:          strings.TrimSpace(emp.Email),
		Date:           targetDate,
		CheckIn:        rawIn,
		CheckOut:       rawOut,
		CheckInStatus:  inStatus,
		CheckOutStatus: outStatus,
	}, nil
}
