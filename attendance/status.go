package attendance

import (
	"time"

	"attendancenotifier/utils"
)

const (
	ShiftStart = 10 * time.Hour
	ShiftEnd   = 18 * time.Hour

	lateGrace       = 30 * time.Minute
	earlyLeaveGrace = 5 * time.Minute
	// отметка ухода раньше этого времени считается отсутствующей
	missingCheckOutBefore = 13 * time.Hour
)

// CheckInStatus оценивает время прихода относительно начала смены
func CheckInStatus(checkIn time.Duration) Status {
	if checkIn <= ShiftStart+lateGrace {
		return StatusOnTime
	}
	return StatusComeLate
}

// CheckOutStatus оценивает время ухода относительно конца смены
func CheckOutStatus(checkOut time.Duration) Status {
	switch {
	case checkOut < missingCheckOutBefore:
		return StatusMissing
	case checkOut < ShiftEnd-earlyLeaveGrace:
		return StatusLeftEarly
	default:
		return StatusOnTime
	}
}

// Statuses возвращает пару статусов для одной записи.
// Совпадающие приход и уход - это одна отметка, а не две.
func Statuses(checkIn, checkOut time.Duration) (Status, Status) {
	if checkIn == checkOut {
		return StatusMissing, StatusMissing
	}
	return CheckInStatus(checkIn), CheckOutStatus(checkOut)
}

// TargetDate - вчерашняя дата относительно now в формате YYYY-MM-DD
func TargetDate(now time.Time) string {
	return now.AddDate(0, 0, -1).Format(utils.DateLayout)
}
