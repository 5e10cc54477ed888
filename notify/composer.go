package notify

import (
	"fmt"

	"attendancenotifier/attendance"
)

// EmailPayload - готовое письмо одному сотруднику
type EmailPayload struct {
	To      string
	Subject string
	Body    string
}

const bodyTemplate = `Dear %s,

Here is your attendance summary for %s:

• Check-in Time: %s
• Check-in Status: %s
• Check-out Time: %s
• Check-out Status: %s

Shift: %s

If you find any discrepancy, please contact HR.

Regards,
HR Department
`

// Subject возвращает тему письма за указанную дату
func Subject(date string) string {
	return fmt.Sprintf("Attendance Summary – %s", date)
}

// Body формирует текст письма для одной записи
func Body(r attendance.ClassifiedAttendance) string {
	return fmt.Sprintf(bodyTemplate,
		r.Name,
		r.Date,
		r.CheckIn,
		r.CheckInStatus,
		r.CheckOut,
		r.CheckOutStatus,
		r.Shift,
	)
}

// Compose строит письма для всех записей с адресом, сохраняя порядок.
// Записи без email молча пропускаются.
func Compose(records []attendance.ClassifiedAttendance) []EmailPayload {
	payloads := make([]EmailPayload, 0, len(records))
	for _, r := range records {
		if !r.HasEmail() {
			continue
		}
		payloads = append(payloads, EmailPayload{
			To:      r.Email,
			Subject: Subject(r.Date),
			Body:    Body(r),
		})
	}
	return payloads
}
