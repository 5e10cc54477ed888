package attendance

// Колонки исходной таблицы посещаемости
const (
	ColumnEmployeeCode = "EmployeeCode"
	ColumnActivityDate = "ActivityDate"
	ColumnCheckInTime  = "CheckInTime"
	ColumnCheckOutTime = "CheckOutTime"
)

// RawRecord - строка таблицы как есть: имя колонки -> значение ячейки
type RawRecord map[string]string

func (r RawRecord) Get(column string) string {
	return r[column]
}

// Employee - запись справочника сотрудников (ключ - Punch Code)
type Employee struct {
	PunchCode string
	Name      string
	Shift     string
	Email     string
}

type Status string

const (
	StatusOnTime    Status = "On Time"
	StatusComeLate  Status = "Come Late"
	StatusLeftEarly Status = "Left Early"
	StatusMissing   Status = "Missing"
)

const UnknownValue = "Unknown"

type ClassifiedAttendance struct {
	EmployeeCode   string
	Name           string
	Shift          string
	Email          string // пусто, если сотрудник не найден в справочнике
	Date           string
	CheckIn        string
	CheckOut       string
	CheckInStatus  Status
	CheckOutStatus Status
}

// HasEmail сообщает, можно ли отправить сотруднику уведомление
func (c ClassifiedAttendance) HasEmail() bool {
	return c.Email != ""
}

// SkippedRecord - строка, которую не удалось классифицировать
type SkippedRecord struct {
	Index  int
	Record RawRecord
	Reason error
}

type Result struct {
	Records []ClassifiedAttendance
	Skipped []SkippedRecord
}
