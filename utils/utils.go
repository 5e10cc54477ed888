package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// ParseClock разбирает время суток строго в виде HH:MM:SS и возвращает смещение от полуночи.
// time.Parse принимает дробные секунды даже без них в раскладке, поэтому длина проверяется отдельно.
func ParseClock(input string) (time.Duration, error) {
	value := strings.TrimSpace(input)
	if len(value) != len(ClockLayout) {
		return 0, fmt.Errorf("неверный формат времени %q, ожидается ЧЧ:ММ:СС", input)
	}
	t, err := time.Parse(ClockLayout, value)
	if err != nil || t.Nanosecond() != 0 {
		return 0, fmt.Errorf("неверный формат времени %q, ожидается ЧЧ:ММ:СС", input)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

func GetFileExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func IsExcelFile(filename string) bool {
	ext := GetFileExtension(filename)
	return ext == ".xlsx" || ext == ".xlsm"
}

func IsCSVFile(filename string) bool {
	return GetFileExtension(filename) == ".csv"
}

// NowIn возвращает текущее время в указанной зоне (nil - локальное время)
func NowIn(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}
