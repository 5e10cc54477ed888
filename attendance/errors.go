package attendance

import "errors"

var (
	ErrSourceUnavailable = errors.New("attendance: record source unavailable")
	ErrReferenceLoad     = errors.New("attendance: employee reference load failed")
	ErrMalformedTime     = errors.New("attendance: malformed time value")
	ErrMailSession       = errors.New("attendance: mail session failed")
	ErrMailSend          = errors.New("attendance: mail send failed")
	ErrEmployeeNotFound  = errors.New("attendance: employee not found")
)
