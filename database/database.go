package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"attendancenotifier/attendance"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

func NewDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// У каждого соединения с :memory: своя база, поэтому держим одно соединение
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := InitDB(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// ReplaceEmployees полностью заменяет содержимое справочника.
// При повторяющемся Punch Code побеждает первая запись.
func (db *DB) ReplaceEmployees(employees []attendance.Employee) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM employees"); err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(
		"INSERT OR IGNORE INTO employees (punch_code, name, shift, email) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, e := range employees {
		code := strings.TrimSpace(e.PunchCode)
		if code == "" {
			continue
		}
		res, err := stmt.Exec(code, e.Name, e.Shift, nullString(e.Email))
		if err != nil {
			return 0, fmt.Errorf("insert employee %q: %w", code, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// EmployeeByCode реализует attendance.EmployeeLookup
func (db *DB) EmployeeByCode(code string) (attendance.Employee, error) {
	var (
		e     attendance.Employee
		email sql.NullString
	)
	err := db.QueryRow(
		"SELECT punch_code, name, shift, email FROM employees WHERE punch_code = ?",
		strings.TrimSpace(code),
	).Scan(&e.PunchCode, &e.Name, &e.Shift, &email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return attendance.Employee{}, attendance.ErrEmployeeNotFound
	case err != nil:
		return attendance.Employee{}, err
	}
	e.Email = email.String
	return e, nil
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
