package database

import (
	"errors"
	"testing"

	"attendancenotifier/attendance"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(":memory:")
	if err != nil {
		t.Fatalf("NewDB returned error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func countEmployees(t *testing.T, db *DB) int {
	t.Helper()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM employees").Scan(&n); err != nil {
		t.Fatalf("count employees: %v", err)
	}
	return n
}

func TestReplaceEmployees_AndLookup(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)

	n, err := db.ReplaceEmployees([]attendance.Employee{
		{PunchCode: " E001 ", Name: "Alice", Shift: "Day", Email: "alice@example.com"},
		{PunchCode: "E002", Name: "Bob", Shift: "Night"},
		{PunchCode: "E001", Name: "Duplicate", Shift: "Day"},
		{PunchCode: "", Name: "No code"},
	})
	if err != nil {
		t.Fatalf("ReplaceEmployees returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 inserted employees, got %d", n)
	}

	alice, err := db.EmployeeByCode("E001")
	if err != nil {
		t.Fatalf("EmployeeByCode returned error: %v", err)
	}
	if alice.Name != "Alice" || alice.Email != "alice@example.com" {
		t.Fatalf("unexpected employee: %+v", alice)
	}

	bob, err := db.EmployeeByCode(" E002")
	if err != nil {
		t.Fatalf("EmployeeByCode returned error: %v", err)
	}
	if bob.Email != "" {
		t.Fatalf("expected empty email, got %q", bob.Email)
	}

	if _, err := db.EmployeeByCode("E404"); !errors.Is(err, attendance.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestReplaceEmployees_ClearsPreviousLoad(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)

	if _, err := db.ReplaceEmployees([]attendance.Employee{{PunchCode: "OLD", Name: "Old", Shift: "Day"}}); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if _, err := db.ReplaceEmployees([]attendance.Employee{{PunchCode: "NEW", Name: "New", Shift: "Day"}}); err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	if count := countEmployees(t, db); count != 1 {
		t.Fatalf("expected 1 employee after reload, got %d", count)
	}
	if _, err := db.EmployeeByCode("OLD"); !errors.Is(err, attendance.ErrEmployeeNotFound) {
		t.Fatalf("expected old employee to be gone, got %v", err)
	}
}

func TestDB_ImplementsLookup(t *testing.T) {
	t.Parallel()

	var _ attendance.EmployeeLookup = newTestDB(t)
}
