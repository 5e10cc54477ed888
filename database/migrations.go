package database

import "database/sql"

func InitDB(db *sql.DB) error {
	// Справочник сотрудников, заполняется заново при каждом запуске
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS employees (
			punch_code TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			shift TEXT NOT NULL,
			email TEXT,
			loaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	// Индекс для поиска по email (дубликаты адресов в справочнике)
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_employees_email
		ON employees (email)
	`)
	return err
}
