package db

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			full_name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			phone TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			faculty TEXT NOT NULL,
			degree TEXT NOT NULL,
			course INTEGER NOT NULL,
			avatar TEXT DEFAULT NULL,
			is_active INTEGER DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			room_or_recipient TEXT NOT NULL,
			message TEXT NOT NULL,
			type TEXT NOT NULL CHECK(type IN ('group', 'private')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS blocked_users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			blocker_id INTEGER NOT NULL,
			blocked_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (blocker_id) REFERENCES users(id),
			FOREIGN KEY (blocked_id) REFERENCES users(id),
			UNIQUE(blocker_id, blocked_id)
		)`,
		`CREATE TABLE IF NOT EXISTS reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			message_id INTEGER NOT NULL,
			reported_by INTEGER NOT NULL,
			reason TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (message_id) REFERENCES messages(id),
			FOREIGN KEY (reported_by) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS report_counts (
			user_id INTEGER PRIMARY KEY,
			report_count INTEGER DEFAULT 0,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			is_super_admin INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY DEFAULT 1,
			rules TEXT DEFAULT '',
			daily_topic TEXT DEFAULT '',
			filter_words TEXT DEFAULT '[]',
			auto_delete_group_messages INTEGER DEFAULT 0,
			auto_delete_private_messages INTEGER DEFAULT 0,
			CHECK (id = 1)
		)`,
		`INSERT OR IGNORE INTO settings (id) VALUES (1)`,
	}

	for _, stmt := range statements {
		if _, err := ChatDB.Exec(stmt); err != nil {
			return fmt.Errorf("schema exec failed: %w", err)
		}
	}
	return nil
}

// SeedSuperAdmin inserts the bootstrap super admin if no admin with that
// username exists yet.
func SeedSuperAdmin(username, password string) error {
	var existing int
	err := ChatDB.QueryRow(`SELECT COUNT(*) FROM admins WHERE username = ?`, username).Scan(&existing)
	if err != nil {
		return fmt.Errorf("super admin lookup failed: %w", err)
	}
	if existing > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("super admin password hash failed: %w", err)
	}
	_, err = ChatDB.Exec(
		`INSERT INTO admins (username, password, is_super_admin) VALUES (?, ?, 1)`,
		username, string(hashedPassword),
	)
	if err != nil {
		return fmt.Errorf("super admin insert failed: %w", err)
	}
	return nil
}
