package chatroom

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"campuschat/db"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	database, err := db.InitSQLite(filepath.Join(t.TempDir(), "chat_test.sqlite"))
	if err != nil {
		t.Fatalf("init sqlite: %v", err)
	}

	prev := db.ChatDB
	db.ChatDB = database
	if err := db.EnsureSchema(); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
		db.ChatDB = prev
	})
}

func insertTestUser(t *testing.T, id int, name, faculty string) {
	t.Helper()
	_, err := db.ChatDB.Exec(`
		INSERT INTO users (id, full_name, email, phone, password, faculty, degree, course)
		VALUES (?, ?, ?, ?, 'x', ?, 'bachelor', 1)`,
		id, name, fmt.Sprintf("user%d@bsu.edu.az", id), fmt.Sprintf("+99450000%04d", id), faculty,
	)
	if err != nil {
		t.Fatalf("insert test user: %v", err)
	}
}

func insertMessageAt(t *testing.T, userID int, destination, text, msgType string, createdAt time.Time) {
	t.Helper()
	_, err := db.ChatDB.Exec(`
		INSERT INTO messages (user_id, room_or_recipient, message, type, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, destination, text, msgType, createdAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	)
	if err != nil {
		t.Fatalf("insert test message: %v", err)
	}
}

func countMessages(t *testing.T, msgType string) int {
	t.Helper()
	var count int
	err := db.ChatDB.QueryRow(`SELECT COUNT(*) FROM messages WHERE type = ?`, msgType).Scan(&count)
	if err != nil {
		t.Fatalf("count messages: %v", err)
	}
	return count
}
