package store

import (
	"database/sql"
	"fmt"
	"time"

	"campuschat/db"
	"campuschat/types"
)

// timeLayout is RFC3339 with fixed-width milliseconds so stored timestamps
// order lexicographically.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// CreateMessage persists a message and returns its id together with the
// server-assigned timestamp.
func CreateMessage(userID int, destination, text, msgType string) (int64, time.Time, error) {
	timestamp := time.Now().UTC()
	res, err := db.ChatDB.Exec(
		`INSERT INTO messages (user_id, room_or_recipient, message, type, created_at) VALUES (?, ?, ?, ?, ?)`,
		userID, destination, text, msgType, timestamp.Format(timeLayout),
	)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("message id: %w", err)
	}
	return id, timestamp, nil
}

func MessageByID(id int) (types.Message, error) {
	var msg types.Message
	err := db.ChatDB.QueryRow(
		`SELECT id, user_id, room_or_recipient, message, type, created_at FROM messages WHERE id = ?`, id,
	).Scan(&msg.ID, &msg.UserID, &msg.Destination, &msg.Text, &msg.Type, &msg.CreatedAt)
	if err == sql.ErrNoRows {
		return msg, ErrNotFound
	}
	if err != nil {
		return msg, fmt.Errorf("select message: %w", err)
	}
	return msg, nil
}

// GroupMessages returns the most recent limit messages of a room, oldest
// first, with the author's current display attributes joined in.
func GroupMessages(room string, limit int) ([]types.HistoryMessage, error) {
	rows, err := db.ChatDB.Query(`
		SELECT m.id, m.user_id, m.room_or_recipient, m.message, m.type, m.created_at,
		       u.full_name, COALESCE(u.avatar, ''), u.faculty, u.degree, u.course
		FROM messages m
		JOIN users u ON m.user_id = u.id
		WHERE m.room_or_recipient = ? AND m.type = 'group'
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT ?`, room, limit)
	if err != nil {
		return nil, fmt.Errorf("select group messages: %w", err)
	}
	defer rows.Close()

	messages, err := scanHistoryMessages(rows)
	if err != nil {
		return nil, err
	}
	reverseMessages(messages)
	return messages, nil
}

// PrivateMessages returns the most recent limit private messages between
// two users, spanning both directions, oldest first.
func PrivateMessages(userA, userB, limit int) ([]types.HistoryMessage, error) {
	rows, err := db.ChatDB.Query(`
		SELECT m.id, m.user_id, m.room_or_recipient, m.message, m.type, m.created_at,
		       u.full_name, COALESCE(u.avatar, ''), u.faculty, u.degree, u.course
		FROM messages m
		JOIN users u ON m.user_id = u.id
		WHERE m.type = 'private' AND (
			(m.user_id = ? AND m.room_or_recipient = ?) OR
			(m.user_id = ? AND m.room_or_recipient = ?)
		)
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT ?`, userA, fmt.Sprint(userB), userB, fmt.Sprint(userA), limit)
	if err != nil {
		return nil, fmt.Errorf("select private messages: %w", err)
	}
	defer rows.Close()

	messages, err := scanHistoryMessages(rows)
	if err != nil {
		return nil, err
	}
	reverseMessages(messages)
	return messages, nil
}

// DeleteMessagesOlderThan removes stored messages of one class older than
// the given number of hours and reports how many rows went away.
func DeleteMessagesOlderThan(msgType string, hours int) (int64, error) {
	res, err := db.ChatDB.Exec(`
		DELETE FROM messages
		WHERE type = ? AND datetime(created_at) < datetime('now', '-' || ? || ' hours')`,
		msgType, hours)
	if err != nil {
		return 0, fmt.Errorf("delete old messages: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete old messages count: %w", err)
	}
	return deleted, nil
}

func scanHistoryMessages(rows *sql.Rows) ([]types.HistoryMessage, error) {
	var messages []types.HistoryMessage
	for rows.Next() {
		var msg types.HistoryMessage
		err := rows.Scan(
			&msg.ID, &msg.UserID, &msg.Destination, &msg.Text, &msg.Type, &msg.CreatedAt,
			&msg.FullName, &msg.Avatar, &msg.Faculty, &msg.Degree, &msg.Course,
		)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("message rows: %w", err)
	}
	return messages, nil
}

func reverseMessages(messages []types.HistoryMessage) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
