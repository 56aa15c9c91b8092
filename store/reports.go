package store

import (
	"database/sql"
	"fmt"

	"campuschat/db"
	"campuschat/types"
)

// RecordReport stores a report against a message and increments the report
// counter of the message's author. The report row and the counter upsert
// commit together; a report against an unknown message id fails with
// ErrNotFound and leaves nothing behind.
func RecordReport(messageID, reporterID int, reason string) error {
	tx, err := db.ChatDB.Begin()
	if err != nil {
		return fmt.Errorf("begin report tx: %w", err)
	}
	defer tx.Rollback()

	var authorID int
	err = tx.QueryRow(`SELECT user_id FROM messages WHERE id = ?`, messageID).Scan(&authorID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select reported message: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO reports (message_id, reported_by, reason) VALUES (?, ?, ?)`,
		messageID, reporterID, reason,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO report_counts (user_id, report_count)
		VALUES (?, 1)
		ON CONFLICT(user_id) DO UPDATE SET report_count = report_count + 1`,
		authorID)
	if err != nil {
		return fmt.Errorf("upsert report count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report tx: %w", err)
	}
	return nil
}

func ReportCount(userID int) (int, error) {
	var count int
	err := db.ChatDB.QueryRow(
		`SELECT COALESCE(report_count, 0) FROM report_counts WHERE user_id = ?`, userID,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("select report count: %w", err)
	}
	return count, nil
}

// ReportedUsers lists users whose cumulative report counter has reached the
// moderation threshold, most reported first.
func ReportedUsers() ([]types.ReportedUser, error) {
	rows, err := db.ChatDB.Query(`
		SELECT u.id, u.full_name, u.email, u.phone, u.faculty, u.degree, u.course,
		       COALESCE(u.avatar, ''), u.is_active, u.created_at, rc.report_count
		FROM users u
		JOIN report_counts rc ON u.id = rc.user_id
		WHERE rc.report_count >= ?
		ORDER BY rc.report_count DESC`, ReportFlagThreshold)
	if err != nil {
		return nil, fmt.Errorf("select reported users: %w", err)
	}
	defer rows.Close()

	var reported []types.ReportedUser
	for rows.Next() {
		var user types.ReportedUser
		err := rows.Scan(
			&user.ID, &user.FullName, &user.Email, &user.Phone, &user.Faculty,
			&user.Degree, &user.Course, &user.Avatar, &user.IsActive,
			&user.CreatedAt, &user.ReportCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reported user: %w", err)
		}
		reported = append(reported, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reported user rows: %w", err)
	}
	return reported, nil
}
