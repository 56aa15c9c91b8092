package store

import (
	"fmt"

	"campuschat/db"
	"campuschat/types"
)

// BlockUser inserts the directed block edge. Blocking the same pair twice
// is a no-op.
func BlockUser(blockerID, blockedID int) error {
	_, err := db.ChatDB.Exec(
		`INSERT OR IGNORE INTO blocked_users (blocker_id, blocked_id) VALUES (?, ?)`,
		blockerID, blockedID,
	)
	if err != nil {
		return fmt.Errorf("insert block: %w", err)
	}
	return nil
}

// UnblockUser deletes the directed block edge; removing an edge that does
// not exist is a no-op.
func UnblockUser(blockerID, blockedID int) error {
	_, err := db.ChatDB.Exec(
		`DELETE FROM blocked_users WHERE blocker_id = ? AND blocked_id = ?`,
		blockerID, blockedID,
	)
	if err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	return nil
}

func IsBlocked(blockerID, blockedID int) (bool, error) {
	var count int
	err := db.ChatDB.QueryRow(
		`SELECT COUNT(*) FROM blocked_users WHERE blocker_id = ? AND blocked_id = ?`,
		blockerID, blockedID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("select block: %w", err)
	}
	return count > 0, nil
}

func BlockedUsers(userID int) ([]types.BlockedUser, error) {
	rows, err := db.ChatDB.Query(`
		SELECT u.id, u.full_name, COALESCE(u.avatar, '')
		FROM blocked_users b
		JOIN users u ON b.blocked_id = u.id
		WHERE b.blocker_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("select blocked users: %w", err)
	}
	defer rows.Close()

	var blocked []types.BlockedUser
	for rows.Next() {
		var user types.BlockedUser
		if err := rows.Scan(&user.ID, &user.FullName, &user.Avatar); err != nil {
			return nil, fmt.Errorf("scan blocked user: %w", err)
		}
		blocked = append(blocked, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("blocked user rows: %w", err)
	}
	return blocked, nil
}

// BlockedIDs returns just the ids a viewer blocks, for read-time filtering
// of message lists.
func BlockedIDs(userID int) (map[int]bool, error) {
	rows, err := db.ChatDB.Query(
		`SELECT blocked_id FROM blocked_users WHERE blocker_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("select blocked ids: %w", err)
	}
	defer rows.Close()

	blocked := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan blocked id: %w", err)
		}
		blocked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("blocked id rows: %w", err)
	}
	return blocked, nil
}
