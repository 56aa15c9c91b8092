package store

import (
	"database/sql"
	"fmt"

	"campuschat/db"
	"campuschat/types"
)

func CreateAdmin(username, hashedPassword string) (int64, error) {
	res, err := db.ChatDB.Exec(
		`INSERT INTO admins (username, password, is_super_admin) VALUES (?, ?, 0)`,
		username, hashedPassword,
	)
	if err != nil {
		return 0, fmt.Errorf("insert admin: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("admin id: %w", err)
	}
	return id, nil
}

func AdminByUsername(username string) (types.Admin, error) {
	var admin types.Admin
	err := db.ChatDB.QueryRow(
		`SELECT id, username, password, is_super_admin, created_at FROM admins WHERE username = ?`,
		username,
	).Scan(&admin.ID, &admin.Username, &admin.Password, &admin.IsSuperAdmin, &admin.CreatedAt)
	if err == sql.ErrNoRows {
		return admin, ErrNotFound
	}
	if err != nil {
		return admin, fmt.Errorf("select admin: %w", err)
	}
	return admin, nil
}

func AllAdmins() ([]types.Admin, error) {
	rows, err := db.ChatDB.Query(
		`SELECT id, username, is_super_admin, created_at FROM admins`)
	if err != nil {
		return nil, fmt.Errorf("select admins: %w", err)
	}
	defer rows.Close()

	var admins []types.Admin
	for rows.Next() {
		var admin types.Admin
		if err := rows.Scan(&admin.ID, &admin.Username, &admin.IsSuperAdmin, &admin.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		admins = append(admins, admin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("admin rows: %w", err)
	}
	return admins, nil
}

// DeleteAdmin removes a regular admin. Super admins cannot be deleted.
func DeleteAdmin(adminID int) error {
	_, err := db.ChatDB.Exec(
		`DELETE FROM admins WHERE id = ? AND is_super_admin = 0`, adminID)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	return nil
}
