package store

import (
	"database/sql"
	"fmt"

	"campuschat/db"
	"campuschat/types"
)

func CreateUser(user types.UserData) (int64, error) {
	res, err := db.ChatDB.Exec(`
		INSERT INTO users (full_name, email, phone, password, faculty, degree, course)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.FullName, user.Email, user.Phone, user.Password,
		user.Faculty, user.Degree, user.Course,
	)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user id: %w", err)
	}
	return id, nil
}

func UserByEmail(email string) (types.UserData, error) {
	return scanUser(db.ChatDB.QueryRow(userSelect+` WHERE email = ?`, email))
}

func UserByPhone(phone string) (types.UserData, error) {
	return scanUser(db.ChatDB.QueryRow(userSelect+` WHERE phone = ?`, phone))
}

func UserByID(id int) (types.UserData, error) {
	return scanUser(db.ChatDB.QueryRow(userSelect+` WHERE id = ?`, id))
}

func UpdateUserAvatar(userID int, avatarPath string) error {
	_, err := db.ChatDB.Exec(`UPDATE users SET avatar = ? WHERE id = ?`, avatarPath, userID)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	return nil
}

func UpdateUserStatus(userID int, isActive bool) error {
	active := 0
	if isActive {
		active = 1
	}
	_, err := db.ChatDB.Exec(`UPDATE users SET is_active = ? WHERE id = ?`, active, userID)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	return nil
}

func UpdateUserProfile(userID int, fullName, faculty, degree string, course int) error {
	_, err := db.ChatDB.Exec(`
		UPDATE users SET full_name = ?, faculty = ?, degree = ?, course = ?
		WHERE id = ?`, fullName, faculty, degree, course, userID)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	return nil
}

func AllUsers() ([]types.UserData, error) {
	rows, err := db.ChatDB.Query(userSelect)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var users []types.UserData
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user rows: %w", err)
	}
	return users, nil
}

const userSelect = `
	SELECT id, full_name, email, phone, password, faculty, degree, course,
	       COALESCE(avatar, ''), is_active, created_at
	FROM users`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (types.UserData, error) {
	user, err := scanUserRow(row)
	if err == sql.ErrNoRows {
		return user, ErrNotFound
	}
	return user, err
}

func scanUserRow(row rowScanner) (types.UserData, error) {
	var user types.UserData
	err := row.Scan(
		&user.ID, &user.FullName, &user.Email, &user.Phone, &user.Password,
		&user.Faculty, &user.Degree, &user.Course, &user.Avatar,
		&user.IsActive, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return user, err
	}
	if err != nil {
		return user, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}
