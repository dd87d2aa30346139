package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"tasktracker/internal/apperrors"
	"tasktracker/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int64) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePassword(id int64, passwordHash string) error
	Delete(id int64) error
	List(limit, offset int) ([]*models.User, error)
	ExistsByID(id int64) (bool, error)

	// refresh helpers
	UpdateRefresh(userID int64, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	ClearRefresh(userID int64) error
	GetByRefreshToken(token string) (*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, role,
	refresh_token, refresh_expires_at, refresh_revoked`

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.RefreshToken, &u.RefreshExpiresAt, &u.RefreshRevoked,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1,$2,$3,$4)
		RETURNING id`
	err := r.db.QueryRow(q, user.Username, user.Email, user.PasswordHash, user.Role).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username or email already taken: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int64) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE username=$1`, username))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE LOWER(email)=LOWER($1)`, email))
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users SET username=$1, email=$2, role=$3
		WHERE id=$4`
	_, err := r.db.Exec(q, user.Username, user.Email, user.Role, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username or email already taken: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *userRepository) UpdatePassword(id int64, passwordHash string) error {
	if _, err := r.db.Exec(`UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, id); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *userRepository) Delete(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM users WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	rows, err := r.db.Query(
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
			&u.RefreshToken, &u.RefreshExpiresAt, &u.RefreshRevoked,
		); err != nil {
			return nil, err
		}
		res = append(res, &u)
	}
	return res, rows.Err()
}

func (r *userRepository) ExistsByID(id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return exists, nil
}

func (r *userRepository) UpdateRefresh(userID int64, token string, expiresAt time.Time) error {
	const q = `
		UPDATE users
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE id=$3`
	if _, err := r.db.Exec(q, token, expiresAt, userID); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// RotateRefresh swaps the stored token atomically so a stolen old token
// cannot race the rotation.
func (r *userRepository) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	const q = `
		UPDATE users
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE refresh_token=$3 AND NOT refresh_revoked
		RETURNING ` + userColumns
	return r.scanUser(r.db.QueryRow(q, newToken, newExpiresAt, oldToken))
}

func (r *userRepository) ClearRefresh(userID int64) error {
	const q = `
		UPDATE users
		SET refresh_token=NULL, refresh_expires_at=NULL, refresh_revoked=FALSE
		WHERE id=$1`
	if _, err := r.db.Exec(q, userID); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

func (r *userRepository) GetByRefreshToken(token string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE refresh_token=$1`, token))
}
