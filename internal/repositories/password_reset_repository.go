package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"tasktracker/internal/models"
)

type PasswordResetRepository interface {
	Create(userID int64, token string, expiresAt time.Time) (int64, error)
	GetByToken(token string) (*models.PasswordReset, error)
	MarkUsed(id int64) error
}

type passwordResetRepository struct {
	db *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(userID int64, token string, expiresAt time.Time) (int64, error) {
	const q = `
		INSERT INTO password_resets (user_id, token, expires_at, created_at)
		VALUES ($1,$2,$3,NOW())
		RETURNING id`
	var id int64
	if err := r.db.QueryRow(q, userID, token, expiresAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("create password reset: %w", err)
	}
	return id, nil
}

func (r *passwordResetRepository) GetByToken(token string) (*models.PasswordReset, error) {
	const q = `
		SELECT id, user_id, token, expires_at, used_at, created_at
		FROM password_resets WHERE token=$1`
	var pr models.PasswordReset
	err := r.db.QueryRow(q, token).Scan(
		&pr.ID, &pr.UserID, &pr.Token, &pr.ExpiresAt, &pr.UsedAt, &pr.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get password reset: %w", err)
	}
	return &pr, nil
}

func (r *passwordResetRepository) MarkUsed(id int64) error {
	if _, err := r.db.Exec(`UPDATE password_resets SET used_at=NOW() WHERE id=$1`, id); err != nil {
		return fmt.Errorf("mark password reset used: %w", err)
	}
	return nil
}
