package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ResetPassword ставит временный пароль; userType не дает сбросить пароль чужой роли
func (r *UserRepository) ResetPassword(ctx context.Context, userID int, userType, hash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password = $1, temp_password = TRUE
		WHERE id = $2 AND user_type = $3
	`, hash, userID, userType)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return expectAffected(res)
}
