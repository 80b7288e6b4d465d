package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gameadmin/internal/entity"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// AdminUpdate пустые поля не попадают в UPDATE
type AdminUpdate struct {
	Username     string
	Email        string
	FullName     string
	PasswordHash string
}

func (u AdminUpdate) IsEmpty() bool {
	return u.Username == "" && u.Email == "" && u.FullName == "" && u.PasswordHash == ""
}

const adminColumns = `id, username, email, full_name, password`

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (entity.Admin, error) {
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM admin WHERE username = $1`, username)
}

func (r *AdminRepository) GetByID(ctx context.Context, id int) (entity.Admin, error) {
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM admin WHERE id = $1`, id)
}

func (r *AdminRepository) getOne(ctx context.Context, query string, arg any) (entity.Admin, error) {
	var a entity.Admin
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&a.ID, &a.Username, &a.Email, &a.FullName, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return a, entity.ErrNotFound
	}
	if err != nil {
		return a, fmt.Errorf("get admin: %w", err)
	}
	return a, nil
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id int, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE admin SET password = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	return expectAffected(res)
}

// UsernameTaken проверяет, занят ли логин другим администратором
func (r *AdminRepository) UsernameTaken(ctx context.Context, username string, excludeID int) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM admin WHERE username = $1 AND id <> $2)`, username, excludeID)
}

func (r *AdminRepository) EmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM admin WHERE lower(email) = lower($1) AND id <> $2)`, email, excludeID)
}

func (r *AdminRepository) exists(ctx context.Context, query string, value string, excludeID int) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, value, excludeID).Scan(&found); err != nil {
		return false, fmt.Errorf("admin uniqueness check: %w", err)
	}
	return found, nil
}

// Update собирает SET только из заполненных полей.
func (r *AdminRepository) Update(ctx context.Context, id int, upd AdminUpdate) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("username", upd.Username)
	add("email", upd.Email)
	add("full_name", upd.FullName)
	add("password", upd.PasswordHash)

	if len(sets) == 0 {
		return ErrNoChanges
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE admin SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}
