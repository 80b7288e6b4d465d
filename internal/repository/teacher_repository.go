package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"gameadmin/internal/entity"
)

type TeacherRepository struct {
	db *sql.DB
}

func NewTeacherRepository(db *sql.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

const teacherSelect = `
	SELECT u.id, u.username, u.email, u.full_name, u.user_type, u.temp_password, u.created_at, t.is_active
	FROM users u
	JOIN teachers t ON t.user_id = u.id
	WHERE u.user_type = 'teacher'`

func scanTeacher(row interface{ Scan(...any) error }) (entity.Teacher, error) {
	var t entity.Teacher
	err := row.Scan(
		&t.ID,
		&t.Username,
		&t.Email,
		&t.FullName,
		&t.UserType,
		&t.TempPassword,
		&t.CreatedAt,
		&t.IsActive,
	)
	return t, err
}

// List учителя с их секциями; search ищет по логину, почте и ФИО
func (r *TeacherRepository) List(ctx context.Context, search string) ([]entity.Teacher, error) {
	query := teacherSelect
	args := []any{}
	if search != "" {
		query += ` AND (u.username ILIKE $1 OR u.email ILIKE $1 OR u.full_name ILIKE $1)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY u.full_name, u.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	teachers := make([]entity.Teacher, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, t)
		ids = append(ids, int64(t.ID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	if len(ids) == 0 {
		return teachers, nil
	}

	sections, err := r.sectionsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range teachers {
		teachers[i].Sections = sections[teachers[i].ID]
	}

	return teachers, nil
}

func (r *TeacherRepository) GetByID(ctx context.Context, id int) (entity.Teacher, error) {
	t, err := scanTeacher(r.db.QueryRowContext(ctx, teacherSelect+` AND u.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return t, entity.ErrNotFound
	}
	if err != nil {
		return t, fmt.Errorf("get teacher: %w", err)
	}

	sections, err := r.sectionsFor(ctx, []int64{int64(id)})
	if err != nil {
		return t, err
	}
	t.Sections = sections[id]

	return t, nil
}

func (r *TeacherRepository) sectionsFor(ctx context.Context, teacherIDs []int64) (map[int][]entity.TeacherSection, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, teacher_id, section, created_at
		FROM teacher_sections
		WHERE teacher_id = ANY($1)
		ORDER BY section
	`, pq.Array(teacherIDs))
	if err != nil {
		return nil, fmt.Errorf("list teacher sections: %w", err)
	}
	defer rows.Close()

	sections := make(map[int][]entity.TeacherSection)
	for rows.Next() {
		var s entity.TeacherSection
		if err := rows.Scan(&s.ID, &s.TeacherID, &s.Section, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan teacher section: %w", err)
		}
		sections[s.TeacherID] = append(sections[s.TeacherID], s)
	}

	return sections, rows.Err()
}

func (r *TeacherRepository) SetActive(ctx context.Context, id int, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE teachers SET is_active = $1 WHERE user_id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("set teacher active: %w", err)
	}
	return expectAffected(res)
}

// Delete удаляет секции, учителя и его учетную запись одной транзакцией.
func (r *TeacherRepository) Delete(ctx context.Context, id int) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM teacher_sections WHERE teacher_id = $1`, id); err != nil {
		return fmt.Errorf("delete teacher sections: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM teachers WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	if err = expectAffected(res); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1 AND user_type = 'teacher'`, id); err != nil {
		return fmt.Errorf("delete teacher user: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *TeacherRepository) AssignSection(ctx context.Context, teacherID int, section string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO teacher_sections (teacher_id, section)
		VALUES ($1, $2)
	`, teacherID, section)

	switch pgCode(err) {
	case "":
	case pgUniqueViolation:
		return ErrDuplicateSection
	case pgForeignKeyViolation:
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("assign section: %w", err)
	}
	return nil
}

// RemoveSection удаляет привязку; teacherID защищает от удаления чужой секции
func (r *TeacherRepository) RemoveSection(ctx context.Context, teacherID, sectionID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teacher_sections WHERE id = $1 AND teacher_id = $2`, sectionID, teacherID)
	if err != nil {
		return fmt.Errorf("remove section: %w", err)
	}
	return expectAffected(res)
}
