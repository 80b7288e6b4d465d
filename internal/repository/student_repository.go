package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gameadmin/internal/entity"
)

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

type StudentFilter struct {
	Search    string
	Section   string
	YearLevel string
}

// List ученики вместе с игровым прогрессом (если он есть)
func (r *StudentRepository) List(ctx context.Context, f StudentFilter) ([]entity.Student, error) {
	where := []string{`u.user_type = 'student'`}
	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(`(u.username ILIKE $%d OR u.email ILIKE $%d OR u.full_name ILIKE $%d)`, n, n, n))
	}
	if f.Section != "" {
		args = append(args, f.Section)
		where = append(where, fmt.Sprintf(`s.section = $%d`, len(args)))
	}
	if f.YearLevel != "" {
		args = append(args, f.YearLevel)
		where = append(where, fmt.Sprintf(`s.year_level = $%d`, len(args)))
	}

	query := `
		SELECT u.id, u.username, u.email, u.full_name, u.user_type, u.temp_password, u.created_at,
			s.section, s.year_level, s.rizal_professor,
			p.id, gp.score, gp.current_stage, gp.progress_percent, gp.updated_at,
			(SELECT COUNT(*) FROM game_sessions gs WHERE gs.player_id = p.id)
		FROM users u
		JOIN students s ON s.user_id = u.id
		LEFT JOIN players p ON p.user_id = u.id
		LEFT JOIN game_progress gp ON gp.player_id = p.id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY s.section, u.full_name, u.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	students := make([]entity.Student, 0)
	for rows.Next() {
		var (
			s         entity.Student
			playerID  sql.NullInt64
			score     sql.NullInt64
			stage     sql.NullInt64
			percent   sql.NullFloat64
			updatedAt sql.NullTime
			sessions  int
		)
		err := rows.Scan(
			&s.ID, &s.Username, &s.Email, &s.FullName, &s.UserType, &s.TempPassword, &s.CreatedAt,
			&s.Section, &s.YearLevel, &s.RizalProfessor,
			&playerID, &score, &stage, &percent, &updatedAt,
			&sessions,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}

		if playerID.Valid {
			s.Progress = &entity.GameProgress{
				PlayerID:        int(playerID.Int64),
				Score:           int(score.Int64),
				CurrentStage:    int(stage.Int64),
				ProgressPercent: percent.Float64,
				SessionsPlayed:  sessions,
				UpdatedAt:       updatedAt.Time,
			}
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

// Sections список секций, в которых есть ученики
func (r *StudentRepository) Sections(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT section FROM students WHERE section <> '' ORDER BY section`)
}

func (r *StudentRepository) YearLevels(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT year_level FROM students WHERE year_level <> '' ORDER BY year_level`)
}

func (r *StudentRepository) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list distinct values: %w", err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// ResetProgress обнуляет прогресс и удаляет историю игровых сессий одной транзакцией.
func (r *StudentRepository) ResetProgress(ctx context.Context, userID int) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var playerID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM players WHERE user_id = $1`, userID).Scan(&playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find player: %w", err)
	}

	// строки прогресса может еще не быть, тогда она создается сразу обнуленной
	res, err := tx.ExecContext(ctx, `
		INSERT INTO game_progress (player_id, score, current_stage, progress_percent, updated_at)
		VALUES ($1, 0, 1, 0, NOW())
		ON CONFLICT (player_id) DO UPDATE
		SET score = 0, current_stage = 1, progress_percent = 0, updated_at = NOW()
	`, playerID)
	if err != nil {
		return fmt.Errorf("reset game progress: %w", err)
	}
	if err = expectAffected(res); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM game_sessions WHERE player_id = $1`, playerID); err != nil {
		return fmt.Errorf("delete game sessions: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
