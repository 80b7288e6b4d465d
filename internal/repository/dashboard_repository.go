package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gameadmin/internal/entity"
)

const recentUsersLimit = 5

type DashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) Stats(ctx context.Context) (entity.DashboardStats, error) {
	var stats entity.DashboardStats

	// счетчики по учителям
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN t.is_active THEN 1 ELSE 0 END), 0)
		FROM teachers t
		JOIN users u ON u.id = t.user_id
	`).Scan(&stats.TotalTeachers, &stats.ActiveTeachers)
	if err != nil {
		return stats, fmt.Errorf("teacher stats: %w", err)
	}
	stats.InactiveTeachers = stats.TotalTeachers - stats.ActiveTeachers

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT NULLIF(s.section, ''))
		FROM students s
		JOIN users u ON u.id = s.user_id
	`).Scan(&stats.TotalStudents, &stats.TotalSections)
	if err != nil {
		return stats, fmt.Errorf("student stats: %w", err)
	}

	// игровая статистика
	err = r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM players),
			(SELECT COUNT(*) FROM game_sessions),
			COALESCE((SELECT AVG(progress_percent) FROM game_progress), 0)
	`).Scan(&stats.TotalPlayers, &stats.SessionsPlayed, &stats.AverageProgress)
	if err != nil {
		return stats, fmt.Errorf("game stats: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, email, full_name, user_type, temp_password, created_at
		FROM users
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, recentUsersLimit)
	if err != nil {
		return stats, fmt.Errorf("recent users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.UserType, &u.TempPassword, &u.CreatedAt); err != nil {
			return stats, fmt.Errorf("scan recent user: %w", err)
		}
		stats.RecentUsers = append(stats.RecentUsers, u)
	}

	return stats, rows.Err()
}
