package entity

import "time"

type Player struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type GameProgress struct {
	PlayerID        int       `json:"player_id"`
	Score           int       `json:"score"`
	CurrentStage    int       `json:"current_stage"`
	ProgressPercent float64   `json:"progress_percent"`
	SessionsPlayed  int       `json:"sessions_played"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type GameSession struct {
	ID           int        `json:"id"`
	PlayerID     int        `json:"player_id"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	Score        int        `json:"score"`
	StageReached int        `json:"stage_reached"`
}
