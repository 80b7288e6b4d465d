package entity

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("record not found")

const (
	UserTypeTeacher = "teacher"
	UserTypeStudent = "student"
)

type Admin struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"-"`
}

// User базовая учетная запись; роль задается UserType
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	UserType     string    `json:"user_type"`
	PasswordHash string    `json:"-"`
	TempPassword bool      `json:"temp_password"`
	CreatedAt    time.Time `json:"created_at"`
}

type Teacher struct {
	User
	IsActive bool             `json:"is_active"`
	Sections []TeacherSection `json:"sections,omitempty"`
}

type TeacherSection struct {
	ID        int       `json:"id"`
	TeacherID int       `json:"teacher_id"`
	Section   string    `json:"section"`
	CreatedAt time.Time `json:"created_at"`
}

type Student struct {
	User
	Section        string `json:"section"`
	YearLevel      string `json:"year_level"`
	RizalProfessor string `json:"rizal_professor"`

	// nil если ученик еще не начинал игру
	Progress *GameProgress `json:"progress,omitempty"`
}
