package handler

import (
	"context"
	"net/http"
	"strconv"

	"gameadmin/internal/entity"
	"gameadmin/internal/repository"
	"gameadmin/internal/session"
)

// Accounts операции над учителями и учениками, нужные страницам панели
type Accounts interface {
	Teachers(ctx context.Context, search string) ([]entity.Teacher, error)
	Teacher(ctx context.Context, id int) (entity.Teacher, error)
	Students(ctx context.Context, f repository.StudentFilter) ([]entity.Student, error)
	Sections(ctx context.Context) ([]string, error)
	YearLevels(ctx context.Context) ([]string, error)

	SetTeacherActive(ctx context.Context, id int, active bool) error
	DeleteTeacher(ctx context.Context, id int) error
	AssignSection(ctx context.Context, teacherID int, section string) error
	RemoveSection(ctx context.Context, teacherID, sectionID int) error
	ResetPassword(ctx context.Context, userID int, userType string) error
	ResetProgress(ctx context.Context, studentID int) error
	DefaultPassword() string
}

// formID положительный id из поля формы
func formID(r *http.Request, key string) (int, bool) {
	id, err := strconv.Atoi(trimmed(r, key))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// flashResult баннер по итогу действия и редирект обратно (PRG)
func flashResult(w http.ResponseWriter, r *http.Request, sessions *session.Manager, err error, success, back string) {
	if err != nil {
		sessions.Flash(w, r, session.FlashError, errorMessage(err))
	} else {
		sessions.Flash(w, r, session.FlashSuccess, success)
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
