package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"gameadmin/internal/entity"
	"gameadmin/internal/repository"
	"gameadmin/internal/session"
)

type StudentHandlers struct {
	accounts Accounts
	sessions *session.Manager
	render   *Renderer
}

func NewStudentHandlers(accounts Accounts, sessions *session.Manager, render *Renderer) *StudentHandlers {
	return &StudentHandlers{accounts: accounts, sessions: sessions, render: render}
}

type studentsData struct {
	Filter     repository.StudentFilter
	Students   []entity.Student
	Sections   []string
	YearLevels []string
	Query      template.URL
}

func filterFrom(q url.Values) repository.StudentFilter {
	return repository.StudentFilter{
		Search:    q.Get("search"),
		Section:   q.Get("section"),
		YearLevel: q.Get("year_level"),
	}
}

// encode только непустые поля фильтра
func encodeFilter(f repository.StudentFilter) string {
	q := url.Values{}
	for k, v := range map[string]string{"search": f.Search, "section": f.Section, "year_level": f.YearLevel} {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q.Encode()
}

func (h *StudentHandlers) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := filterFrom(r.URL.Query())
	data := studentsData{Filter: f, Query: template.URL(encodeFilter(f))}

	var errs []error
	var err error
	if data.Students, err = h.accounts.Students(ctx, f); err != nil {
		errs = append(errs, err)
	}
	if data.Sections, err = h.accounts.Sections(ctx); err != nil {
		errs = append(errs, err)
	}
	if data.YearLevels, err = h.accounts.YearLevels(ctx); err != nil {
		errs = append(errs, err)
	}

	v := h.render.View(w, r, "Students", data)
	for _, err := range errs {
		slog.Error("list students", "err", err)
		v.Error(errorMessage(err))
	}
	h.render.Render(w, "students", v)
}

// Action обрабатывает POST /students
func (h *StudentHandlers) Action(w http.ResponseWriter, r *http.Request) {
	back := "/students"
	if q := encodeFilter(filterFrom(r.URL.Query())); q != "" {
		back += "?" + q
	}

	if err := r.ParseForm(); err != nil {
		h.sessions.Flash(w, r, session.FlashError, "Invalid request")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	action := r.PostFormValue("action")
	if action != "reset_password" && action != "reset_progress" {
		h.sessions.Flash(w, r, session.FlashError, "Unknown action")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	id, ok := formID(r, "id")
	if !ok {
		h.sessions.Flash(w, r, session.FlashError, "Invalid request")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	var (
		err     error
		success string
	)
	switch action {
	case "reset_password":
		err = h.accounts.ResetPassword(r.Context(), id, entity.UserTypeStudent)
		success = fmt.Sprintf("Password reset. Temporary password: %s", h.accounts.DefaultPassword())
	case "reset_progress":
		err = h.accounts.ResetProgress(r.Context(), id)
		success = "Game progress reset"
	}

	if err != nil {
		slog.Error("student action failed", "action", action, "student_id", id, "err", err)
	}
	flashResult(w, r, h.sessions, err, success, back)
}
