package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"gameadmin/internal/entity"
	"gameadmin/internal/session"
)

type TeacherHandlers struct {
	accounts Accounts
	sessions *session.Manager
	render   *Renderer
}

func NewTeacherHandlers(accounts Accounts, sessions *session.Manager, render *Renderer) *TeacherHandlers {
	return &TeacherHandlers{accounts: accounts, sessions: sessions, render: render}
}

type teachersData struct {
	Search   string
	Teachers []entity.Teacher
}

// List список учителей с поиском по имени, логину и email
func (h *TeacherHandlers) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	teachers, err := h.accounts.Teachers(r.Context(), search)
	v := h.render.View(w, r, "Teachers", teachersData{Search: search, Teachers: teachers})
	if err != nil {
		slog.Error("list teachers", "search", search, "err", err)
		v.Error(errorMessage(err))
	}
	h.render.Render(w, "teachers", v)
}

type teacherViewData struct {
	Teacher  entity.Teacher
	Sections []string
}

// View карточка учителя с закрепленными секциями
func (h *TeacherHandlers) View(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		h.sessions.Flash(w, r, session.FlashError, "Invalid request")
		http.Redirect(w, r, "/teachers", http.StatusSeeOther)
		return
	}

	teacher, err := h.accounts.Teacher(r.Context(), id)
	if errors.Is(err, entity.ErrNotFound) {
		h.sessions.Flash(w, r, session.FlashError, "Teacher not found")
		http.Redirect(w, r, "/teachers", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("get teacher", "teacher_id", id, "err", err)
		h.sessions.Flash(w, r, session.FlashError, errorMessage(err))
		http.Redirect(w, r, "/teachers", http.StatusSeeOther)
		return
	}

	// список секций учеников только для подсказок в форме
	sections, err := h.accounts.Sections(r.Context())
	if err != nil {
		slog.Warn("list sections", "err", err)
	}

	h.render.Render(w, "teacher_view", h.render.View(w, r, teacher.FullName, teacherViewData{
		Teacher:  teacher,
		Sections: sections,
	}))
}

var teacherActions = map[string]bool{
	"activate":       true,
	"deactivate":     true,
	"delete":         true,
	"reset_password": true,
	"assign_section": true,
	"remove_section": true,
}

// Action обрабатывает POST /teachers
func (h *TeacherHandlers) Action(w http.ResponseWriter, r *http.Request) {
	back := "/teachers"
	if search := r.URL.Query().Get("search"); search != "" {
		back += "?" + url.Values{"search": {search}}.Encode()
	}

	if err := r.ParseForm(); err != nil {
		h.sessions.Flash(w, r, session.FlashError, "Invalid request")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	action := r.PostFormValue("action")
	if !teacherActions[action] {
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

	ctx := r.Context()
	var (
		err     error
		success string
	)
	switch action {
	case "activate":
		err = h.accounts.SetTeacherActive(ctx, id, true)
		success = "Teacher activated"
	case "deactivate":
		err = h.accounts.SetTeacherActive(ctx, id, false)
		success = "Teacher deactivated"
	case "delete":
		err = h.accounts.DeleteTeacher(ctx, id)
		success = "Teacher deleted"
	case "reset_password":
		err = h.accounts.ResetPassword(ctx, id, entity.UserTypeTeacher)
		success = fmt.Sprintf("Password reset. Temporary password: %s", h.accounts.DefaultPassword())
	case "assign_section":
		err = h.accounts.AssignSection(ctx, id, r.PostFormValue("section"))
		success = "Section assigned"
		back = fmt.Sprintf("/teachers/view?id=%d", id)
	case "remove_section":
		sectionID, ok := formID(r, "section_id")
		if !ok {
			h.sessions.Flash(w, r, session.FlashError, "Invalid request")
			http.Redirect(w, r, fmt.Sprintf("/teachers/view?id=%d", id), http.StatusSeeOther)
			return
		}
		err = h.accounts.RemoveSection(ctx, id, sectionID)
		success = "Section removed"
		back = fmt.Sprintf("/teachers/view?id=%d", id)
	}

	if err != nil {
		slog.Error("teacher action failed", "action", action, "teacher_id", id, "err", err)
	}
	flashResult(w, r, h.sessions, err, success, back)
}
