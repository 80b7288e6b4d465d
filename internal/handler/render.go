package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gorilla/csrf"

	"gameadmin/internal/entity"
	"gameadmin/internal/middleware"
	"gameadmin/internal/repository"
	"gameadmin/internal/service"
	"gameadmin/internal/session"
	"gameadmin/internal/templates"
)

var pages = []string{
	"index",
	"login",
	"dashboard",
	"teachers",
	"teacher_view",
	"students",
	"profile",
}

var funcMap = template.FuncMap{
	"percent": func(v float64) string {
		return fmt.Sprintf("%.1f%%", v)
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("02.01.2006 15:04")
	},
}

// Renderer собирает каждую страницу вместе с общим layout.
type Renderer struct {
	pages    map[string]*template.Template
	sessions *session.Manager
}

func NewRenderer(sessions *session.Manager) (*Renderer, error) {
	rd := &Renderer{pages: make(map[string]*template.Template, len(pages)), sessions: sessions}
	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(templates.FS, "layout.html", name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		rd.pages[name] = tmpl
	}
	return rd, nil
}

// View данные, общие для всех страниц
type View struct {
	Title     string
	Admin     *session.Admin
	Flashes   map[string][]string
	CSRFField template.HTML
	Data      any
}

// View забирает баннеры из сессии, поэтому вызывать до записи тела ответа.
func (rd *Renderer) View(w http.ResponseWriter, r *http.Request, title string, data any) *View {
	v := &View{
		Title:     title,
		Flashes:   rd.sessions.Flashes(w, r),
		CSRFField: csrf.TemplateField(r),
		Data:      data,
	}
	if admin, ok := middleware.AdminFrom(r.Context()); ok {
		v.Admin = &admin
	}
	return v
}

func (v *View) Error(msg string) {
	v.Flashes[session.FlashError] = append(v.Flashes[session.FlashError], msg)
}

func (rd *Renderer) Render(w http.ResponseWriter, page string, v *View) {
	tmpl, ok := rd.pages[page]
	if !ok {
		slog.Error("unknown page", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		slog.Error("render page", "page", page, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("write page", "page", page, "err", err)
	}
}

// errorMessage текст ошибки для баннера или поля error в JSON
func errorMessage(err error) string {
	switch {
	case service.IsUserError(err), errors.Is(err, repository.ErrDuplicateSection):
		return capitalize(err.Error())
	case errors.Is(err, entity.ErrNotFound):
		return "Record not found"
	default:
		return "Error: " + err.Error()
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func trimmed(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}
