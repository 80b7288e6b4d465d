package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"gameadmin/internal/entity"
	"gameadmin/internal/service"
	"gameadmin/internal/session"
)

// Authenticator вход и изменение профиля администратора
type Authenticator interface {
	Login(ctx context.Context, in service.LoginInput) (entity.Admin, error)
	UpdateProfile(ctx context.Context, adminID int, in service.ProfileUpdate) (entity.Admin, error)
}

// коды ошибок в query, чтобы форма входа работала по PRG
var loginErrors = map[string]string{
	"empty_fields":        "Please enter username and password",
	"invalid_credentials": "Invalid username or password",
	"server_error":        "Something went wrong, please try again",
}

var loginMessages = map[string]string{
	"logged_out": "You have been logged out",
}

type LoginHandler struct {
	auth     Authenticator
	sessions *session.Manager
	render   *Renderer
}

func NewLoginHandler(auth Authenticator, sessions *session.Manager, render *Renderer) *LoginHandler {
	return &LoginHandler{auth: auth, sessions: sessions, render: render}
}

type loginData struct {
	Error    string
	Message  string
	Username string
}

func (h *LoginHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Current(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	q := r.URL.Query()
	data := loginData{
		Error:    loginErrors[q.Get("error")],
		Message:  loginMessages[q.Get("message")],
		Username: q.Get("username"),
	}
	h.render.Render(w, "login", h.render.View(w, r, "Login", data))
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	in := service.LoginInput{
		Username: trimmed(r, "username"),
		Password: r.FormValue("password"),
	}

	admin, err := h.auth.Login(r.Context(), in)
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		redirectLogin(w, r, "empty_fields", in.Username)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		redirectLogin(w, r, "invalid_credentials", in.Username)
		return
	case err != nil:
		slog.Error("login", "username", in.Username, "err", err)
		redirectLogin(w, r, "server_error", in.Username)
		return
	}

	if err := h.sessions.SignIn(w, r, admin); err != nil {
		slog.Error("save session", "admin_id", admin.ID, "err", err)
		redirectLogin(w, r, "server_error", in.Username)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		slog.Error("sign out", "err", err)
	}
	http.Redirect(w, r, "/login?message=logged_out", http.StatusSeeOther)
}

func redirectLogin(w http.ResponseWriter, r *http.Request, code, username string) {
	q := url.Values{"error": {code}}
	if username != "" {
		q.Set("username", username)
	}
	http.Redirect(w, r, "/login?"+q.Encode(), http.StatusSeeOther)
}
