package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"gameadmin/internal/middleware"
	"gameadmin/internal/session"
)

type Deps struct {
	Auth     Authenticator
	Accounts Accounts
	Stats    StatsSource
	Sessions *session.Manager
}

// NewRouter маршруты панели. CSRF и логирование навешиваются снаружи.
func NewRouter(d Deps) (*mux.Router, error) {
	render, err := NewRenderer(d.Sessions)
	if err != nil {
		return nil, err
	}

	index := NewIndexHandler(render, d.Sessions)
	login := NewLoginHandler(d.Auth, d.Sessions, render)
	api := NewAuthAPIHandler(d.Auth, d.Sessions)
	dashboard := NewDashboardHandler(d.Stats, render)
	teachers := NewTeacherHandlers(d.Accounts, d.Sessions, render)
	students := NewStudentHandlers(d.Accounts, d.Sessions, render)
	profile := NewProfileHandler(render)

	r := mux.NewRouter()
	r.HandleFunc("/", index.Index).Methods(http.MethodGet)
	r.HandleFunc("/login", login.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", login.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", login.Logout).Methods(http.MethodGet)
	r.HandleFunc("/api/auth", api.Handle).Methods(http.MethodPost)

	admin := r.NewRoute().Subrouter()
	admin.Use(middleware.RequireAdmin(d.Sessions))
	admin.HandleFunc("/dashboard", dashboard.Dashboard).Methods(http.MethodGet)
	admin.HandleFunc("/teachers", teachers.List).Methods(http.MethodGet)
	admin.HandleFunc("/teachers", teachers.Action).Methods(http.MethodPost)
	admin.HandleFunc("/teachers/view", teachers.View).Methods(http.MethodGet)
	admin.HandleFunc("/students", students.List).Methods(http.MethodGet)
	admin.HandleFunc("/students", students.Action).Methods(http.MethodPost)
	admin.HandleFunc("/profile", profile.Profile).Methods(http.MethodGet)

	return r, nil
}
