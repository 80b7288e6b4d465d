package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gameadmin/internal/entity"
	"gameadmin/internal/repository"
	"gameadmin/internal/service"
	"gameadmin/internal/session"
)

var (
	testKey = []byte("0123456789abcdef0123456789abcdef")
	errDB   = errors.New("pq: connection refused")
)

type fakeAuth struct {
	admin      entity.Admin
	password   string
	loginErr   error
	updateErr  error
	lastUpdate service.ProfileUpdate
}

func (f *fakeAuth) Login(_ context.Context, in service.LoginInput) (entity.Admin, error) {
	if f.loginErr != nil {
		return entity.Admin{}, f.loginErr
	}
	if in.Username == "" || in.Password == "" {
		return entity.Admin{}, service.ErrMissingCredentials
	}
	if in.Username != f.admin.Username || in.Password != f.password {
		return entity.Admin{}, service.ErrInvalidCredentials
	}
	return f.admin, nil
}

func (f *fakeAuth) UpdateProfile(_ context.Context, adminID int, in service.ProfileUpdate) (entity.Admin, error) {
	f.lastUpdate = in
	if f.updateErr != nil {
		return entity.Admin{}, f.updateErr
	}
	if in.Username != "" {
		f.admin.Username = in.Username
	}
	return f.admin, nil
}

type call struct {
	name string
	id   int
	arg  any
}

type fakeAccounts struct {
	teachers []entity.Teacher
	students []entity.Student
	sections []string
	err      error
	calls    []call
}

func (f *fakeAccounts) record(name string, id int, arg any) error {
	f.calls = append(f.calls, call{name: name, id: id, arg: arg})
	return f.err
}

func (f *fakeAccounts) Teachers(_ context.Context, search string) ([]entity.Teacher, error) {
	return f.teachers, f.record("Teachers", 0, search)
}

func (f *fakeAccounts) Teacher(_ context.Context, id int) (entity.Teacher, error) {
	for _, t := range f.teachers {
		if t.ID == id {
			return t, nil
		}
	}
	return entity.Teacher{}, entity.ErrNotFound
}

func (f *fakeAccounts) Students(_ context.Context, flt repository.StudentFilter) ([]entity.Student, error) {
	return f.students, f.record("Students", 0, flt)
}

func (f *fakeAccounts) Sections(context.Context) ([]string, error)   { return f.sections, nil }
func (f *fakeAccounts) YearLevels(context.Context) ([]string, error) { return []string{"1st"}, nil }

func (f *fakeAccounts) SetTeacherActive(_ context.Context, id int, active bool) error {
	return f.record("SetTeacherActive", id, active)
}

func (f *fakeAccounts) DeleteTeacher(_ context.Context, id int) error {
	return f.record("DeleteTeacher", id, nil)
}

func (f *fakeAccounts) AssignSection(_ context.Context, id int, section string) error {
	return f.record("AssignSection", id, section)
}

func (f *fakeAccounts) RemoveSection(_ context.Context, id, sectionID int) error {
	return f.record("RemoveSection", id, sectionID)
}

func (f *fakeAccounts) ResetPassword(_ context.Context, id int, userType string) error {
	return f.record("ResetPassword", id, userType)
}

func (f *fakeAccounts) ResetProgress(_ context.Context, id int) error {
	return f.record("ResetProgress", id, nil)
}

func (f *fakeAccounts) DefaultPassword() string { return "changeme123" }

type fakeStats struct {
	stats entity.DashboardStats
	err   error
}

func (f fakeStats) Stats(context.Context) (entity.DashboardStats, error) { return f.stats, f.err }

// client гоняет запросы через роутер и хранит cookie между ними
type client struct {
	t        *testing.T
	h        http.Handler
	sessions *session.Manager
	jar      map[string]*http.Cookie
}

type fixture struct {
	*client
	auth     *fakeAuth
	accounts *fakeAccounts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	auth := &fakeAuth{
		admin:    entity.Admin{ID: 1, Username: "admin", Email: "admin@example.com", FullName: "Administrator"},
		password: "admin123",
	}
	accounts := &fakeAccounts{}
	sessions := session.NewManager(testKey, false)

	router, err := NewRouter(Deps{
		Auth:     auth,
		Accounts: accounts,
		Stats:    fakeStats{stats: entity.DashboardStats{TotalTeachers: 3, ActiveTeachers: 2, InactiveTeachers: 1, AverageProgress: 42.5}},
		Sessions: sessions,
	})
	require.NoError(t, err)

	return &fixture{
		client:   &client{t: t, h: router, sessions: sessions, jar: map[string]*http.Cookie{}},
		auth:     auth,
		accounts: accounts,
	}
}

func (c *client) do(method, target, contentType, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, ck := range c.jar {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	c.absorb(rec)
	return rec
}

func (c *client) absorb(rec *httptest.ResponseRecorder) {
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.jar, ck.Name)
			continue
		}
		c.jar[ck.Name] = ck
	}
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, target, "", "")
}

func (c *client) postForm(target, body string) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, target, "application/x-www-form-urlencoded", body)
}

func (c *client) postJSON(target, body string) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, target, "application/json", body)
}

func (c *client) signIn() {
	c.t.Helper()
	rec := c.postForm("/login", "username=admin&password=admin123")
	require.Equal(c.t, http.StatusSeeOther, rec.Code)
	require.Equal(c.t, "/dashboard", rec.Header().Get("Location"))
}

// flashes забирает баннеры из сессии клиента, как это сделала бы следующая страница
func (c *client) flashes() map[string][]string {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range c.jar {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	out := c.sessions.Flashes(rec, req)
	c.absorb(rec)
	return out
}
