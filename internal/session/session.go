// Package session хранит состояние входа администратора в cookie gorilla/sessions.
package session

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"gameadmin/internal/entity"
)

const (
	cookieName = "admin-session"

	keyLoggedIn = "admin_logged_in"
	keyID       = "admin_id"
	keyUsername = "admin_username"
	keyEmail    = "admin_email"
	keyFullName = "admin_full_name"

	FlashSuccess = "success"
	FlashError   = "error"
)

type Manager struct {
	store *sessions.CookieStore
}

// NewManager без ключа генерирует случайный; сессии тогда не переживут перезапуск.
func NewManager(key []byte, secure bool) *Manager {
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		slog.Warn("SESSION_KEY is not set, using a random key")
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   8 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

func (m *Manager) get(r *http.Request) *sessions.Session {
	// битая или чужая cookie дает пустую новую сессию
	s, err := m.store.Get(r, cookieName)
	if err != nil {
		slog.Debug("discarding invalid session cookie", "err", err)
	}
	return s
}

// Admin данные администратора из сессии; ok == false если вход не выполнен
type Admin struct {
	ID       int
	Username string
	Email    string
	FullName string
}

func (m *Manager) Current(r *http.Request) (Admin, bool) {
	s := m.get(r)

	loggedIn, _ := s.Values[keyLoggedIn].(bool)
	id, _ := s.Values[keyID].(int)
	if !loggedIn || id == 0 {
		return Admin{}, false
	}

	a := Admin{ID: id}
	a.Username, _ = s.Values[keyUsername].(string)
	a.Email, _ = s.Values[keyEmail].(string)
	a.FullName, _ = s.Values[keyFullName].(string)
	return a, true
}

// SignIn заполняет (или обновляет) поля сессии из строки admin.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, admin entity.Admin) error {
	s := m.get(r)
	s.Values[keyLoggedIn] = true
	s.Values[keyID] = admin.ID
	s.Values[keyUsername] = admin.Username
	s.Values[keyEmail] = admin.Email
	s.Values[keyFullName] = admin.FullName
	return s.Save(r, w)
}

func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	s.Values = map[interface{}]interface{}{}
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, kind, message string) {
	s := m.get(r)
	s.AddFlash(message, kind)
	if err := s.Save(r, w); err != nil {
		slog.Error("save flash", "err", err)
	}
}

// Flashes достает и удаляет баннеры; кладет их в map по типу
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) map[string][]string {
	s := m.get(r)
	out := map[string][]string{}
	for _, kind := range []string{FlashSuccess, FlashError} {
		for _, f := range s.Flashes(kind) {
			if msg, ok := f.(string); ok {
				out[kind] = append(out[kind], msg)
			}
		}
	}
	if len(out) > 0 {
		if err := s.Save(r, w); err != nil {
			slog.Error("clear flashes", "err", err)
		}
	}
	return out
}
