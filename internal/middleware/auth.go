package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"gameadmin/internal/session"
)

type ctxKey int

const adminKey ctxKey = iota

// RequireAdmin пускает дальше только вошедшего администратора.
// ?logout=1 на любой закрытой странице завершает сессию.
func RequireAdmin(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("logout") == "1" {
				if err := sessions.SignOut(w, r); err != nil {
					slog.Error("sign out", "err", err)
				}
				http.Redirect(w, r, "/login?message=logged_out", http.StatusSeeOther)
				return
			}

			admin, ok := sessions.Current(r)
			if !ok {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFrom администратор, положенный в контекст RequireAdmin
func AdminFrom(ctx context.Context) (session.Admin, bool) {
	admin, ok := ctx.Value(adminKey).(session.Admin)
	return admin, ok
}

// WithAdmin для тестов обработчиков, которые вызываются без RequireAdmin
func WithAdmin(ctx context.Context, admin session.Admin) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}
