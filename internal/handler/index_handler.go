package handler

import (
	"net/http"

	"gameadmin/internal/session"
)

type IndexHandler struct {
	render   *Renderer
	sessions *session.Manager
}

func NewIndexHandler(render *Renderer, sessions *session.Manager) *IndexHandler {
	return &IndexHandler{render: render, sessions: sessions}
}

// Index публичная страница; вошедший администратор сразу попадает в панель
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Current(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render.Render(w, "index", h.render.View(w, r, "Welcome", nil))
}
