package handler

import "net/http"

// ProfileHandler только страница; сохранение идет через /api/auth
type ProfileHandler struct {
	render *Renderer
}

func NewProfileHandler(render *Renderer) *ProfileHandler {
	return &ProfileHandler{render: render}
}

func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "profile", h.render.View(w, r, "Profile", nil))
}
