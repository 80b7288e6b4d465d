package handler

import (
	"context"
	"log/slog"
	"net/http"

	"gameadmin/internal/entity"
)

type StatsSource interface {
	Stats(ctx context.Context) (entity.DashboardStats, error)
}

type DashboardHandler struct {
	stats  StatsSource
	render *Renderer
}

func NewDashboardHandler(stats StatsSource, render *Renderer) *DashboardHandler {
	return &DashboardHandler{stats: stats, render: render}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		slog.Error("dashboard stats", "err", err)
		v := h.render.View(w, r, "Dashboard", (*entity.DashboardStats)(nil))
		v.Error(errorMessage(err))
		h.render.Render(w, "dashboard", v)
		return
	}
	h.render.Render(w, "dashboard", h.render.View(w, r, "Dashboard", &stats))
}
