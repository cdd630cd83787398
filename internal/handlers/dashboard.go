package handlers

import (
	"net/http"
	"time"

	"github.com/boomtruck/siteapi/internal/handlers/render"
	"github.com/boomtruck/siteapi/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboard *dashboard.Service
}

func NewDashboard(d *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: d}
}

func (h *DashboardHandler) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /dashboard", h.overview)

	return mux
}

func (h *DashboardHandler) overview(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, h.dashboard.Overview(time.Now()))
}
