package handler

import (
	"net/http"

	"github.com/templui/devlens/internal/ui"
	"github.com/templui/devlens/internal/ui/pages"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, http.StatusOK, pages.Home(popFlash(w, r)))
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, http.StatusNotFound, pages.NotFound())
}
