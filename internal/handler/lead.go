package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/devlens/internal/model"
	"github.com/templui/devlens/internal/service"
)

const maxLeadBodySize = 64 << 10

type leadSubmitter interface {
	Submit(ctx context.Context, form service.LeadForm, input map[string]any) (*model.Lead, error)
}

type leadResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Missing []string          `json:"missing,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
}

type leadHandler struct {
	leadService leadSubmitter
}

func NewLeadHandler(leadService leadSubmitter) *leadHandler {
	return &leadHandler{
		leadService: leadService,
	}
}

func (h *leadHandler) SchoolDemo(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, service.SchoolDemoForm)
}

func (h *leadHandler) BookDemo(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, service.BookDemoForm)
}

func (h *leadHandler) submit(w http.ResponseWriter, r *http.Request, form service.LeadForm) {
	var input map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLeadBodySize))
	dec.UseNumber() // phone numbers sent as JSON numbers keep their digits
	err := dec.Decode(&input)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, leadResponse{Error: "Invalid JSON in request body"})
		return
	}

	lead, err := h.leadService.Submit(r.Context(), form, input)
	if err != nil {
		var missingErr *service.MissingFieldsError
		switch {
		case errors.As(err, &missingErr):
			writeJSON(w, http.StatusBadRequest, leadResponse{
				Error:   missingErr.Error(),
				Missing: missingErr.Fields,
			})
		case errors.Is(err, service.ErrEmailDeliveryFailed):
			writeJSON(w, http.StatusInternalServerError, leadResponse{Error: "Failed to send email. Please try again later."})
		default:
			slog.Error("lead submission failed", "error", err, "kind", form.Kind)
			writeJSON(w, http.StatusInternalServerError, leadResponse{Error: "Internal server error"})
		}
		return
	}

	data := make(map[string]string, len(lead.Fields)+1)
	for k, v := range lead.Fields {
		data[k] = v
	}
	data["timestamp"] = lead.SubmittedAt.Format(time.RFC3339)

	writeJSON(w, http.StatusOK, leadResponse{
		Success: true,
		Message: form.SuccessMessage,
		Data:    data,
	})
}
