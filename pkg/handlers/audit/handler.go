package audit

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/alarm-atlas/pkg/services/audit"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	registry audit.Registry
}

func NewHandler(registry audit.Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) ListAudits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.registry.ListAudits()); err != nil {
		logger.Error().Err(err).Msg("failed to encode audit list")
	}
}

func (h *Handler) RunAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "audit")

	report, err := h.registry.Run(ctx, name)
	if err != nil {
		if errors.Is(err, audit.ErrUnknownAudit) {
			http.Error(w, "unknown audit: "+name, http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("audit", name).Msg("audit run failed")
		http.Error(w, "audit run failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.Error().Err(err).Str("audit", name).Msg("failed to encode audit report")
	}
}
