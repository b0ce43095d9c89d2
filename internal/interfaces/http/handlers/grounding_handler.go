package handlers

import (
	"net/http"

	"github.com/biotext/bioground/internal/application/mapping"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	apperrors "github.com/biotext/bioground/pkg/errors"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// GroundingHandler serves one-shot text grounding and hierarchy queries.
type GroundingHandler struct {
	svc *mapping.Service
	log logging.Logger
}

// NewGroundingHandler creates a GroundingHandler.
func NewGroundingHandler(svc *mapping.Service, log logging.Logger) *GroundingHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &GroundingHandler{svc: svc, log: log.Named("grounding-handler")}
}

// GroundRequest is the body for POST /ground.
type GroundRequest struct {
	Text string `json:"text"`
}

// Ground handles POST /ground: resolve one mention text against the curated
// grounding map.
func (h *GroundingHandler) Ground(w http.ResponseWriter, r *http.Request) {
	var req GroundRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if req.Text == "" {
		writeAppError(w, apperrors.New(apperrors.ErrCodeValidation, "text is required"))
		return
	}

	res, err := h.svc.Ground(r.Context(), req.Text)
	if err != nil {
		h.log.Error("ground request failed", logging.String("text", req.Text), logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// MostSpecificRequest is the body for POST /ground/most-specific.
type MostSpecificRequest struct {
	Namespace string   `json:"namespace"`
	IDs       []string `json:"ids"`
}

// MostSpecificResponse carries the surviving identifier, empty when the
// candidate set was empty.
type MostSpecificResponse struct {
	ID string `json:"id"`
}

// MostSpecific handles POST /ground/most-specific: reduce a candidate
// identifier set over the is-a hierarchy.
func (h *GroundingHandler) MostSpecific(w http.ResponseWriter, r *http.Request) {
	var req MostSpecificRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	ns := grounding.Namespace(req.Namespace)
	if !ns.Valid() || ns == grounding.NamespaceText {
		writeAppError(w, apperrors.Newf(apperrors.ErrCodeNamespaceInvalid, "invalid namespace %q", req.Namespace))
		return
	}

	id, err := h.svc.MostSpecific(r.Context(), ns, req.IDs)
	if err != nil {
		h.log.Error("most-specific query failed", logging.String("namespace", req.Namespace), logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MostSpecificResponse{ID: id})
}

//Personal.AI order the ending
