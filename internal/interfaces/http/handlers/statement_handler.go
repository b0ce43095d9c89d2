package handlers

import (
	"net/http"

	"github.com/biotext/bioground/internal/application/mapping"
	"github.com/biotext/bioground/internal/domain/agent"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	apperrors "github.com/biotext/bioground/pkg/errors"
)

// StatementHandler serves batch statement mapping and renaming.
type StatementHandler struct {
	svc *mapping.Service
	log logging.Logger
}

// NewStatementHandler creates a StatementHandler.
func NewStatementHandler(svc *mapping.Service, log logging.Logger) *StatementHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &StatementHandler{svc: svc, log: log.Named("statement-handler")}
}

// StatementBatchRequest is the body for the batch endpoints.
type StatementBatchRequest struct {
	Statements []*agent.Statement `json:"statements"`
}

// Map handles POST /statements/map: re-ground every statement in the batch.
// Data-integrity failures abort the whole batch with 422 so that a broken
// lookup table never half-maps a corpus.
func (h *StatementHandler) Map(w http.ResponseWriter, r *http.Request) {
	var req StatementBatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if len(req.Statements) == 0 {
		writeAppError(w, apperrors.New(apperrors.ErrCodeValidation, "statements are required"))
		return
	}

	res, err := h.svc.MapBatch(r.Context(), req.Statements)
	if err != nil {
		h.log.Error("batch mapping failed", logging.Int("statements", len(req.Statements)), logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// RenameResponse carries the renamed batch.
type RenameResponse struct {
	Statements []*agent.Statement `json:"statements"`
}

// Rename handles POST /statements/rename: re-standardize display names across
// the batch without touching identifier records.
func (h *StatementHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req StatementBatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	out := h.svc.Rename(r.Context(), req.Statements)
	writeJSON(w, http.StatusOK, RenameResponse{Statements: out})
}

//Personal.AI order the ending
