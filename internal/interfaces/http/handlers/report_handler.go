package handlers

import (
	"net/http"

	"github.com/biotext/bioground/internal/application/reporting"
	"github.com/biotext/bioground/internal/domain/agent"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	apperrors "github.com/biotext/bioground/pkg/errors"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// ReportHandler serves curation report endpoints over posted statement
// corpora.
type ReportHandler struct {
	svc *reporting.Service
	log logging.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(svc *reporting.Service, log logging.Logger) *ReportHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ReportHandler{svc: svc, log: log.Named("report-handler")}
}

// ReportRequest is the body for corpus-wide reports.
type ReportRequest struct {
	Statements []*agent.Statement `json:"statements"`
}

// GroundingFrequency handles POST /reports/grounding-frequency.
func (h *ReportHandler) GroundingFrequency(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]reporting.GroundingCount{
		"rows": h.svc.TextsWithGrounding(req.Statements),
	})
}

// Ungrounded handles POST /reports/ungrounded.
func (h *ReportHandler) Ungrounded(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]reporting.TextCount{
		"rows": h.svc.UngroundedTexts(req.Statements),
	})
}

// SentencesRequest is the body for POST /reports/sentences.
type SentencesRequest struct {
	Text       string             `json:"text"`
	Statements []*agent.Statement `json:"statements"`
}

// Sentences handles POST /reports/sentences?max=N: evidence sentences for
// statements mentioning the given text.
func (h *ReportHandler) Sentences(w http.ResponseWriter, r *http.Request) {
	var req SentencesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if req.Text == "" {
		writeAppError(w, apperrors.New(apperrors.ErrCodeValidation, "text is required"))
		return
	}
	max := queryInt(r, "max", 0)
	writeJSON(w, http.StatusOK, map[string][]reporting.Sentence{
		"rows": h.svc.SentencesForText(req.Text, req.Statements, max),
	})
}

// ProteinMap handles POST /reports/protein-map: derive candidate
// grounding-map entries from trusted sole-UniProt groundings.
func (h *ReportHandler) ProteinMap(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]grounding.GroundingMap{
		"entries": h.svc.ProteinMap(req.Statements),
	})
}

//Personal.AI order the ending
