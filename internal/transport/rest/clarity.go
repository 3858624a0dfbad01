package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/concept-clarity/internal/domain"
)

const (
	rootMessage = "Concept Clarity AI Service API"

	// AnswerSource tags answers produced from the local glossary.
	AnswerSource = "local"
)

// clarityService defines the minimal interface needed by ClarityHandler.
type clarityService interface {
	Predict(ctx context.Context, text string) (domain.MatchResult, error)
	Stats(ctx context.Context) (domain.GlossaryStats, error)
	Reload(ctx context.Context) (int, error)
}

// ClarityHandler serves the question answering endpoints.
type ClarityHandler struct {
	svc clarityService
	log *slog.Logger
}

// NewClarityHandler creates a ClarityHandler.
func NewClarityHandler(svc clarityService, logger *slog.Logger) *ClarityHandler {
	return &ClarityHandler{svc: svc, log: logger.With("handler", "clarity")}
}

type predictRequest struct {
	Text *string `json:"text"`
}

// PredictResponse is the JSON response for POST /predict.
type PredictResponse struct {
	Answer      string  `json:"answer"`
	Confidence  float64 `json:"confidence"`
	Source      string  `json:"source"`
	MatchedTerm string  `json:"matched_term,omitempty"`
}

// NewPredictResponse converts a match into the API answer shape.
func NewPredictResponse(res domain.MatchResult) PredictResponse {
	return PredictResponse{
		Answer:      res.Answer,
		Confidence:  res.Confidence,
		Source:      AnswerSource,
		MatchedTerm: res.MatchedTerm,
	}
}

// StatsResponse is the JSON response for GET /stats.
type StatsResponse struct {
	TotalTerms  int      `json:"total_terms"`
	Categories  []string `json:"categories"`
	SampleTerms []string `json:"sample_terms"`
}

// NewStatsResponse converts glossary stats into the API shape. Empty lists
// encode as [] rather than null.
func NewStatsResponse(stats domain.GlossaryStats) StatsResponse {
	resp := StatsResponse{
		TotalTerms:  stats.TotalTerms,
		Categories:  stats.Categories,
		SampleTerms: stats.SampleTerms,
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	if resp.SampleTerms == nil {
		resp.SampleTerms = []string{}
	}
	return resp
}

type reloadResponse struct {
	Status string `json:"status"`
	Terms  int    `json:"terms"`
}

// Root handles GET /.
func (h *ClarityHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": rootMessage})
}

// Predict handles POST /predict.
func (h *ClarityHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.Is(err, io.EOF):
			h.handleError(w, r, domain.NewValidationError("body", "required"))
		default:
			h.handleError(w, r, domain.NewValidationError("body", "invalid JSON"))
		}
		return
	}
	if req.Text == nil {
		h.handleError(w, r, domain.NewValidationError("text", "required"))
		return
	}

	res, err := h.svc.Predict(r.Context(), *req.Text)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NewPredictResponse(res))
}

// Stats handles GET /stats.
func (h *ClarityHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NewStatsResponse(stats))
}

// Reload handles POST /reload.
func (h *ClarityHandler) Reload(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Reload(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{Status: "ok", Terms: n})
}

func (h *ClarityHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, domain.ErrDataUnavailable):
		h.log.ErrorContext(r.Context(), "glossary unavailable", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "glossary unavailable")
	default:
		h.log.ErrorContext(r.Context(), "unexpected error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
