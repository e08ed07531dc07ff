package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/hoops-scout/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

type validateCandidateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed rejected unsure"`
	By     string `json:"validated_by" validate:"required_unless=Status pending,max=100"`
	Notes  string `json:"notes" validate:"omitempty,max=2000"`
}

func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "ListCandidates")
	defer span.End()

	minScore, err := queryFloat(r, "min_score")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	items, err := h.queryService.ListCandidates(ctx, usecase.CandidateQuery{
		Status:   status,
		MinScore: minScore,
		Limit:    limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list candidates failed", "status", status, "min_score", minScore, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]candidateDTO, 0, len(items))
	for _, item := range items {
		out = append(out, candidateViewToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ValidateCandidate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "ValidateCandidate")
	defer span.End()

	candidateID, err := pathID(r, "candidateID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req validateCandidateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	span.SetAttributes(attribute.Int64("hoops.candidate_id", candidateID), attribute.String("hoops.validation_status", req.Status))
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.identityService.Validate(ctx, usecase.ValidateCandidateInput{
		CandidateID: candidateID,
		Status:      req.Status,
		By:          req.By,
		Notes:       req.Notes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "validate candidate failed", "candidate_id", candidateID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, candidateToDTO(item))
}

func (h *Handler) CandidateStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "CandidateStats")
	defer span.End()

	stats, err := h.queryService.CandidateStats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "candidate stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, candidateStatsToDTO(stats))
}
