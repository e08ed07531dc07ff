package httpapi

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

func (h *Handler) GetProfileMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "GetProfileMetrics")
	defer span.End()

	profileID, err := pathID(r, "profileID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season := strings.TrimSpace(r.URL.Query().Get("season"))
	span.SetAttributes(attribute.Int64("hoops.profile_id", profileID), attribute.String("hoops.season", season))

	item, err := h.queryService.GetProfileMetrics(ctx, profileID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get profile metrics failed", "profile_id", profileID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileMetricsToDTO(item))
}

func (h *Handler) GetProfilePotential(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "GetProfilePotential")
	defer span.End()

	profileID, err := pathID(r, "profileID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season := strings.TrimSpace(r.URL.Query().Get("season"))
	span.SetAttributes(attribute.Int64("hoops.profile_id", profileID), attribute.String("hoops.season", season))

	item, err := h.queryService.GetProfilePotential(ctx, profileID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get profile potential failed", "profile_id", profileID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profilePotentialToDTO(item))
}

func (h *Handler) ListPotentials(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "ListPotentials")
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

	items, err := h.queryService.ListByPotential(ctx, minScore, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list potentials failed", "min_score", minScore, "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]profilePotentialDTO, 0, len(items))
	for _, item := range items {
		out = append(out, profilePotentialToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetCareer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "GetCareer")
	defer span.End()

	playerKey := strings.TrimSpace(r.PathValue("playerKey"))
	span.SetAttributes(attribute.String("hoops.player_key", playerKey))
	item, err := h.queryService.GetCareer(ctx, playerKey)
	if err != nil {
		h.logger.WarnContext(ctx, "get career failed", "player_key", playerKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, careerToDTO(item))
}

func (h *Handler) ListCareers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "ListCareers")
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

	items, err := h.queryService.ListCareers(ctx, minScore, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list careers failed", "min_score", minScore, "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]careerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, careerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
