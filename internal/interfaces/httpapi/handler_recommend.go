package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/usecase"
)

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRecommendations")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))

	topN := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("top")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: top must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		topN = parsed
	}

	recommendations, err := h.recommendService.Recommend(ctx, draftID, topN)
	if err != nil {
		h.logger.WarnContext(ctx, "recommend failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recommendations)
}
