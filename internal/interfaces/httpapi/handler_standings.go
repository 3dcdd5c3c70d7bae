package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	standings, err := h.standingsService.Standings(ctx, draftID)
	if err != nil {
		h.logger.WarnContext(ctx, "compute standings failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standings)
}

type previewStandingsRequest struct {
	TeamName string `json:"team_name" validate:"required"`
	PlayerID string `json:"player_id" validate:"required"`
}

// PreviewStandings recomputes standings as if the named team drafted one
// extra player, without mutating the draft.
func (h *Handler) PreviewStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewStandings")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	var req previewStandingsRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	extra, err := h.playerService.Get(ctx, req.PlayerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	standings, err := h.standingsService.Preview(ctx, draftID, req.TeamName, extra)
	if err != nil {
		h.logger.WarnContext(ctx, "preview standings failed",
			"draft_id", draftID,
			"team", req.TeamName,
			"player_id", req.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standings)
}
