package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/usecase"
)

func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDraft")
	defer span.End()

	var req usecase.CreateDraftParams
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.draftService.Create(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "create draft failed", "draft_id", req.DraftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, state)
}

func (h *Handler) CurrentDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CurrentDraft")
	defer span.End()

	state, err := h.draftService.Current(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, state)
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	state, err := h.draftService.Load(ctx, draftID)
	if err != nil {
		h.logger.WarnContext(ctx, "load draft failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, state)
}

type makePickRequest struct {
	TeamName string `json:"team_name" validate:"required"`
	PlayerID string `json:"player_id" validate:"required"`
}

func (h *Handler) MakePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MakePick")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	var req makePickRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.draftService.Pick(ctx, draftID, req.TeamName, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "pick failed",
			"draft_id", draftID,
			"team", req.TeamName,
			"player_id", req.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RevertPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RevertPick")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	pickNumber, err := strconv.Atoi(strings.TrimSpace(r.PathValue("pickNumber")))
	if err != nil || pickNumber <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: pick number must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	state, err := h.draftService.Revert(ctx, draftID, pickNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "revert pick failed", "draft_id", draftID, "pick_number", pickNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, state)
}

func (h *Handler) RestartDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RestartDraft")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	state, err := h.draftService.Restart(ctx, draftID)
	if err != nil {
		h.logger.WarnContext(ctx, "restart draft failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, state)
}

func (h *Handler) ListAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailablePlayers")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	players, err := h.draftService.AvailablePlayers(ctx, draftID)
	if err != nil {
		h.logger.WarnContext(ctx, "list available players failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, players)
}

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	teamName := strings.TrimSpace(r.PathValue("teamName"))
	grid, err := h.draftService.TeamRoster(ctx, draftID, teamName)
	if err != nil {
		h.logger.WarnContext(ctx, "get team roster failed", "draft_id", draftID, "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, grid)
}

func (h *Handler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPlayers")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	teamName := strings.TrimSpace(r.PathValue("teamName"))
	players, err := h.draftService.TeamPlayers(ctx, draftID, teamName)
	if err != nil {
		h.logger.WarnContext(ctx, "list team players failed", "draft_id", draftID, "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, players)
}
