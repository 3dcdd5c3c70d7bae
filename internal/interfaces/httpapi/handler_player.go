package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.playerService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, players)
}

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	players, err := h.playerService.Search(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "search players failed", "query", query, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, players)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

type loadPlayersRequest struct {
	Players []player.Player `json:"players" validate:"required,min=1"`
}

func (h *Handler) LoadPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LoadPlayers")
	defer span.End()

	var req loadPlayersRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	count, err := h.playerService.LoadPlayers(ctx, req.Players)
	if err != nil {
		h.logger.WarnContext(ctx, "load players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"players_loaded": count})
}

func (h *Handler) RefreshPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshPlayers")
	defer span.End()

	count, err := h.playerService.RefreshFromSource(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh players failed", "error", err)
		writeError(ctx, w, fmt.Errorf("refresh player pool: %w", err))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"players_loaded": count})
}
