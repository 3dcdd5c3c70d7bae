package httpapi

import (
	"fmt"
	"net/http"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/usecase"
)

type runSimulationRequest struct {
	Teams      []string `json:"teams" validate:"required,min=2,dive,required"`
	RosterSize int      `json:"roster_size" validate:"required,min=1"`
	Strategy   string   `json:"strategy" validate:"required,oneof=adp category random"`
	Seed       int64    `json:"seed"`
}

// RunSimulation drafts a full league once under one strategy and returns the
// picks with final roto ranks.
func (h *Handler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSimulation")
	defer span.End()

	var req runSimulationRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sim, err := h.simulationService.Simulate(ctx, usecase.SimulationParams{
		Teams:      req.Teams,
		RosterSize: req.RosterSize,
		Seed:       req.Seed,
	}, usecase.Strategy(req.Strategy))
	if err != nil {
		h.logger.WarnContext(ctx, "simulation failed", "strategy", req.Strategy, "error", err)
		writeError(ctx, w, fmt.Errorf("run simulation: %w", err))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sim)
}
