package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/usecase"
)

type Handler struct {
	playerService     *usecase.PlayerService
	draftService      *usecase.DraftService
	standingsService  *usecase.StandingsService
	recommendService  *usecase.RecommendService
	simulationService *usecase.SimulationService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	draftService *usecase.DraftService,
	standingsService *usecase.StandingsService,
	recommendService *usecase.RecommendService,
	simulationService *usecase.SimulationService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		playerService:     playerService,
		draftService:      draftService,
		standingsService:  standingsService,
		recommendService:  recommendService,
		simulationService: simulationService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
