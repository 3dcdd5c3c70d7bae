package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nolen4242/fantasy-baseball-draft-helper/external/projections"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/config"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/draft"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/roster"
	cacherepo "github.com/nolen4242/fantasy-baseball-draft-helper/internal/infrastructure/repository/cache"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/infrastructure/repository/file"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/infrastructure/repository/memory"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/infrastructure/repository/postgres"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/interfaces/httpapi"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/ml"
	basecache "github.com/nolen4242/fantasy-baseball-draft-helper/internal/platform/cache"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/platform/logging"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/platform/resilience"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	var (
		playerRepo player.Repository
		draftRepo  draft.Repository
		rosterRepo roster.Repository
		closeDB    func() error
	)

	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return nil, err
		}
		playerRepo = postgres.NewPlayerRepository(db)
		draftRepo = postgres.NewDraftRepository(db)
		rosterRepo = postgres.NewRosterRepository(db)
		closeDB = db.Close
	case config.StorageFile:
		// Drafts and rosters survive restarts on disk. The player pool is
		// seeded and replaced through the load and refresh endpoints.
		playerRepo = memory.NewPlayerRepository(memory.SeedPlayers())
		draftRepo = file.NewDraftRepository(cfg.DataDir)
		rosterRepo = file.NewRosterRepository(cfg.DataDir)
	default:
		playerRepo = memory.NewPlayerRepository(memory.SeedPlayers())
		draftRepo = memory.NewDraftRepository()
		rosterRepo = memory.NewRosterRepository()
	}

	if cfg.CacheEnabled {
		playerRepo = cacherepo.NewPlayerRepository(playerRepo, basecache.NewStore(cfg.CacheTTL))
	}

	var source usecase.ProjectionsSource
	if cfg.ProjectionsEnabled {
		source = projections.NewClient(projections.ClientConfig{
			BaseURL:    cfg.ProjectionsBaseURL,
			Token:      cfg.ProjectionsToken,
			Timeout:    cfg.ProjectionsTimeout,
			MaxRetries: cfg.ProjectionsMaxRetries,
			Logger:     logging.NewJSON(feedLogLevel(cfg.LogLevel)),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ProjectionsCircuitEnabled,
				FailureThreshold: cfg.ProjectionsCircuitFailureCount,
				OpenTimeout:      cfg.ProjectionsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ProjectionsCircuitHalfOpenMaxReq,
			},
		})
	}

	var predictor usecase.ValuePredictor
	if cfg.ModelPath != "" {
		model, err := ml.Load(cfg.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("load model %s: %w", cfg.ModelPath, err)
		}
		predictor = &modelPredictor{model: model}
		logger.Info("value model loaded", "path", cfg.ModelPath)
	}

	playerSvc := usecase.NewPlayerService(playerRepo, source, logger)
	draftSvc := usecase.NewDraftService(draftRepo, rosterRepo, playerRepo, logger)
	standingsSvc := usecase.NewStandingsService(draftRepo, playerRepo, logger)
	recommendSvc := usecase.NewRecommendService(draftRepo, playerRepo, predictor, logger)
	simulationSvc := usecase.NewSimulationService(playerRepo, logger)

	handler := httpapi.NewHandler(playerSvc, draftSvc, standingsSvc, recommendSvc, simulationSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	if closeDB != nil {
		server.RegisterOnShutdown(func() {
			if err := closeDB(); err != nil {
				logger.Warn("close database", "error", err)
			}
		})
	}

	return server, nil
}

// modelPredictor adapts the trained forest to the recommendation port.
type modelPredictor struct {
	model *ml.Model
}

func (p *modelPredictor) PredictPlayerValue(candidate player.Player, pickCtx usecase.PredictionContext) (float64, error) {
	return p.model.PredictPlayerValue(candidate, ml.PickContext{
		PickNumber: pickCtx.PickNumber,
		Round:      pickCtx.Round,
		TotalTeams: pickCtx.TotalTeams,
		Roster:     pickCtx.Roster,
		Available:  pickCtx.Available,
	})
}

func feedLogLevel(level slog.Level) logging.Level {
	switch {
	case level <= slog.LevelDebug:
		return logging.LevelDebug
	case level <= slog.LevelInfo:
		return logging.LevelInfo
	case level <= slog.LevelWarn:
		return logging.LevelWarn
	default:
		return logging.LevelError
	}
}
