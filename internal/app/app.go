package app

import (
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/fleetops/fleet-sync/internal/config"
	"github.com/fleetops/fleet-sync/internal/domain/team"
	"github.com/fleetops/fleet-sync/internal/domain/teamcode"
	cacherepo "github.com/fleetops/fleet-sync/internal/infrastructure/repository/cache"
	"github.com/fleetops/fleet-sync/internal/infrastructure/repository/postgres"
	"github.com/fleetops/fleet-sync/internal/interfaces/httpapi"
	"github.com/fleetops/fleet-sync/internal/platform/cache"
	"github.com/fleetops/fleet-sync/internal/platform/logging"
	"github.com/fleetops/fleet-sync/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	db, err := otelsqlx.Connect("postgres",
		normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	codes, err := teamcode.Load(cfg.TeamCodeMapPath)
	if err != nil {
		return nil, fmt.Errorf("load team code map: %w", err)
	}
	logger.Info("team code map loaded", "entries", codes.Len(), "path", cfg.TeamCodeMapPath)

	var teamRepo team.Repository = postgres.NewTeamRepository(db)
	if cfg.CacheEnabled {
		teamRepo = cacherepo.NewTeamRepository(teamRepo, cache.NewStore(cfg.CacheTTL))
	}
	productionRepo := postgres.NewProductionRepository(db)

	syncSvc := usecase.NewSyncService(teamRepo, productionRepo, codes, cfg.SyncMaxDocuments, logging.Default())
	teamSvc := usecase.NewTeamService(teamRepo)

	handler := httpapi.NewHandler(syncSvc, teamSvc, logger, cfg.SyncMaxBodyBytes)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.SyncToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
