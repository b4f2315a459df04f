package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/vlgmic/warehouse-ingest/api"
	"github.com/vlgmic/warehouse-ingest/infra"
	"github.com/vlgmic/warehouse-ingest/repositories"
	"github.com/vlgmic/warehouse-ingest/usecases"
	"github.com/vlgmic/warehouse-ingest/utils"
)

func RunServer() error {
	// This is where we read the environment variables and set up the
	// configuration for the application.
	apiConfig := api.Configuration{
		Env:                 utils.GetEnv("ENV", "development"),
		AppName:             "warehouse-ingest",
		Port:                utils.GetRequiredEnv[string]("PORT"),
		RequestLoggingLevel: utils.GetEnv("REQUEST_LOGGING_LEVEL", "all"),
		DefaultTimeout:      time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 30)) * time.Second,
		MaxCsvSize:          int64(utils.GetEnv("MAX_CSV_SIZE_MB", 64)) << 20,
	}
	pgConfig := infra.PgConfig{
		Hostname:           utils.GetEnv("PG_HOSTNAME", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", ""),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Database:           utils.GetRequiredEnv[string]("PG_DATABASE"),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", infra.DEFAULT_MAX_CONNECTIONS),
	}
	hdfsConfig := infra.HdfsConfig{
		PrimaryUrl: utils.GetRequiredEnv[string]("HDFS_PRIMARY_URL"),
		StandbyUrl: utils.GetEnv("HDFS_STANDBY_URL", ""),
		Username:   utils.GetRequiredEnv[string]("HDFS_USERNAME"),
		Timeout:    time.Duration(utils.GetEnv("HDFS_TIMEOUT_SECOND", 30)) * time.Second,
	}
	externalSchema := utils.GetEnv("SCHEMA_EXTERNAL", "ext")
	internalSchema := utils.GetEnv("SCHEMA_INTERNAL", "int")

	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		return errors.Wrap(err, "failed to create the warehouse connection pool")
	}
	defer pool.Close()

	// The process refuses to start without a live hdfs endpoint.
	hdfsRepository, err := infra.SelectWebHdfsEndpoint(ctx, hdfsConfig)
	if err != nil {
		return err
	}

	repos := repositories.NewRepositories(pool, hdfsRepository)
	uc := usecases.NewUsecases(repos,
		usecases.WithExternalSchema(externalSchema),
		usecases.WithInternalSchema(internalSchema),
	)

	router := api.InitRouter(ctx, apiConfig)
	server := api.NewServer(router, apiConfig, uc)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "error while serving the app: "+err.Error())
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "error while shutting down the server")
	}

	return nil
}
