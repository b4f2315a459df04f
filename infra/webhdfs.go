package infra

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"

	"github.com/vlgmic/warehouse-ingest/models"
	"github.com/vlgmic/warehouse-ingest/repositories"
	"github.com/vlgmic/warehouse-ingest/utils"
)

type HdfsConfig struct {
	PrimaryUrl string
	StandbyUrl string
	Username   string
	Timeout    time.Duration
}

const probeAttempts = 3

// SelectWebHdfsEndpoint probes the primary namenode and falls back to the
// standby. The choice is made once, at startup: there is no per-call failover
// afterwards. If neither endpoint answers, the process must not start.
func SelectWebHdfsEndpoint(ctx context.Context, config HdfsConfig) (repositories.WebHdfsRepository, error) {
	logger := utils.LoggerFromContext(ctx)

	client := &http.Client{Timeout: config.Timeout}

	var lastErr error
	for _, endpoint := range []string{config.PrimaryUrl, config.StandbyUrl} {
		if endpoint == "" {
			continue
		}
		repo := repositories.NewWebHdfsRepository(endpoint, config.Username, client)
		err := retry.Do(
			func() error {
				return repo.Probe(ctx, "/")
			},
			retry.Context(ctx),
			retry.Attempts(probeAttempts),
			retry.Delay(500*time.Millisecond),
			retry.LastErrorOnly(true),
		)
		if err == nil {
			logger.InfoContext(ctx, "selected webhdfs endpoint", slog.String("endpoint", endpoint))
			return repo, nil
		}
		logger.WarnContext(ctx, "webhdfs endpoint did not answer the liveness probe",
			slog.String("endpoint", endpoint), slog.String("error", err.Error()))
		lastErr = err
	}

	if lastErr == nil {
		lastErr = errors.Wrap(models.ErrHdfsUnreachable, "no webhdfs endpoint configured")
	}
	return repositories.WebHdfsRepository{}, errors.Wrap(lastErr, "neither the primary nor the standby hdfs endpoint responded")
}
