package mendix

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sorenmh/infrastructure-shared/package-browser/metrics"
	"github.com/sorenmh/infrastructure-shared/package-browser/models"
)

type instrumentedSource struct {
	next   PackagesSource
	logger *zap.Logger
}

// Instrument wraps a source so every call is logged and counted. It never retries.
func Instrument(next PackagesSource, logger *zap.Logger) PackagesSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &instrumentedSource{next: next, logger: logger}
}

func (s *instrumentedSource) FetchPackages(ctx context.Context, appID string, limit, offset int) (*models.PackagesPage, error) {
	start := time.Now()
	page, err := s.next.FetchPackages(ctx, appID, limit, offset)
	elapsed := time.Since(start)

	metrics.PackageFetchDuration.Observe(elapsed.Seconds())
	outcome := Outcome(err)
	metrics.PackageFetchesTotal.WithLabelValues(outcome).Inc()

	fields := []zap.Field{
		zap.String("app_id", appID),
		zap.Int("limit", limit),
		zap.Int("offset", offset),
		zap.String("outcome", outcome),
		zap.Duration("duration", elapsed),
	}

	if err != nil {
		s.logger.Warn("packages fetch failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	metrics.PackagesReturned.Add(float64(len(page.Packages)))
	s.logger.Info("packages fetched", append(fields, zap.Int("count", len(page.Packages)))...)
	return page, nil
}

// Outcome labels an error returned by a PackagesSource
func Outcome(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrUnauthorized):
		return metrics.OutcomeUnauthorized
	case errors.Is(err, ErrForbidden):
		return metrics.OutcomeForbidden
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.As(err, &apiErr):
		return metrics.OutcomeAPIError
	default:
		return metrics.OutcomeError
	}
}
