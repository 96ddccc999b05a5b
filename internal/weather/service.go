package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/smhi-forecast-digest/internal/forecast"
)

var (
	// ErrNoProviders is returned when the service has nothing to fetch from.
	ErrNoProviders = errors.New("no weather providers configured")
	// ErrAllProvidersFailed wraps the last provider error when every provider failed.
	ErrAllProvidersFailed = errors.New("all weather providers failed")
)

// Service fetches a feed and derives the summarized views from it.
type Service struct {
	providers  []FeedProvider
	aggregator *forecast.Aggregator
	now        func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the reference clock used for slots and the daily digest.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new Service. Providers are tried in order until one succeeds.
func NewService(aggregator *forecast.Aggregator, providers []FeedProvider, opts ...ServiceOption) *Service {
	if aggregator == nil {
		aggregator = forecast.NewAggregator()
	}
	s := &Service{
		providers:  providers,
		aggregator: aggregator,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// fetch returns the feed of the first provider that answers.
func (s *Service) fetch(ctx context.Context, loc Location) (forecast.Feed, string, error) {
	if len(s.providers) == 0 {
		log.Printf("ERROR: No providers available to fetch forecast for %s", loc)
		return forecast.Feed{}, "", ErrNoProviders
	}

	var lastErr error
	for _, p := range s.providers {
		feed, err := p.FetchFeed(ctx, loc)
		if err != nil {
			log.Printf("WARN: provider %s fetch failed for %s: %v", p.Name(), loc, err)
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		log.Printf("DEBUG: provider %s returned %d entries for %s", p.Name(), len(feed.TimeSeries), loc)
		return feed, p.Name(), nil
	}
	return forecast.Feed{}, "", fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// BuildReport fetches the feed once and computes the current observation, the
// slot forecast and the daily digest concurrently over it.
func (s *Service) BuildReport(ctx context.Context, loc Location) (Report, error) {
	feed, provider, err := s.fetch(ctx, loc)
	if err != nil {
		return Report{}, err
	}

	now := s.now().UTC()
	report := Report{
		ID:           uuid.NewString(),
		Location:     loc,
		Provider:     provider,
		GeneratedAt:  now,
		ApprovedTime: feed.ApprovedTime,
	}

	// The feed is only read, so the three views need no coordination.
	var g errgroup.Group
	g.Go(func() error {
		cur, err := s.aggregator.Current(feed.TimeSeries)
		report.Current = cur
		return err
	})
	g.Go(func() error {
		slots, err := s.aggregator.Slots(feed.TimeSeries, now)
		report.Slots = slots
		return err
	})
	g.Go(func() error {
		daily, err := s.aggregator.Daily(feed.TimeSeries, now)
		report.Daily = daily
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("aggregate %s feed for %s: %w", provider, loc, err)
	}

	return report, nil
}

// Coverage fetches the feed and analyzes its time span and parameters.
func (s *Service) Coverage(ctx context.Context, loc Location) (CoverageReport, error) {
	feed, provider, err := s.fetch(ctx, loc)
	if err != nil {
		return CoverageReport{}, err
	}

	cov, err := s.aggregator.Analyze(feed.TimeSeries)
	if err != nil {
		return CoverageReport{}, fmt.Errorf("analyze %s feed for %s: %w", provider, loc, err)
	}
	if !cov.Ordered {
		log.Printf("WARN: %s feed for %s is not in chronological order", provider, loc)
	}

	return CoverageReport{
		Location:      loc,
		Provider:      provider,
		ApprovedTime:  feed.ApprovedTime,
		ReferenceTime: feed.ReferenceTime,
		Coverage:      cov,
	}, nil
}
