package scheduler

import (
	"bytes"
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/smhi-forecast-digest/internal/report"
	"github.com/i474232898/smhi-forecast-digest/internal/weather"
)

const (
	defaultInterval = 30 * time.Minute
	locationTimeout = 30 * time.Second
)

// Scheduler periodically builds forecast reports for configured locations and
// writes their text rendering to out.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	locations []weather.Location
	interval  time.Duration

	mu  sync.Mutex // serializes writes to out
	out io.Writer
}

// New creates a new Scheduler.
func New(locations []weather.Location, interval time.Duration, service *weather.Service, out io.Writer) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		locations: locations,
		interval:  interval,
		out:       out,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("INFO: scheduler: no locations configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce builds and prints a report for every location concurrently and
// returns the number of locations that failed. Failures are logged only.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	log.Printf("INFO: scheduler: running forecast job for %d locations", len(s.locations))

	var (
		wg     sync.WaitGroup
		failMu sync.Mutex
		failed int
	)
	for _, loc := range s.locations {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, locationTimeout)
			defer cancel()

			if err := s.runLocation(ctx, loc); err != nil {
				log.Printf("ERROR: scheduler: forecast failed for %s: %v", loc, err)
				failMu.Lock()
				failed++
				failMu.Unlock()
			}
		}()
	}
	wg.Wait()

	log.Printf("INFO: scheduler: completed forecast job (%d failed)", failed)
	return failed
}

func (s *Scheduler) runLocation(ctx context.Context, loc weather.Location) error {
	rep, err := s.service.BuildReport(ctx, loc)
	if err != nil {
		return err
	}

	// Render into a buffer first so concurrent reports never interleave.
	var buf bytes.Buffer
	if err := report.Render(&buf, rep); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.out.Write(buf.Bytes())
	return err
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
