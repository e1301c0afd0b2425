package monitoring

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Monitor tracks batch progress and goroutine usage while games run concurrently
type Monitor struct {
	mu             sync.RWMutex
	logger         zerolog.Logger
	total          int
	completed      int
	failed         int
	started        time.Time
	baseline       int
	current        int
	peak           int
	checkInterval  time.Duration
	alertThreshold int
	stopChan       chan struct{}
	stopOnce       sync.Once
	launched       bool
	done           chan struct{}
}

// Metrics is a snapshot of a Monitor
type Metrics struct {
	Total      int           `json:"total"`
	Completed  int           `json:"completed"`
	Failed     int           `json:"failed"`
	Elapsed    time.Duration `json:"elapsed"`
	GamesPerS  float64       `json:"games_per_second"`
	Goroutines int           `json:"goroutines"`
	Baseline   int           `json:"baseline"`
	Peak       int           `json:"peak"`
}

// NewMonitor creates a monitor for a batch of total games.
// interval <= 0 disables periodic reporting.
func NewMonitor(total int, interval time.Duration, logger zerolog.Logger) *Monitor {
	baseline := runtime.NumGoroutine()
	return &Monitor{
		logger:         logger.With().Str("component", "Monitor").Logger(),
		total:          total,
		started:        time.Now(),
		baseline:       baseline,
		current:        baseline,
		peak:           baseline,
		checkInterval:  interval,
		alertThreshold: 1000,
		stopChan:       make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// Start begins periodic reporting until ctx is done or Stop is called
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	m.started = time.Now()
	m.launched = true
	m.mu.Unlock()

	if m.checkInterval <= 0 {
		close(m.done)
		return
	}

	go m.run(ctx)
	m.logger.Debug().
		Int("baseline", m.baseline).
		Dur("interval", m.checkInterval).
		Msg("Started monitoring")
}

// Stop ends periodic reporting and waits for the reporter to exit
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })

	m.mu.RLock()
	launched := m.launched
	m.mu.RUnlock()
	if launched {
		<-m.done
	}
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.report()
		case <-ctx.Done():
			return
		case <-m.stopChan:
			return
		}
	}
}

// GameFinished records one completed game; failed games are counted separately
func (m *Monitor) GameFinished(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.failed++
		return
	}
	m.completed++
}

// Sample refreshes the goroutine counters
func (m *Monitor) Sample() int {
	current := runtime.NumGoroutine()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = current
	if current > m.peak {
		m.peak = current
	}
	return current
}

func (m *Monitor) report() {
	m.Sample()
	metrics := m.Metrics()

	m.logger.Info().
		Int("completed", metrics.Completed).
		Int("failed", metrics.Failed).
		Int("total", metrics.Total).
		Float64("games_per_second", metrics.GamesPerS).
		Int("goroutines", metrics.Goroutines).
		Msg("Arena progress")

	if metrics.Goroutines > m.alertThreshold {
		m.logger.Warn().
			Int("current", metrics.Goroutines).
			Int("threshold", m.alertThreshold).
			Msg("High goroutine count detected - possible leak")
	}
}

// Metrics returns the current counters
func (m *Monitor) Metrics() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	elapsed := time.Since(m.started)
	var rate float64
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(m.completed) / s
	}

	return Metrics{
		Total:      m.total,
		Completed:  m.completed,
		Failed:     m.failed,
		Elapsed:    elapsed,
		GamesPerS:  rate,
		Goroutines: m.current,
		Baseline:   m.baseline,
		Peak:       m.peak,
	}
}
