// Package warmup exercises the normalization pipeline at startup so the
// first real request does not pay for pool population and regex engine
// warm-up.
package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_sentiment_flow/internal/ports"
	"github.com/baditaflorin/go_sentiment_flow/pkg/social"
)

// Config defines configuration for warming up the pipeline.
type Config struct {
	// Number of concurrent warmup routines to run.
	Concurrency int
	// Number of iterations per routine.
	Iterations int
	// Warmup duration (0 means no time limit).
	Duration time.Duration
	// Whether to perform GC after warmup.
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency: runtime.NumCPU(),
		Iterations:  500,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles pipeline warmup operations.
type Manager struct {
	logger      ports.Logger
	normalizers []ports.Normalizer
	config      Config
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered normalizers and the
// social signal detector.
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting pipeline warmup",
		"normalizers", len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	samples := sampleTexts()

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-warmupCtx.Done():
					return
				default:
				}

				sample := samples[j%len(samples)]
				for _, normalizer := range wm.normalizers {
					_ = normalizer.Normalize(sample)
				}
				_ = social.LooksLikeSocialMedia(sample)
			}
		}()
	}
	wg.Wait()

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("Pipeline warmup completed",
		"duration", time.Since(startTime),
	)
}

// sampleTexts returns inputs covering the pipeline's branches: plain prose,
// social-media style text, HTML, contact patterns and long text.
func sampleTexts() []string {
	long := strings.Repeat("the quick brown fox jumps over the lazy dog ", 20)
	return []string{
		"The quick brown fox jumps over the lazy dog.",
		"@alice loving the new release! #golang #opensource 🎉🎉",
		"<p>Check <b>this</b> out: https://example.com &amp; mail me at a@b.com</p>",
		"Call me at (555) 123-4567, I won't be home until 8",
		"omg lol that is hilarious tbh",
		long,
	}
}
