// Package profiler logs frame rate, frame time and memory statistics at a fixed interval.
package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-lit/common"
)

// Profiler tracks frame rate and memory statistics for performance monitoring.
// It is driven by the frame loop and is not safe for concurrent use.
type Profiler struct {
	logger         *slog.Logger
	now            func() time.Time
	updateInterval time.Duration

	frameCount     int
	frameTime      time.Duration
	worstFrame     time.Duration
	lastTime       time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// Stats is one interval's summary.
type Stats struct {
	FPS         float64
	AvgFrame    time.Duration
	WorstFrame  time.Duration
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	MaxPauseUs  uint64
	SysMB       float64
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	p.logger = common.LoggerOr(p.logger)
	p.lastTime = p.now()
	return p
}

// Tick records one frame. When the update interval has elapsed it logs and returns the
// interval's statistics.
//
// Parameters:
//   - frameTime: how long the frame took
//
// Returns:
//   - Stats: the interval summary, valid when the second result is true
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick(frameTime time.Duration) (Stats, bool) {
	p.frameCount++
	p.frameTime += frameTime
	p.worstFrame = max(p.worstFrame, frameTime)

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	stats := Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		AvgFrame:    p.frameTime / time.Duration(p.frameCount),
		WorstFrame:  p.worstFrame,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}

	// PauseNs is a circular buffer of the last 256 GC pauses.
	start := p.lastGCCount
	if stats.GCCount-start > 256 {
		start = stats.GCCount - 256
	}
	for i := start; i < stats.GCCount; i++ {
		stats.MaxPauseUs = max(stats.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
	}

	p.logger.Info("frame stats",
		"fps", stats.FPS,
		"avg_frame", stats.AvgFrame,
		"worst_frame", stats.WorstFrame,
		"heap_mb", stats.HeapMB,
		"alloc_rate_mb", stats.AllocRateMB,
		"gc", stats.GCCount,
		"max_pause_us", stats.MaxPauseUs,
		"sys_mb", stats.SysMB,
	)

	p.frameCount = 0
	p.frameTime = 0
	p.worstFrame = 0
	p.lastTime = currentTime
	p.lastGCCount = stats.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return stats, true
}
