package monitoring

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Pass identifies one stage of frame rendering.
type Pass int

const (
	PassFloor Pass = iota
	PassWalls
	PassFog
	passCount
)

var passNames = [passCount]string{"floor", "walls", "fog"}

func (p Pass) String() string {
	if p < 0 || p >= passCount {
		return "unknown"
	}
	return passNames[p]
}

// PerformanceMonitor tracks frame and render pass timings
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame

	// Per-pass metrics, nanoseconds of the last frame
	passTime [passCount]atomic.Uint64

	// Statistics
	mutex        sync.RWMutex
	avgFrameTime float64 // exponential moving average, nanoseconds
	startTime    time.Time
}

// averageWeight is the share of the newest frame in the moving average.
const averageWeight = 0.1

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime: time.Now(),
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ft.monitor.recordFrame(time.Since(ft.startTime))
}

func (pm *PerformanceMonitor) recordFrame(d time.Duration) {
	ns := uint64(d.Nanoseconds())
	pm.frameTime.Store(ns)
	count := pm.frameCount.Add(1)

	pm.mutex.Lock()
	if count == 1 {
		pm.avgFrameTime = float64(ns)
	} else {
		pm.avgFrameTime += averageWeight * (float64(ns) - pm.avgFrameTime)
	}
	pm.mutex.Unlock()
}

// PassTimer measures one render pass.
type PassTimer struct {
	monitor   *PerformanceMonitor
	pass      Pass
	startTime time.Time
}

// StartPass begins timing pass p.
func (pm *PerformanceMonitor) StartPass(p Pass) *PassTimer {
	return &PassTimer{
		monitor:   pm,
		pass:      p,
		startTime: time.Now(),
	}
}

// End records the elapsed time of the pass.
func (pt *PassTimer) End() {
	if pt.pass < 0 || pt.pass >= passCount {
		return
	}
	pt.monitor.passTime[pt.pass].Store(uint64(time.Since(pt.startTime).Nanoseconds()))
}

// FrameMetrics is a point-in-time copy of the monitor's counters.
type FrameMetrics struct {
	Frames          uint64
	LastFrame       time.Duration
	AverageFrame    time.Duration
	FramesPerSecond float64
	Passes          map[string]time.Duration
	Uptime          time.Duration
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	pm.mutex.RLock()
	avg := pm.avgFrameTime
	start := pm.startTime
	pm.mutex.RUnlock()

	fps := 0.0
	if avg > 0 {
		fps = float64(time.Second) / avg
	}

	passes := make(map[string]time.Duration, passCount)
	for p := Pass(0); p < passCount; p++ {
		passes[p.String()] = time.Duration(pm.passTime[p].Load())
	}

	return FrameMetrics{
		Frames:          pm.frameCount.Load(),
		LastFrame:       time.Duration(pm.frameTime.Load()),
		AverageFrame:    time.Duration(avg),
		FramesPerSecond: fps,
		Passes:          passes,
		Uptime:          time.Since(start),
	}
}

// String formats the metrics for a log line.
func (m FrameMetrics) String() string {
	return fmt.Sprintf("frames=%d avg=%v fps=%.1f floor=%v walls=%v fog=%v",
		m.Frames, m.AverageFrame, m.FramesPerSecond,
		m.Passes[PassFloor.String()], m.Passes[PassWalls.String()], m.Passes[PassFog.String()])
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	for i := range pm.passTime {
		pm.passTime[i].Store(0)
	}

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
