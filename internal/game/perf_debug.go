package game

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	perfLowFpsThreshold = 50.0
	perfLowFpsDuration  = 3 * time.Second
	perfLogInterval     = 3 * time.Second
)

// maybeLogPerfDrop logs render pass timings once the frame rate has stayed
// below the threshold for a while, then at most once per interval.
func (g *Game) maybeLogPerfDrop() {
	if !g.perfDebugEnabled {
		return
	}
	g.checkPerf(ebiten.ActualFPS(), time.Now())
}

func (g *Game) checkPerf(fps float64, now time.Time) bool {
	if fps >= perfLowFpsThreshold {
		g.perfLowFpsSince = time.Time{}
		g.perfLastPerfLog = time.Time{}
		return false
	}

	if g.perfLowFpsSince.IsZero() {
		g.perfLowFpsSince = now
		return false
	}

	if now.Sub(g.perfLowFpsSince) < perfLowFpsDuration {
		return false
	}

	if !g.perfLastPerfLog.IsZero() && now.Sub(g.perfLastPerfLog) < perfLogInterval {
		return false
	}

	g.perfLastPerfLog = now
	g.logPerfSnapshot(fps)
	return true
}

func (g *Game) logPerfSnapshot(fps float64) {
	w, h := g.renderer.Size()
	log.Printf("[Perf] low fps=%.1f tps=%.1f screen=%dx%d enemies=%d items=%d %s",
		fps, ebiten.ActualTPS(), w, h,
		len(g.session.Enemies()), g.session.ItemsLeft(),
		g.monitor.GetCurrentMetrics())
}
