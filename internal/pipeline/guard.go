package pipeline

import "sync"

// runGuard serializes runs per video id: at most one concurrent run per
// video, so two writers never race on the same artifacts or history row.
// Runs for different videos proceed in parallel.
type runGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newRunGuard() *runGuard {
	return &runGuard{active: make(map[string]struct{})}
}

// acquire reports whether the video id was free and is now held.
func (g *runGuard) acquire(videoID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[videoID]; busy {
		return false
	}
	g.active[videoID] = struct{}{}
	return true
}

func (g *runGuard) release(videoID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, videoID)
}
