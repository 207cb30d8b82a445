package gesture

import "sync"

// DefaultWindow is the default stability window size. Small windows keep
// latency low; a single misclassified frame is still enough to break the
// window and suppress a spurious transition.
const DefaultWindow = 2

// Stabilizer debounces the raw per-frame label stream. It keeps a bounded
// FIFO of the last N labels and reports a stable label only while the whole
// window agrees; any disagreement inside the window yields None. Push runs
// on the pipeline goroutine while Reset may come from the tray or API side,
// so access is mutex-guarded.
type Stabilizer struct {
	mu      sync.Mutex
	window  int
	history []Label
	stable  Label
}

// NewStabilizer creates a Stabilizer with the given window size.
// Sizes below 1 are clamped to 1, which reduces the filter to a
// pass-through.
func NewStabilizer(window int) *Stabilizer {
	if window < 1 {
		window = 1
	}
	return &Stabilizer{
		window:  window,
		history: make([]Label, 0, window),
	}
}

// Push appends a raw label and returns the stable label for this frame plus
// whether it changed relative to the previous frame's stable value. A
// transition from stable A to stable B is reported exactly once, on the
// frame where the window first becomes uniformly B.
func (s *Stabilizer) Push(raw Label) (Label, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) >= s.window {
		s.history = append(s.history[:0], s.history[1:]...)
	}
	s.history = append(s.history, raw)

	next := None
	if len(s.history) == s.window {
		next = s.history[0]
		for _, l := range s.history[1:] {
			if l != next {
				next = None
				break
			}
		}
	}

	changed := next != s.stable
	s.stable = next
	return next, changed
}

// Stable returns the most recent stable label.
func (s *Stabilizer) Stable() Label {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stable
}

// Window returns the configured window size.
func (s *Stabilizer) Window() int {
	return s.window
}

// Reset clears the history and the stable label, as when the hand is lost
// or tracking is toggled off.
func (s *Stabilizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = s.history[:0]
	s.stable = None
}
