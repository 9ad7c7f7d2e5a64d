package vmremote

import (
	"fmt"
	"sync"
	"time"
)

// Watcher polls the engine's dirty flag and fans the result out to
// callbacks. The protocol offers no push mechanism, so change detection is
// polling or nothing; the watcher exists so applications don't each rebuild
// the same loop. It is strictly optional: nothing here runs unless Start
// is called.
type Watcher struct {
	client    *Client
	mu        sync.RWMutex
	isRunning bool
	stopChan  chan struct{}
	doneChan  chan struct{}

	// Adaptive polling
	baseInterval    time.Duration // interval right after a dirty poll (20ms)
	maxInterval     time.Duration // ceiling while parameters stay clean (200ms)
	currentInterval time.Duration
	cleanCount      int // consecutive clean polls

	// Callbacks fired from the watch goroutine
	onDirty []func()

	// Performance tracking
	pollCount        int64
	lastPollDuration time.Duration
	maxPollDuration  time.Duration
}

// NewWatcher creates a watcher over a logged-in client.
func NewWatcher(client *Client) *Watcher {
	return &Watcher{
		client:          client,
		baseInterval:    20 * time.Millisecond,
		maxInterval:     200 * time.Millisecond,
		currentInterval: 20 * time.Millisecond,
	}
}

// OnDirty registers a callback fired from the watch goroutine whenever a
// poll reports changed parameters. Register before Start.
func (w *Watcher) OnDirty(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onDirty = append(w.onDirty, fn)
}

// SetPollInterval adjusts the adaptive polling band (minimum 10ms base).
func (w *Watcher) SetPollInterval(base, max time.Duration) error {
	if base < 10*time.Millisecond {
		return fmt.Errorf("poll interval cannot be less than 10ms")
	}
	if max < base {
		max = base
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.baseInterval = base
	w.maxInterval = max
	w.currentInterval = base
	return nil
}

// Start begins dirty-flag polling.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return fmt.Errorf("watcher is already running")
	}
	if !w.client.LoggedIn() {
		return fmt.Errorf("watcher requires a logged-in client")
	}

	w.stopChan = make(chan struct{})
	w.doneChan = make(chan struct{})
	w.isRunning = true
	w.cleanCount = 0
	w.currentInterval = w.baseInterval

	go w.watchLoop(w.stopChan, w.doneChan)

	return nil
}

// Stop halts polling and waits for the watch goroutine to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return nil // Already stopped
	}
	close(w.stopChan)
	w.isRunning = false
	done := w.doneChan
	w.mu.Unlock()

	<-done
	return nil
}

// IsRunning returns whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.isRunning
}

// Stats returns poll count and last/max poll durations.
func (w *Watcher) Stats() (polls int64, last, max time.Duration) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pollCount, w.lastPollDuration, w.maxPollDuration
}

func (w *Watcher) watchLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(w.interval())
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
			w.poll()
			timer.Reset(w.interval())
		}
	}
}

func (w *Watcher) interval() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.currentInterval
}

func (w *Watcher) poll() {
	start := time.Now()
	dirty, err := w.client.ParametersDirty()
	elapsed := time.Since(start)

	w.mu.Lock()
	w.pollCount++
	w.lastPollDuration = elapsed
	if elapsed > w.maxPollDuration {
		w.maxPollDuration = elapsed
	}

	if err != nil {
		// Keep polling: no-server conditions clear once the engine is
		// back, and the handler decides how loud to be meanwhile.
		w.mu.Unlock()
		w.client.errorHandler.HandleError(fmt.Errorf("dirty poll failed: %w", err))
		return
	}

	if !dirty {
		// Clean - back off gradually for power efficiency
		w.cleanCount++
		if w.cleanCount >= 5 && w.currentInterval < w.maxInterval {
			w.currentInterval *= 2
			if w.currentInterval > w.maxInterval {
				w.currentInterval = w.maxInterval
			}
			w.cleanCount = 0
		}
		w.mu.Unlock()
		return
	}

	// Dirty - reset to fast polling and notify
	w.cleanCount = 0
	w.currentInterval = w.baseInterval
	callbacks := make([]func(), len(w.onDirty))
	copy(callbacks, w.onDirty)
	w.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}
