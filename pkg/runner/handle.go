package runner

import (
	"context"
	"sync"
)

// Handle observes and controls one run.
type Handle struct {
	updates chan Status
	done    chan struct{}
	cancel  context.CancelFunc

	mu      sync.Mutex
	outcome Outcome
}

// Updates streams one Status per dispatched action, in order. The channel is
// buffered for the whole run and closed before Done fires.
func (h *Handle) Updates() <-chan Status { return h.updates }

// Done is closed once the outcome is available.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Cancel asks the run to stop before its next action. Actions already
// dispatched are not undone.
func (h *Handle) Cancel() { h.cancel() }

// Wait blocks until the run ends and returns its outcome.
func (h *Handle) Wait() Outcome {
	<-h.done
	return h.Outcome()
}

// Outcome returns the terminal outcome, or a Running outcome while in flight.
func (h *Handle) Outcome() Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outcome
}

func (h *Handle) finish(o Outcome) {
	h.mu.Lock()
	h.outcome = o
	h.mu.Unlock()
	close(h.updates)
	close(h.done)
}
