package batch

import "sync"

// CircuitState represents the state of the circuit breaker
type CircuitState int

const (
	// CircuitClosed lets the batch continue
	CircuitClosed CircuitState = iota
	// CircuitOpen stops the batch; remaining calls are never issued
	CircuitOpen
)

// DefaultMaxConsecutiveFailures is the failure streak that stops a search batch
const DefaultMaxConsecutiveFailures = 3

// CircuitBreaker trips after maxFailures consecutive failures. Any success
// resets the streak. There is no half-open state: once open it stays open for
// the rest of the run.
type CircuitBreaker struct {
	maxFailures  int
	state        CircuitState
	failureCount int
	mu           sync.RWMutex
}

// NewCircuitBreaker creates a breaker; maxFailures <= 0 falls back to the default
func NewCircuitBreaker(maxFailures int) *CircuitBreaker {
	if maxFailures <= 0 {
		maxFailures = DefaultMaxConsecutiveFailures
	}
	return &CircuitBreaker{
		maxFailures: maxFailures,
		state:       CircuitClosed,
	}
}

// Record registers one call outcome and returns the resulting state
func (cb *CircuitBreaker) Record(success bool) CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if success {
		cb.failureCount = 0
		return cb.state
	}

	cb.failureCount++
	if cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
	return cb.state
}

// IsOpen reports whether the breaker has tripped
func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state == CircuitOpen
}

// GetFailureCount returns the current consecutive failure count
func (cb *CircuitBreaker) GetFailureCount() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.failureCount
}
