package core

import (
	"fmt"
	"sync"
)

// TurnLimiter bounds the number of model-call/dispatch cycles within a
// single conversation run. A fresh limiter is created per RunConversation
// invocation, so nested delegations budget their turns independently.
type TurnLimiter struct {
	max   int
	count int
	mu    sync.Mutex
}

// NewTurnLimiter creates a limiter allowing max turns.
// If max == 0, turns are unlimited.
func NewTurnLimiter(max int) *TurnLimiter {
	return &TurnLimiter{max: max}
}

// Increment consumes one turn and returns an error once the budget is
// exhausted.
func (tl *TurnLimiter) Increment() error {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	if tl.max > 0 && tl.count >= tl.max {
		return fmt.Errorf("exceeded max turns: %d", tl.max)
	}
	tl.count++

	return nil
}

// Count returns the number of turns consumed so far.
func (tl *TurnLimiter) Count() int {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	return tl.count
}

// Remaining returns how many turns are left, or -1 when unlimited.
func (tl *TurnLimiter) Remaining() int {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	if tl.max == 0 {
		return -1
	}

	return tl.max - tl.count
}
