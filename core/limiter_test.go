package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurnLimiterEnforcesBudget(t *testing.T) {
	tl := NewTurnLimiter(3)

	assert.NoError(t, tl.Increment())
	assert.NoError(t, tl.Increment())
	assert.NoError(t, tl.Increment())
	assert.Error(t, tl.Increment())
	assert.Equal(t, 3, tl.Count())
}

func TestTurnLimiterUnlimited(t *testing.T) {
	tl := NewTurnLimiter(0)
	for i := 0; i < 100; i++ {
		assert.NoError(t, tl.Increment())
	}
	assert.Equal(t, -1, tl.Remaining())
}

func TestTurnLimiterRemaining(t *testing.T) {
	tl := NewTurnLimiter(5)
	assert.Equal(t, 5, tl.Remaining())
	assert.NoError(t, tl.Increment())
	assert.Equal(t, 4, tl.Remaining())
}
