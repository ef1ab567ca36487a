package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b := New("vendor", WithFailureThreshold(3))

	for range 2 {
		tripped, change := b.RecordFailure()
		assert.False(t, tripped)
		assert.False(t, change.Opened)
	}

	tripped, change := b.RecordFailure()
	assert.True(t, tripped)
	assert.True(t, change.Opened)
	assert.True(t, b.IsOpen())
}

func TestBreakerClosesAfterSuccesses(t *testing.T) {
	b := New("vendor", WithFailureThreshold(1), WithSuccessThreshold(2))

	b.RecordFailure()
	assert.True(t, b.IsOpen())

	healthy, _ := b.RecordSuccess()
	assert.False(t, healthy)

	healthy, change := b.RecordSuccess()
	assert.True(t, healthy)
	assert.True(t, change.Closed)
	assert.False(t, b.IsOpen())
}

func TestBreakerSuccessResetsFailureStreak(t *testing.T) {
	b := New("vendor", WithFailureThreshold(2))

	b.RecordFailure()
	b.RecordSuccess()
	tripped, _ := b.RecordFailure()

	assert.False(t, tripped)
	assert.False(t, b.IsOpen())
}

func TestBreakerReset(t *testing.T) {
	b := New("vendor", WithFailureThreshold(1))
	b.RecordFailure()
	assert.True(t, b.IsOpen())

	b.Reset()
	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
}
