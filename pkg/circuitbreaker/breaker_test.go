package circuitbreaker

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_PassesThroughResult(t *testing.T) {
	cb := NewCircuitBreaker(DefaultConfig("test"))

	value, err := Execute(cb, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestExecute_OpensAfterRepeatedFailures(t *testing.T) {
	cb := NewCircuitBreaker(DefaultConfig("email"))
	cause := errors.New("upstream 503")

	for i := 0; i < 3; i++ {
		_, err := Execute(cb, func() (string, error) { return "", cause })
		assert.ErrorIs(t, err, cause)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	calls := 0
	_, err := Execute(cb, func() (string, error) {
		calls++
		return "ok", nil
	})
	require.Error(t, err)
	assert.True(t, IsOpen(err))
	assert.Contains(t, err.Error(), "circuit breaker 'email' is open")
	assert.Equal(t, 0, calls)
}

func TestFormatError_LeavesOtherErrorsAlone(t *testing.T) {
	cause := errors.New("plain")
	assert.Same(t, cause, FormatError("x", cause))
	assert.False(t, IsOpen(cause))
}
