package console

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupRunsInReverseOrder(t *testing.T) {
	h := NewTerminalCleanupHandler()
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		h.Register(func() error {
			order = append(order, i)
			return nil
		})
	}

	require.NoError(t, h.Cleanup())
	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestCleanupRunsOnce(t *testing.T) {
	h := NewTerminalCleanupHandler()
	calls := 0
	h.Register(func() error {
		calls++
		return nil
	})

	require.NoError(t, h.Cleanup())
	require.NoError(t, h.Cleanup())
	assert.Equal(t, 1, calls)
}

func TestCleanupJoinsErrors(t *testing.T) {
	h := NewTerminalCleanupHandler()
	errA := errors.New("restore failed")
	errB := errors.New("flush failed")
	var reported []error
	h.OnError = func(err error) { reported = append(reported, err) }

	h.Register(func() error { return errA })
	h.Register(func() error { return nil })
	h.Register(func() error { return errB })

	err := h.Cleanup()
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, []error{errB, errA}, reported)
}

func TestEnsureCleanupOnPanic(t *testing.T) {
	h := NewTerminalCleanupHandler()
	released := false
	h.Register(func() error {
		released = true
		return nil
	})

	assert.PanicsWithValue(t, "boom", func() {
		defer h.EnsureCleanup()
		panic("boom")
	})
	assert.True(t, released)
}

func TestEnsureCleanupOnNormalReturn(t *testing.T) {
	h := NewTerminalCleanupHandler()
	released := false
	h.Register(func() error {
		released = true
		return nil
	})

	func() {
		defer h.EnsureCleanup()
	}()
	assert.True(t, released)
}

func TestCleanupStopsSignalHandling(t *testing.T) {
	h := NewTerminalCleanupHandler()
	h.HandleSignals()
	h.HandleSignals()

	require.NoError(t, h.Cleanup())
	require.NoError(t, h.Cleanup())
}
