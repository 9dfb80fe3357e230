package statemachine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSuccessReachesOpened(t *testing.T) {
	var events []State
	m := New(Hooks{Open: func() error { return nil }}, func(s State) { events = append(events, s) })
	require.NoError(t, m.Open())
	assert.Equal(t, StateOpened, m.State())
	assert.Equal(t, []State{StateOpening, StateOpened}, events)
}

func TestOpenFailureReachesFaulted(t *testing.T) {
	boom := errors.New("boom")
	m := New(Hooks{Open: func() error { return boom }}, nil)
	err := m.Open()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateFaulted, m.State())
}

func TestOpenOnlyPermittedFromCreated(t *testing.T) {
	m := New(Hooks{Open: func() error { return nil }}, nil)
	require.NoError(t, m.Open())
	assert.ErrorIs(t, m.Open(), ErrInvalidTransition)
}

func TestCloseIdempotent(t *testing.T) {
	closes := 0
	m := New(Hooks{Close: func() { closes++ }}, nil)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.Equal(t, 1, closes)
	assert.Equal(t, StateClosed, m.State())
}

func TestCloseFromFaultedRequiresAbort(t *testing.T) {
	m := New(Hooks{Open: func() error { return errors.New("x") }}, nil)
	_ = m.Open()
	assert.ErrorIs(t, m.Close(), ErrMustAbort)
	m.Abort()
	assert.Equal(t, StateClosed, m.State())
}

func TestAbortDuringOpeningNeverReachesOpened(t *testing.T) {
	release := make(chan struct{})
	m := New(Hooks{
		Open: func() error {
			<-release
			return nil
		},
	}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	var openErr error
	go func() {
		defer wg.Done()
		openErr = m.Open()
	}()

	// Give Open a moment to reach Opening before aborting.
	time.Sleep(10 * time.Millisecond)
	m.Abort()
	close(release)
	wg.Wait()

	assert.ErrorIs(t, openErr, ErrAborted)
	assert.Equal(t, StateClosed, m.State())
}

func TestEventHandlerPanicFaultsAndPropagates(t *testing.T) {
	m := New(Hooks{Open: func() error { return nil }}, func(s State) {
		if s == StateOpening {
			panic("handler exploded")
		}
	})
	assert.Panics(t, func() { _ = m.Open() })
	assert.Equal(t, StateFaulted, m.State())
}
