package signal

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Signal_CancelsContext(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.handleSignal(syscall.SIGTERM)

	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	assert.Equal(t, syscall.SIGTERM, h.Received())
}

func TestHandler_OnlyFirstSignalRecorded(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.handleSignal(syscall.SIGHUP)
	h.handleSignal(syscall.SIGTERM)

	assert.Equal(t, syscall.SIGHUP, h.Received())
}

func TestHandler_ValidInitially(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	require.NoError(t, h.Context().Err())
	assert.Nil(t, h.Received())
}

func TestHandler_Stop_IsIdempotent(t *testing.T) {
	h := NewHandler(context.Background())

	h.Stop()
	h.Stop()

	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	assert.Nil(t, h.Received(), "stopping is not a signal")
}

func TestHandler_ParentContextCancelled(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	h := NewHandler(parent)
	defer h.Stop()

	cancel()

	select {
	case <-h.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("handler context should follow its parent")
	}
}

func TestHandler_DeliveredSignal(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.sigChan <- syscall.SIGTERM

	require.Eventually(t, func() bool {
		return h.Context().Err() != nil
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, syscall.SIGTERM, h.Received())
}
