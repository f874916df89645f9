package state_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lumina/internal/domain"
	"lumina/internal/state"
)

func TestNotification_ExpiresAfterTTL(t *testing.T) {
	db, cache := testEnv(t)
	st := state.New(db, cache, state.Options{NotifyTTL: 100 * time.Millisecond, PaymentDelay: time.Millisecond})

	id := st.AddNotification(domain.NotifyInfo, "hello")
	require.NotEmpty(t, id)

	time.Sleep(50 * time.Millisecond)
	require.Len(t, st.Notifications(), 1)

	require.Eventually(t, func() bool {
		return len(st.Notifications()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestNotification_ManualDismissBeatsTimer(t *testing.T) {
	db, cache := testEnv(t)
	st := state.New(db, cache, state.Options{NotifyTTL: 100 * time.Millisecond, PaymentDelay: time.Millisecond})

	id := st.AddNotification(domain.NotifySuccess, "done")
	st.RemoveNotification(id)
	require.Empty(t, st.Notifications())

	// The expiry timer later finds nothing to remove; nothing breaks.
	time.Sleep(150 * time.Millisecond)
	require.Empty(t, st.Notifications())
}

func TestNotification_RemoveUnknownIsNoOp(t *testing.T) {
	st := newTestStore(t)
	st.AddNotification(domain.NotifyError, "stays")
	st.RemoveNotification("never-issued")
	require.Len(t, st.Notifications(), 1)
}

func TestNotification_OrderPreserved(t *testing.T) {
	st := newTestStore(t)
	st.AddNotification(domain.NotifyInfo, "first")
	st.AddNotification(domain.NotifyInfo, "second")

	got := st.Notifications()
	require.Len(t, got, 2)
	require.Equal(t, "first", got[0].Message)
	require.Equal(t, "second", got[1].Message)
}
