package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreen_List(t *testing.T) {
	s := NewScreen(time.Minute)

	_, ok := s.List()
	assert.False(t, ok)

	s.SetList("<p>x</p>")
	html, ok := s.List()
	assert.True(t, ok)
	assert.Equal(t, "<p>x</p>", string(html))
}

func TestScreen_ShowMessageClearsAfterTTL(t *testing.T) {
	s := NewScreen(20 * time.Millisecond)
	defer s.Close()

	s.ShowMessage("hola", NoticeSuccess)
	n, ok := s.Notice()
	require.True(t, ok)
	assert.Equal(t, "hola", n.Text)
	assert.Equal(t, "alert-success", n.Class())

	assert.Eventually(t, func() bool {
		_, ok := s.Notice()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestScreen_NewMessageCancelsPendingClear(t *testing.T) {
	s := NewScreen(200 * time.Millisecond)
	defer s.Close()

	s.ShowMessage("first", NoticeSuccess)
	time.Sleep(120 * time.Millisecond)
	s.ShowMessage("second", NoticeError)

	// The first message's timer would have fired by now.
	time.Sleep(120 * time.Millisecond)
	n, ok := s.Notice()
	require.True(t, ok, "second message must outlive the first message's timer")
	assert.Equal(t, "second", n.Text)
	assert.Equal(t, "alert-error", n.Class())

	assert.Eventually(t, func() bool {
		_, ok := s.Notice()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestScreen_StaleClearIsIgnored(t *testing.T) {
	s := NewScreen(time.Hour)
	defer s.Close()

	s.ShowMessage("first", NoticeSuccess)
	s.ShowMessage("second", NoticeSuccess)

	// A timer that fired concurrently with Stop still calls clearNotice.
	s.clearNotice(1)

	n, ok := s.Notice()
	require.True(t, ok)
	assert.Equal(t, "second", n.Text)
}

func TestScreen_Confirmation(t *testing.T) {
	s := NewScreen(time.Minute)

	_, state := s.Confirmation()
	assert.Equal(t, ConfirmationNone, state)
	assert.ErrorIs(t, s.ResolveConfirmation(3, true), ErrNoPendingConfirmation)

	s.RequestConfirmation(3)
	id, state := s.Confirmation()
	assert.Equal(t, int64(3), id)
	assert.Equal(t, PendingConfirmation, state)
	assert.Equal(t, &Confirmation{ID: 3}, s.Snapshot().Confirmation)

	assert.ErrorIs(t, s.ResolveConfirmation(4, true), ErrNoPendingConfirmation)

	require.NoError(t, s.ResolveConfirmation(3, false))
	_, state = s.Confirmation()
	assert.Equal(t, Cancelled, state)
	assert.Nil(t, s.Snapshot().Confirmation)

	assert.ErrorIs(t, s.ResolveConfirmation(3, true), ErrNoPendingConfirmation, "a resolved confirmation cannot be resolved again")

	s.RequestConfirmation(3)
	require.NoError(t, s.ResolveConfirmation(3, true))
	_, state = s.Confirmation()
	assert.Equal(t, Confirmed, state)
	assert.Equal(t, "confirmed", state.String())
}

func TestScreen_SnapshotIsACopy(t *testing.T) {
	s := NewScreen(time.Hour)
	defer s.Close()

	s.ShowMessage("hola", NoticeSuccess)
	p := s.Snapshot()
	p.Notice.Text = "changed"

	n, _ := s.Notice()
	assert.Equal(t, "hola", n.Text)
}
