package cli

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/shiftjournal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestSetMode(t *testing.T) {
	app := &App{logger: logging.Nop{}}

	app.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, app.Mode())

	app.setMode(ModeOffline)
	assert.Equal(t, ModeOffline, app.Mode())
}

func TestGetStatus(t *testing.T) {
	app, _, _ := newTestApp(readerFromLines())
	assert.Equal(t, "(2024-03-10 B)", app.getStatus())

	app.setUserName("ivanov")
	app.setMode(ModeOnline)
	assert.Equal(t, "(ivanov online 2024-03-10 B)", app.getStatus())
}

type flakyAuth struct {
	fakeAuth
	mu    sync.Mutex
	fails bool
}

func (f *flakyAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fails {
		return errors.New("down")
	}
	return nil
}

func (f *flakyAuth) setFails(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fails = v
}

func TestStartOnlineStatusWatcher(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
		goleak.IgnoreCurrent(),
	)

	fa := &flakyAuth{}
	app := &App{auth: fa, logger: logging.Nop{}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return app.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)

	fa.setFails(true)
	require.Eventually(t, func() bool { return app.Mode() == ModeOffline }, time.Second, 5*time.Millisecond)

	fa.setFails(false)
	require.Eventually(t, func() bool { return app.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestSession(t *testing.T) {
	s := NewSession(night)
	assert.True(t, s.Editable(night))

	s.SetDate(older.Date)
	assert.Equal(t, older, s.Slot())
	assert.False(t, s.Editable(night))

	s.SetShift(day.Shift)
	s.SetDate(day.Date)
	assert.Equal(t, day, s.Slot())

	s.Select(night)
	assert.True(t, s.Editable(night))
}
