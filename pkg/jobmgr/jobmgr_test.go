package jobmgr

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type events struct {
	mu  sync.Mutex
	got []string
}

func (e *events) report(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.got = append(e.got, ev.String())
}

func TestStartAsyncRejectsDuplicates(t *testing.T) {
	rec := &events{}
	m := NewManager(rec.report)

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, m.StartAsync(context.Background(), "sync:1", func(context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	err := m.StartAsync(context.Background(), "sync:1", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrRunning)
	assert.Equal(t, []string{"sync:1"}, m.List())
	assert.Equal(t, "Running jobs: sync:1", m.Status())

	close(release)
	m.Wait()
	assert.Empty(t, m.List())
	assert.Equal(t, "No jobs are running.", m.Status())
	assert.Equal(t, []string{"running:sync:1", "done:sync:1"}, rec.got)

	require.NoError(t, m.StartAsync(context.Background(), "sync:1", func(context.Context) error { return nil }))
	m.Wait()
}

func TestStopCancelsJob(t *testing.T) {
	rec := &events{}
	m := NewManager(rec.report)

	started := make(chan struct{})
	require.NoError(t, m.StartAsync(context.Background(), "long", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}))
	<-started

	require.NoError(t, m.Stop("long"))
	m.Wait()
	assert.Equal(t, []string{"running:long", "error:long:context canceled"}, rec.got)

	assert.True(t, errors.Is(m.Stop("long"), ErrNotRunning))
}

func TestParentContextCancels(t *testing.T) {
	m := NewManager(nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	require.NoError(t, m.StartAsync(ctx, "child", func(ctx context.Context) error {
		<-ctx.Done()
		done <- ctx.Err()
		return nil
	}))
	cancel()
	m.Wait()
	assert.ErrorIs(t, <-done, context.Canceled)
}
