package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	mu    sync.Mutex
	calls []time.Duration
	err   error
}

func (f *fakePurger) PurgeDeleted(ctx context.Context, retention time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, retention)
	return 3, f.err
}

func (f *fakePurger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestScheduler_RejectsInvalid(t *testing.T) {
	s := NewScheduler(nil)
	p := &fakePurger{}

	assert.Error(t, s.SchedulePurge("", time.Hour, p))
	assert.Error(t, s.SchedulePurge("@daily", 0, p))
	assert.Error(t, s.SchedulePurge("not a cron", time.Hour, p))
	require.NoError(t, s.SchedulePurge("@daily", time.Hour, p))
}

func TestScheduler_RunsPurge(t *testing.T) {
	s := NewScheduler(nil)
	p := &fakePurger{}

	require.NoError(t, s.SchedulePurge("@every 1s", 48*time.Hour, p))
	s.Start()
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return p.count() > 0 }, 3*time.Second, 50*time.Millisecond)
	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Equal(t, 48*time.Hour, p.calls[0])
}

func TestScheduler_RunPurgeSwallowsErrors(t *testing.T) {
	s := NewScheduler(nil)
	p := &fakePurger{err: errors.New("boom")}

	s.runPurge(time.Hour, p)
	assert.Equal(t, 1, p.count())
}
