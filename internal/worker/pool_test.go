package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepResult carries the id of the job that produced it
type stepResult struct {
	id      int
	err     error
	skipped bool
}

func (r *stepResult) GetError() error {
	return r.err
}

// stepJob sleeps for delay (or until cancelled) and reports its id
type stepJob struct {
	id      int
	delay   time.Duration
	fail    bool
	running *int32
	peak    *int32
}

func (j *stepJob) Execute(ctx context.Context) Result {
	if j.running != nil {
		n := atomic.AddInt32(j.running, 1)
		defer atomic.AddInt32(j.running, -1)
		for {
			p := atomic.LoadInt32(j.peak)
			if n <= p || atomic.CompareAndSwapInt32(j.peak, p, n) {
				break
			}
		}
	}
	if j.delay > 0 {
		select {
		case <-time.After(j.delay):
		case <-ctx.Done():
			return &stepResult{id: j.id, err: ctx.Err()}
		}
	}
	if j.fail {
		return &stepResult{id: j.id, err: errors.New("step failed")}
	}
	return &stepResult{id: j.id}
}

func (j *stepJob) Skip(err error) Result {
	return &stepResult{id: j.id, err: err, skipped: true}
}

// plainJob does not implement Skipper
type plainJob struct{}

func (plainJob) Execute(ctx context.Context) Result {
	return &stepResult{}
}

func TestNewPool_Workers(t *testing.T) {
	for in, want := range map[int]int{5: 5, 1: 1, 0: 1, -3: 1} {
		assert.Equal(t, want, NewPool(in).workers, "NewPool(%d)", in)
	}
}

func TestPool_ResultsInSubmissionOrder(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	// later jobs finish first
	for i := 0; i < 10; i++ {
		pool.Submit(&stepJob{id: i, delay: time.Duration(10-i) * 2 * time.Millisecond})
	}

	results := pool.Wait()
	require.Len(t, results, 10)
	for i, res := range results {
		assert.Equal(t, i, res.(*stepResult).id)
	}
}

func TestPool_Errors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&stepJob{id: 0, fail: true})
	pool.Submit(&stepJob{id: 1})

	results := pool.Wait()
	require.Len(t, results, 2)
	assert.Error(t, results[0].GetError())
	assert.NoError(t, results[1].GetError())
}

func TestPool_BoundedConcurrency(t *testing.T) {
	const workers = 4
	pool := NewPool(workers)
	pool.Start()

	var running, peak int32
	for i := 0; i < 30; i++ {
		pool.Submit(&stepJob{id: i, delay: 5 * time.Millisecond, running: &running, peak: &peak})
	}

	results := pool.Wait()
	assert.Len(t, results, 30)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(workers))
}

func TestPool_ManyJobs(t *testing.T) {
	// more jobs than the queue and result buffers hold
	pool := NewPool(1)
	pool.Start()

	for i := 0; i < 100; i++ {
		pool.Submit(&stepJob{id: i})
	}

	assert.Len(t, pool.Wait(), 100)
}

func TestPool_CancelKeepsEveryResultInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPoolWithContext(ctx, 1)
	pool.Start()

	// cancel while the first job runs; the rest are still queued or not yet submitted
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	for i := 0; i < 12; i++ {
		pool.Submit(&stepJob{id: i, delay: 50 * time.Millisecond})
	}

	results := pool.Wait()
	require.Len(t, results, 12)

	for i, res := range results {
		r := res.(*stepResult)
		assert.Equal(t, i, r.id)
		assert.True(t, errors.Is(r.err, context.Canceled), "job %d: %v", i, r.err)
	}
	assert.False(t, results[0].(*stepResult).skipped, "the running job sees the cancellation itself")
	assert.True(t, results[11].(*stepResult).skipped)
}

func TestPool_SubmitAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPoolWithContext(ctx, 2)
	pool.Start()
	cancel()

	done := make(chan []Result)
	go func() {
		pool.Submit(&stepJob{id: 7})
		pool.Submit(plainJob{})
		done <- pool.Wait()
	}()

	select {
	case results := <-done:
		require.Len(t, results, 2)
		assert.True(t, errors.Is(results[0].GetError(), context.Canceled))
		assert.True(t, errors.Is(results[1].GetError(), context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("pool did not stop after context cancel")
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		pool.Submit(&stepJob{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var running, peak int32
	pool.Submit(&stepJob{delay: 200 * time.Millisecond, running: &running, peak: &peak})
	require.Eventually(t, func() bool { return atomic.LoadInt32(&running) == 1 }, time.Second, time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		pool.Shutdown()
		for range pool.results {
		}
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Shutdown timed out")
	}
}
