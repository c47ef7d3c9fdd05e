package requeue

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRequeuer struct {
	expired int
	sweeps  int
	err     error
}

func (f *fakeRequeuer) RequeueExpired(context.Context) (int, error) {
	f.sweeps++
	if f.err != nil {
		return 0, f.err
	}
	moved := f.expired
	f.expired = 0
	return moved, nil
}

func TestSweepReturnsExpiredCount(t *testing.T) {
	queue := &fakeRequeuer{expired: 3}
	job := New(queue, time.Minute, nil)

	moved, err := job.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if moved != 3 {
		t.Fatalf("expected 3 requeued tasks, got %d", moved)
	}

	moved, err = job.Sweep(context.Background())
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if moved != 0 {
		t.Fatalf("expected empty second sweep, got %d", moved)
	}
}

func TestSweepSurfacesQueueFailure(t *testing.T) {
	queue := &fakeRequeuer{err: errors.New("connection refused")}
	job := New(queue, time.Minute, nil)

	if _, err := job.Sweep(context.Background()); err == nil {
		t.Fatalf("expected sweep to surface queue failure")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	queue := &fakeRequeuer{}
	job := New(queue, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("run did not stop after context cancellation")
	}

	if queue.sweeps == 0 {
		t.Fatalf("expected at least one sweep while running")
	}
}
