package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/martinmanurung/cinecheck/internal/platform/queue"
)

type fakeQueue struct {
	jobs     chan queue.RatingJob
	requeued []queue.RatingJob
}

func (q *fakeQueue) ConsumeRatingJob(ctx context.Context) (*queue.RatingJob, error) {
	select {
	case job := <-q.jobs:
		return &job, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(10 * time.Millisecond):
		return nil, nil
	}
}

func (q *fakeQueue) RequeueRatingJob(_ context.Context, job queue.RatingJob) error {
	job.Attempt++
	q.requeued = append(q.requeued, job)
	return nil
}

type fakeRecomputer struct {
	calls chan string
	err   error
}

func (r *fakeRecomputer) RecomputeRating(_ context.Context, movieID string) error {
	r.calls <- movieID
	return r.err
}

func TestProcessJobRequeuesUntilMaxRetries(t *testing.T) {
	q := &fakeQueue{}
	r := &fakeRecomputer{calls: make(chan string, 4), err: errors.New("db down")}
	p := NewJobProcessor(q, r, 2)

	p.processJob(context.Background(), queue.RatingJob{MovieID: "mov_1", Attempt: 0})
	p.processJob(context.Background(), queue.RatingJob{MovieID: "mov_1", Attempt: 1})
	p.processJob(context.Background(), queue.RatingJob{MovieID: "mov_1", Attempt: 2})

	if len(q.requeued) != 2 {
		t.Fatalf("requeued %d jobs, want 2", len(q.requeued))
	}
	if q.requeued[1].Attempt != 2 {
		t.Fatalf("attempt = %d, want 2", q.requeued[1].Attempt)
	}
}

func TestProcessJobSuccessDoesNotRequeue(t *testing.T) {
	q := &fakeQueue{}
	r := &fakeRecomputer{calls: make(chan string, 1)}
	p := NewJobProcessor(q, r, 3)

	p.processJob(context.Background(), queue.RatingJob{MovieID: "mov_1"})

	if got := <-r.calls; got != "mov_1" {
		t.Fatalf("recomputed %q, want mov_1", got)
	}
	if len(q.requeued) != 0 {
		t.Fatalf("unexpected requeue %v", q.requeued)
	}
}

func TestStartConsumesUntilCancelled(t *testing.T) {
	q := &fakeQueue{jobs: make(chan queue.RatingJob, 2)}
	r := &fakeRecomputer{calls: make(chan string, 2)}
	p := NewJobProcessor(q, r, 3)

	q.jobs <- queue.RatingJob{MovieID: "mov_a"}
	q.jobs <- queue.RatingJob{MovieID: "mov_b"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Start(ctx) }()

	for _, want := range []string{"mov_a", "mov_b"} {
		select {
		case got := <-r.calls:
			if got != want {
				t.Fatalf("recomputed %q, want %q", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("processor did not stop")
	}
}
