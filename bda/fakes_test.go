package bda

import (
	"context"
	"time"
)

// fakeJobs is a scripted JobService
type fakeJobs struct {
	submitFn func(ctx context.Context, req Request) (Handle, error)
	statusFn func(ctx context.Context, h Handle) (Status, error)

	submits  int
	statuses int
}

func (f *fakeJobs) Submit(ctx context.Context, req Request) (Handle, error) {
	f.submits++
	if f.submitFn == nil {
		return "arn:aws:bedrock:ap-south-1:123456789012:data-automation-invocation/job", nil
	}
	return f.submitFn(ctx, req)
}

func (f *fakeJobs) Status(ctx context.Context, h Handle) (Status, error) {
	f.statuses++
	if f.statusFn == nil {
		return Status{State: StatusSuccess}, nil
	}
	return f.statusFn(ctx, h)
}

// fakeClock advances only when the runner sleeps
type fakeClock struct {
	t     time.Time
	waits []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(_ context.Context, d time.Duration) error {
	c.waits = append(c.waits, d)
	c.t = c.t.Add(d)
	return nil
}

func (c *fakeClock) option() RunnerOption {
	return WithClock(c.now, c.sleep)
}
