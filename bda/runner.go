package bda

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/bdaresume/errors"
	"github.com/teranos/bdaresume/logger"
)

// ErrPollTimeout is returned when a job is not terminal within the poll budget.
// It is distinct from a service-reported ServiceError or ClientError.
var ErrPollTimeout = errors.Mark(errors.New("extraction did not finish within the wait budget"), errors.ErrTimeout)

// Runner submits jobs and waits for them under a retry and poll policy
type Runner struct {
	svc   JobService
	retry RetryPolicy
	poll  PollPolicy
	log   *zap.SugaredLogger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// RunnerOption customizes a Runner
type RunnerOption func(*Runner)

// WithLogger sets the runner's logger
func WithLogger(log *zap.SugaredLogger) RunnerOption {
	return func(r *Runner) { r.log = log }
}

// WithClock replaces the clock and sleeper, for tests
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) RunnerOption {
	return func(r *Runner) {
		r.now = now
		r.sleep = sleep
	}
}

// NewRunner creates a Runner over svc
func NewRunner(svc JobService, retry RetryPolicy, poll PollPolicy, opts ...RunnerOption) *Runner {
	r := &Runner{
		svc:   svc,
		retry: retry,
		poll:  poll,
		log:   logger.ComponentLogger("bda"),
		now:   time.Now,
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SubmitAndWait submits req and waits for a terminal status, retrying the whole
// cycle on error. A ServiceError or ClientError status is returned as a result.
func (r *Runner) SubmitAndWait(ctx context.Context, req Request) (Handle, Status, error) {
	for attempt := 0; ; attempt++ {
		h, st, err := r.attempt(ctx, req)
		if err == nil {
			return h, st, nil
		}

		retry, wait := r.retry.Next(attempt)
		if !retry || ctx.Err() != nil {
			return h, st, errors.Wrapf(err, "giving up after %d attempts", attempt+1)
		}

		r.log.Warnw("Extraction attempt failed, retrying",
			logger.FieldURI, req.InputURI,
			logger.FieldAttempt, attempt+1,
			logger.FieldMaxAttempts, r.retry.MaxAttempts,
			logger.FieldWait, wait,
			logger.FieldError, err.Error(),
		)
		if serr := r.sleep(ctx, wait); serr != nil {
			return h, st, errors.WithSecondaryError(errors.Wrap(serr, "interrupted during backoff"), err)
		}
	}
}

func (r *Runner) attempt(ctx context.Context, req Request) (Handle, Status, error) {
	h, err := r.svc.Submit(ctx, req)
	if err != nil {
		return "", Status{}, err
	}
	r.log.Infow("Submitted extraction", logger.FieldURI, req.InputURI, logger.FieldInvocationARN, h)

	st, err := r.WaitForCompletion(ctx, h)
	return h, st, err
}

// WaitForCompletion polls h until its status is terminal or the budget is spent
func (r *Runner) WaitForCompletion(ctx context.Context, h Handle) (Status, error) {
	start := r.now()
	var last Status

	for {
		elapsed := r.now().Sub(start)
		if !r.poll.CanQuery(elapsed) {
			return last, errors.Wrapf(ErrPollTimeout, "%s after %s", h, r.poll.Budget)
		}

		st, err := r.svc.Status(ctx, h)
		if err != nil {
			return last, err
		}
		last = st

		elapsed = r.now().Sub(start)
		action := r.poll.Next(st.State, elapsed)
		switch action.Kind {
		case PollDone:
			if st.State.Failed() {
				r.log.Warnw("Extraction failed",
					logger.FieldInvocationARN, h,
					logger.FieldStatus, st.State,
					logger.FieldErrorType, st.ErrorType,
					logger.FieldError, st.ErrorMessage,
				)
			} else {
				r.log.Infow("Extraction finished", logger.FieldInvocationARN, h, logger.FieldElapsed, elapsed)
			}
			return st, nil
		case PollTimeout:
			return st, errors.Wrapf(ErrPollTimeout, "%s after %s", h, r.poll.Budget)
		}

		r.log.Debugw("Extraction still running",
			logger.FieldInvocationARN, h,
			logger.FieldStatus, st.State,
			logger.FieldElapsed, elapsed,
			logger.FieldWait, action.Wait,
		)
		if err := r.sleep(ctx, action.Wait); err != nil {
			return st, errors.Wrap(err, "interrupted while polling")
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
