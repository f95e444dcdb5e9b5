package bda

import "time"

// PollKind is what the poll loop does next
type PollKind int

const (
	PollDone PollKind = iota
	PollWait
	PollTimeout
)

func (k PollKind) String() string {
	switch k {
	case PollDone:
		return "done"
	case PollWait:
		return "wait"
	case PollTimeout:
		return "timeout"
	}
	return "unknown"
}

// PollAction is the decision after one status query
type PollAction struct {
	Kind PollKind
	Wait time.Duration // set for PollWait
}

// PollPolicy queries every Interval until a terminal status or Budget is spent
type PollPolicy struct {
	Interval time.Duration
	Budget   time.Duration
}

// DefaultPollPolicy queries every 10s for up to 300s
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{Interval: 10 * time.Second, Budget: 300 * time.Second}
}

// CanQuery reports whether a status query may be issued at elapsed.
// A budget of zero or less never allows a query.
func (p PollPolicy) CanQuery(elapsed time.Duration) bool {
	return elapsed < p.Budget
}

// Next decides what follows a query that returned state at elapsed.
// The wait never overshoots the budget, so a budget shorter than one
// interval gets exactly one query.
func (p PollPolicy) Next(state JobStatus, elapsed time.Duration) PollAction {
	if state.Terminal() {
		return PollAction{Kind: PollDone}
	}
	remaining := p.Budget - elapsed
	if remaining <= 0 {
		return PollAction{Kind: PollTimeout}
	}
	wait := p.Interval
	if remaining < wait {
		wait = remaining
	}
	return PollAction{Kind: PollWait, Wait: wait}
}
