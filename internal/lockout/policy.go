// Package lockout implements the retry/lockout policy shared by the
// interactive checkpoints. The policy is a value; the per-flow state is a
// value threaded through the checkpoint loop, so nothing here is global.
package lockout

import (
	"context"
	"time"
)

const (
	// BackoffFactor multiplies the delay after every lockout episode.
	BackoffFactor = 3

	MaxLoginAttempts = 4
	MaxStepAttempts  = 3

	DefaultDelay = 30 * time.Second
)

// Policy configures one checkpoint.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Factor       int
}

// NewPolicy returns a policy with the standard backoff factor.
func NewPolicy(maxAttempts int, initialDelay time.Duration) Policy {
	return Policy{MaxAttempts: maxAttempts, InitialDelay: initialDelay, Factor: BackoffFactor}
}

// State is the mutable part of a checkpoint: consecutive failures since the
// last reset and the delay the next lockout will impose.
type State struct {
	Failed int
	Delay  time.Duration
}

// Start returns the Ready state.
func (p Policy) Start() State {
	return State{Delay: p.InitialDelay}
}

// Fail records one failed attempt.
func (p Policy) Fail(s State) State {
	s.Failed++
	return s
}

// Locked reports whether s has reached the attempt cap.
func (p Policy) Locked(s State) bool {
	return s.Failed >= p.MaxAttempts
}

// Remaining is the number of attempts left before lockout.
func (p Policy) Remaining(s State) int {
	if r := p.MaxAttempts - s.Failed; r > 0 {
		return r
	}
	return 0
}

// Serve ends a lockout episode: the counter resets and the next delay grows
// by Factor.
func (p Policy) Serve(s State) State {
	factor := p.Factor
	if factor < 1 {
		factor = 1
	}
	return State{Failed: 0, Delay: s.Delay * time.Duration(factor)}
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the production SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
