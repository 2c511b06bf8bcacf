package lockout

import (
	"context"

	"github.com/dmitrijs2005/verifyme/internal/common"
)

// Action tells a Checkpoint what to do once the attempt cap is reached.
type Action int

const (
	// ActionRetry waits out the delay, resets the counter and keeps going.
	ActionRetry Action = iota
	// ActionPenalize waits out the delay and then gives up.
	ActionPenalize
	// ActionGiveUp gives up at once.
	ActionGiveUp
)

// Attempt performs one try at the checkpoint. ok=false counts as a failed
// attempt; a non-nil error ends the checkpoint and is returned as is.
type Attempt func(ctx context.Context, s State) (ok bool, err error)

// Checkpoint runs attempts under a Policy.
type Checkpoint struct {
	Policy Policy
	Sleep  SleepFunc

	// OnFailure is called after every failed attempt with the updated state.
	OnFailure func(ctx context.Context, s State)
	// OnLocked decides what happens when the cap is reached. Nil means ActionRetry.
	OnLocked func(ctx context.Context, s State) (Action, error)
}

// Run loops until an attempt succeeds, an attempt fails hard, or the
// checkpoint gives up, in which case it returns common.ErrorLockedOut.
func (c *Checkpoint) Run(ctx context.Context, attempt Attempt) error {
	sleep := c.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	s := c.Policy.Start()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ok, err := attempt(ctx, s)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		s = c.Policy.Fail(s)
		if c.OnFailure != nil {
			c.OnFailure(ctx, s)
		}
		if !c.Policy.Locked(s) {
			continue
		}

		action := ActionRetry
		if c.OnLocked != nil {
			action, err = c.OnLocked(ctx, s)
			if err != nil {
				return err
			}
		}

		switch action {
		case ActionGiveUp:
			return common.ErrorLockedOut
		case ActionPenalize:
			if err := sleep(ctx, s.Delay); err != nil {
				return err
			}
			return common.ErrorLockedOut
		default:
			if err := sleep(ctx, s.Delay); err != nil {
				return err
			}
			s = c.Policy.Serve(s)
		}
	}
}
