package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/verifyme/internal/common"
	"github.com/dmitrijs2005/verifyme/internal/lockout"
)

// ChangePassword re-verifies the current password of identifier and then
// sets a new one. On lockout the operator decides whether to wait and keep
// trying; declining ends the flow with common.ErrorAborted. A new password
// that fails the strength rules ends the flow without writing.
func (a *App) ChangePassword(ctx context.Context, identifier string) error {
	a.println("=== Change Password ===")

	cp := a.checkpoint(lockout.MaxStepAttempts)
	cp.OnLocked = func(ctx context.Context, s lockout.State) (lockout.Action, error) {
		a.log.Warn(ctx, "password change locked out", "delay", s.Delay)
		again, err := Confirm(a.reader, "Too many failed attempts. Wait "+s.Delay.String()+" and try again?", a.out)
		if err != nil {
			return lockout.ActionGiveUp, err
		}
		if !again {
			return lockout.ActionGiveUp, common.ErrorAborted
		}
		a.printf("Please wait %s...\n", s.Delay)
		return lockout.ActionRetry, nil
	}

	err := cp.Run(ctx, func(ctx context.Context, _ lockout.State) (bool, error) {
		pw, err := a.password("Enter your current password")
		if err != nil {
			return false, err
		}
		defer common.WipeByteArray(pw)

		if err := a.auth.VerifyPassword(ctx, identifier, pw); err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				a.println("Current password is incorrect.")
				return false, nil
			}
			return false, err
		}
		return true, nil
	})
	if err != nil {
		a.println(HumanError(err))
		a.println("Password change failed.")
		return err
	}

	pw, err := a.password("Enter your new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if err := a.auth.ChangePassword(ctx, identifier, pw); err != nil {
		a.println(HumanError(err))
		if errors.Is(err, common.ErrorValidation) {
			a.println("Password does not meet the required standards.")
		}
		return err
	}
	a.println("Password changed successfully!")
	return nil
}
