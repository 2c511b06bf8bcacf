package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/verifyme/internal/common"
	"github.com/dmitrijs2005/verifyme/internal/lockout"
)

// RecoverPassword redeems a backup code and lets the operator set a new
// password without knowing the old one. The code check and the new password
// each get lockout.MaxStepAttempts tries.
func (a *App) RecoverPassword(ctx context.Context) error {
	a.println("=== Recover Password ===")

	var identifier string
	codeCheck := a.checkpoint(lockout.MaxStepAttempts)
	codeCheck.OnFailure = func(_ context.Context, s lockout.State) {
		a.printf("Invalid backup code. You have %d attempt(s) remaining.\n", codeCheck.Policy.Remaining(s))
	}
	codeCheck.OnLocked = func(ctx context.Context, _ lockout.State) (lockout.Action, error) {
		a.log.Warn(ctx, "recovery locked out")
		return lockout.ActionGiveUp, nil
	}

	err := codeCheck.Run(ctx, func(ctx context.Context, _ lockout.State) (bool, error) {
		id, err := a.text("Enter your email or phone number")
		if err != nil {
			return false, err
		}
		code, err := a.text("Enter your backup code")
		if err != nil {
			return false, err
		}
		ok, err := a.auth.ConsumeBackupCode(ctx, id, code)
		if err != nil {
			return false, err
		}
		if ok {
			identifier = id
		}
		return ok, nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorLockedOut) {
			a.println("Maximum attempts reached. Password recovery failed.")
		} else {
			a.println(HumanError(err))
		}
		return err
	}
	a.println("Backup code verified successfully!")

	return a.resetPassword(ctx, identifier)
}

func (a *App) resetPassword(ctx context.Context, identifier string) error {
	cp := a.checkpoint(lockout.MaxStepAttempts)
	cp.OnLocked = func(context.Context, lockout.State) (lockout.Action, error) {
		return lockout.ActionGiveUp, nil
	}

	err := cp.Run(ctx, func(ctx context.Context, _ lockout.State) (bool, error) {
		pw, err := a.password("Enter your new password")
		if err != nil {
			return false, err
		}
		defer common.WipeByteArray(pw)

		if err := a.auth.ChangePassword(ctx, identifier, pw); err != nil {
			if errors.Is(err, common.ErrorValidation) {
				a.println(HumanError(err))
				a.println("Password does not meet the required standards. Try again.")
				return false, nil
			}
			return false, err
		}
		return true, nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorLockedOut) {
			a.println("Failed to reset password after multiple attempts.")
		} else {
			a.println(HumanError(err))
		}
		return err
	}

	a.println("Password reset successfully!")
	if left, err := a.auth.RemainingBackupCodes(ctx, identifier); err != nil {
		a.log.Warn(ctx, "counting backup codes failed", "error", err)
	} else {
		a.printf("You have %d backup code(s) left.\n", left)
	}
	return nil
}
