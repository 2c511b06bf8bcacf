package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/verifyme/internal/common"
	"github.com/dmitrijs2005/verifyme/internal/lockout"
	"github.com/dmitrijs2005/verifyme/internal/validation"
)

// Register walks the operator through identifier, username and password.
// Each step gets lockout.MaxStepAttempts tries; exhausting one waits out the
// lockout delay and abandons registration before anything is written.
func (a *App) Register(ctx context.Context) error {
	a.println("=== Register ===")

	a.printStep(1, "Enter your email or phone number.")
	var identifier string
	err := a.registerStep(ctx, "identifier", func(ctx context.Context, _ lockout.State) (bool, error) {
		id, err := a.text("Enter your email or phone number")
		if err != nil {
			return false, err
		}
		if err := validation.ValidateIdentifier(id, a.config.EmailDomain); err != nil {
			a.println(HumanError(err))
			return false, nil
		}
		taken, err := a.auth.IdentifierTaken(ctx, id)
		if err != nil {
			return false, err
		}
		if taken {
			a.println("This email or phone number is already registered.")
			return false, nil
		}
		identifier = id
		return true, nil
	})
	if err != nil {
		return a.registerFailed(ctx, err)
	}

	a.printStep(2, "Enter a unique username.")
	var username string
	err = a.registerStep(ctx, "username", func(ctx context.Context, _ lockout.State) (bool, error) {
		name, err := a.text("Enter your username")
		if err != nil {
			return false, err
		}
		if err := validation.ValidateUsername(name, identifier); err != nil {
			a.println(HumanError(err))
			return false, nil
		}
		taken, err := a.auth.UsernameTaken(ctx, name)
		if err != nil {
			return false, err
		}
		if taken {
			a.println("This username is already taken. Please choose a different one.")
			return false, nil
		}
		username = name
		return true, nil
	})
	if err != nil {
		return a.registerFailed(ctx, err)
	}

	a.printStep(3, "Enter and confirm your password.")
	var password []byte
	defer func() { common.WipeByteArray(password) }()
	err = a.registerStep(ctx, "password", func(ctx context.Context, _ lockout.State) (bool, error) {
		pw, err := a.password("Enter your password")
		if err != nil {
			return false, err
		}
		if err := validation.ValidatePassword(pw); err != nil {
			common.WipeByteArray(pw)
			a.println(HumanError(err))
			return false, nil
		}
		confirmation, err := a.password("Confirm your password")
		if err != nil {
			common.WipeByteArray(pw)
			return false, err
		}
		defer common.WipeByteArray(confirmation)
		if err := validation.ConfirmPassword(pw, confirmation); err != nil {
			common.WipeByteArray(pw)
			a.println(HumanError(err))
			return false, nil
		}
		password = pw
		return true, nil
	})
	if err != nil {
		return a.registerFailed(ctx, err)
	}

	codes, err := a.auth.Register(ctx, identifier, username, password)
	if err != nil {
		return a.registerFailed(ctx, err)
	}

	a.printf("User '%s' registered successfully!\n", username)
	a.println()
	a.println("Here are your backup codes:")
	for _, code := range codes {
		a.println(code)
	}
	a.println()
	a.println("Please save these backup codes in a secure location. They will not be shown again.")
	return nil
}

func (a *App) printStep(n int, text string) {
	a.printf("[Step %d] %s\n", n, text)
}

func (a *App) registerStep(ctx context.Context, step string, attempt lockout.Attempt) error {
	cp := a.checkpoint(lockout.MaxStepAttempts)
	cp.OnLocked = func(ctx context.Context, s lockout.State) (lockout.Action, error) {
		a.printf("Too many invalid attempts. Try again after %s.\n", s.Delay)
		a.log.Warn(ctx, "registration step locked out", "step", step, "delay", s.Delay)
		return lockout.ActionPenalize, nil
	}
	return cp.Run(ctx, attempt)
}

func (a *App) registerFailed(ctx context.Context, err error) error {
	if errors.Is(err, common.ErrorLockedOut) {
		a.println("Registration aborted.")
		return err
	}
	a.println(HumanError(err))
	if !errors.Is(err, common.ErrorValidation) && !errors.Is(err, common.ErrorAlreadyExists) {
		a.log.Error(ctx, "registration failed", "error", err)
	}
	return err
}
