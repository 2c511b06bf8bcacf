package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/verifyme/internal/common"
	"github.com/dmitrijs2005/verifyme/internal/lockout"
)

// Login prompts for identifier and password until they match a record and
// returns the authenticated identifier. Every lockout.MaxLoginAttempts
// failures the flow waits out a growing delay and carries on; there is no
// way to abandon it except closing input. Store failures end it at once.
func (a *App) Login(ctx context.Context) (string, error) {
	var identifier string

	cp := a.checkpoint(lockout.MaxLoginAttempts)
	cp.OnLocked = func(ctx context.Context, s lockout.State) (lockout.Action, error) {
		a.printf("Too many failed attempts. Please wait %s before trying again.\n", s.Delay)
		a.log.Warn(ctx, "login locked out", "delay", s.Delay)
		return lockout.ActionRetry, nil
	}

	err := cp.Run(ctx, func(ctx context.Context, _ lockout.State) (bool, error) {
		id, err := a.text("Enter your email or phone number")
		if err != nil {
			return false, err
		}
		if _, err := a.auth.Lookup(ctx, id); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				a.println("No account found with that email or phone number. Please try again.")
				return false, nil
			}
			return false, err
		}

		pw, err := a.password("Enter your password")
		if err != nil {
			return false, err
		}
		defer common.WipeByteArray(pw)

		if _, err := a.auth.Login(ctx, id, pw); err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				a.println("Incorrect password. Please try again.")
				return false, nil
			}
			return false, err
		}
		identifier = id
		return true, nil
	})
	if err != nil {
		a.println(HumanError(err))
		return "", err
	}

	a.println("Login successful!")
	return identifier, nil
}
