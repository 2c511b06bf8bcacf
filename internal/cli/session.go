package cli

import (
	"context"

	"github.com/dmitrijs2005/verifyme/internal/logging"
)

// sessionStarted returns a ctx whose log lines, in this package and in the
// services, carry the session id. The user menu runs under that ctx.
func (a *App) sessionStarted(ctx context.Context, identifier, session string) context.Context {
	ctx = logging.ContextWith(ctx, "session", session)
	a.log.Info(ctx, "session started", "identifier", identifier)
	return ctx
}

func (a *App) sessionEnded(ctx context.Context) {
	a.log.Info(ctx, "session ended")
}
