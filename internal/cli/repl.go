package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// execIface defines the minimal command surface the menus need.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Register(ctx context.Context) error
	Login(ctx context.Context) (string, error)
	RecoverPassword(ctx context.Context) error
	ChangePassword(ctx context.Context, identifier string) error
	sessionStarted(ctx context.Context, identifier, session string) context.Context
	sessionEnded(ctx context.Context)
}

const mainMenu = `==============================
--- Main Menu ---
==============================
1. Register
2. Login
3. Forgot Password
4. Exit
==============================`

const userMenu = `==============================
--- User Menu ---
==============================
1. Change Password
2. Logout
==============================`

// runREPL shows the main menu and dispatches choices until the operator
// exits, input ends or ctx is done. A successful login opens the user menu
// for the authenticated identifier under a fresh session id.
//
// Errors returned by flows are ignored here; flows report to the operator
// themselves. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, w io.Writer, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintln(w, mainMenu)
		choice, err := GetSimpleText(reader, "Enter your choice", w)
		if err != nil {
			return
		}

		switch strings.ToLower(choice) {
		case "1", "register":
			_ = a.Register(ctx)

		case "2", "login":
			identifier, err := a.Login(ctx)
			if err != nil {
				continue
			}
			sctx := a.sessionStarted(ctx, identifier, uuid.NewString())
			runUserMenu(sctx, a, identifier, w, reader)
			a.sessionEnded(sctx)

		case "3", "recover", "forgot":
			_ = a.RecoverPassword(ctx)

		case "4", "exit", "quit":
			fmt.Fprintln(w, "Exiting the program. Goodbye!")
			return

		case "", "help":

		default:
			fmt.Fprintln(w, "Invalid choice. Please try again.")
		}
	}
}

// runUserMenu serves the logged-in menu until logout or end of input.
func runUserMenu(ctx context.Context, a execIface, identifier string, w io.Writer, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintln(w, userMenu)
		choice, err := GetSimpleText(reader, "Enter your choice", w)
		if err != nil {
			return
		}

		switch strings.ToLower(choice) {
		case "1", "change":
			_ = a.ChangePassword(ctx, identifier)

		case "2", "logout":
			fmt.Fprintln(w, "Logging out...")
			return

		case "":

		default:
			fmt.Fprintln(w, "Invalid choice. Please try again.")
		}
	}
}
