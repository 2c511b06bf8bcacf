// Package cli implements the interactive verifyme front end: the main menu,
// the user menu and the four flows (register, login, change password and
// recover password).
//
// Every flow does its own prompting and runs its retry loops through
// lockout.Checkpoint. Store access, hashing and validation are delegated to
// services.AuthService. Operator-facing text goes to the App's writer; the
// structured logger only receives events.
//
// Menus
//
//	Main menu                     User menu (after login)
//	  1 | register                  1 | change
//	  2 | login                     2 | logout
//	  3 | recover | forgot
//	  4 | exit | quit
//	  help
package cli
