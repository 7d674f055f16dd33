package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/branchadmin/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	phase() session.Phase
	Login(ctx context.Context) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	Cancel(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Open(ctx context.Context, view string) error
}

// shownError marks an error whose message a handler already printed.
type shownError struct{ error }

func (e shownError) Unwrap() error { return e.error }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return shownError{err}
}

// runREPL starts a simple read-eval-print loop for the branch admin CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Handlers prompt through the same reader, so
// lines typed ahead of a prompt reach it. Unknown commands are reported back
// to the user. The loop exits on EOF, when ctx is done, or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Signed out:
//	  - login            authenticate with email and password
//	  - open <view>      login, branches, users
//
//	Verification pending:
//	  - verify           enter the 6-digit code
//	  - resend           request a new code once the countdown is over
//	  - cancel           abandon the pending verification
//
//	Signed in:
//	  - whoami           show the signed-in user
//	  - open <view>      login, branches, users
//	  - logout           sign out
//
//	Always: help, exit | quit
//
// Handlers print their own messages for the failures they understand; any
// other error is printed here with the command name.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ba %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if line != "" && !dispatch(ctx, a, line) {
			return
		}
		if err != nil {
			return
		}
	}
}

// dispatch runs one command line. It returns false when the user asked to
// leave.
func dispatch(ctx context.Context, a execIface, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd, args := parts[0], parts[1:]

	var err error
	switch cmd {
	case "help":
		printlnFn(helpText(a.phase()))

	case "login":
		err = a.Login(ctx)

	case "verify":
		err = a.Verify(ctx)

	case "resend":
		err = a.Resend(ctx)

	case "cancel":
		err = a.Cancel(ctx)

	case "logout":
		err = a.Logout(ctx)

	case "whoami":
		err = a.WhoAmI(ctx)

	case "open":
		if len(args) == 0 {
			printlnFn("Usage: open <login|branches|users>")
			return true
		}
		err = a.Open(ctx, args[0])

	case "exit", "quit":
		printlnFn("Bye!")
		return false

	default:
		printlnFn("Unknown command:", cmd)
	}

	var sh shownError
	if err != nil && !errors.As(err, &sh) {
		printlnFn(cmd+" failed:", err)
	}
	return true
}

func helpText(p session.Phase) string {
	switch p {
	case session.Authenticated:
		return "Available commands: whoami, open <view>, logout, exit"
	case session.TwoFactorPending:
		return "Available commands: verify, resend, cancel, exit"
	default:
		return "Available commands: login, open <view>, exit"
	}
}
