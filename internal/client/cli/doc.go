// Package cli provides the interactive branch admin command-line client.
//
// It wires configuration, the local session database, the API client and
// the authentication services, then runs a REPL. Typical flow: validate any
// session left by a previous run in the background, sign in with email and
// password, enter the verification code when the server asks for one, and
// navigate between views through the route gate.
//
// Key features:
//   - Login with optional second factor (verify / resend / cancel)
//   - Logout that always ends the local session
//   - whoami and open <view>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
