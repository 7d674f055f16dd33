// Package client talks to the branch administration REST API.
//
// # Overview
//
// The package provides:
//  1. A transport contract (see the Client interface): Login,
//     VerifyTwoFactor, ResendTwoFactor, Logout and Me.
//  2. A JSON-over-HTTP implementation (see HTTPClient). Its transport is an
//     Authenticator that attaches the stored bearer token and the Accept
//     header to every request.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite session file and its embedded goose migrations.
//
// # Error Handling
//
// Every failed call returns *APIError, which unwraps to one of the sentinels
// in package common so callers can match with errors.Is:
//
//	400, 401, 403, 422   common.ErrUnauthorized
//	429                  common.ErrThrottled
//	5xx, transport       common.ErrUnavailable
//	unreadable 2xx       common.ErrBadResponse
//
// ServerMessage returns the message the server put in the error body.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation and the configured timeout.
package client
