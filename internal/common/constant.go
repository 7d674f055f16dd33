// Package common contains shared constants, sentinel errors and small helpers
// used across the branch admin client.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the token in the Authorization header.
	BearerScheme = "Bearer "

	// AcceptHeaderName is set to JSONMediaType on every outbound request.
	AcceptHeaderName = "Accept"

	// RequestIDHeaderName correlates client log lines with server logs.
	RequestIDHeaderName = "X-Request-Id"

	JSONMediaType = "application/json"

	// TokenStorageKey is the metadata key of the persisted bearer token.
	TokenStorageKey = "auth_token"
)
