package client

import (
	"net/http"

	"github.com/dmitrijs2005/branchadmin/internal/client/tokenstore"
	"github.com/dmitrijs2005/branchadmin/internal/common"
	"github.com/dmitrijs2005/branchadmin/internal/logging"
)

// Authenticator decorates every outgoing request with the bearer token
// currently held by the token store and asks for JSON. It never retries
// and never translates errors.
//
// The token is read from the store on each request rather than from the
// session, so a token written by a login that just completed is picked up
// by the very next call.
type Authenticator struct {
	base   http.RoundTripper
	tokens tokenstore.Store
	log    logging.Logger
}

// NewAuthenticator wraps base. A nil base means http.DefaultTransport.
func NewAuthenticator(tokens tokenstore.Store, base http.RoundTripper, log logging.Logger) *Authenticator {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Authenticator{base: base, tokens: tokens, log: log}
}

func (a *Authenticator) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.Header.Set(common.AcceptHeaderName, common.JSONMediaType)

	token, err := a.tokens.Load(req.Context())
	if err != nil {
		a.log.Warn(req.Context(), "token store unreadable, sending request without credentials",
			"error", err, "path", req.URL.Path)
	} else if token != "" {
		out.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	}

	return a.base.RoundTrip(out)
}
