package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/branchadmin/internal/client/tokenstore"
	"github.com/dmitrijs2005/branchadmin/internal/logging"
)

// captureTransport records the request it was given.
type captureTransport struct {
	got *http.Request
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.got = req
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: req}, nil
}

type brokenStore struct {
	tokenstore.Store
}

func (brokenStore) Load(context.Context) (string, error) {
	return "", errors.New("database is locked")
}

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://api.test/me", nil)
	require.NoError(t, err)
	return req
}

func TestAuthenticator_AddsBearerWhenTokenStored(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "abc"))
	base := &captureTransport{}
	auth := NewAuthenticator(store, base, logging.Nop())

	req := newRequest(t)
	_, err := auth.RoundTrip(req)
	require.NoError(t, err)

	require.NotNil(t, base.got)
	assert.Equal(t, "Bearer abc", base.got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", base.got.Header.Get("Accept"))
	assert.Empty(t, req.Header.Get("Authorization"), "caller's request must not be mutated")
}

func TestAuthenticator_NoTokenOnlyAccept(t *testing.T) {
	base := &captureTransport{}
	auth := NewAuthenticator(tokenstore.NewMemoryStore(), base, logging.Nop())

	_, err := auth.RoundTrip(newRequest(t))
	require.NoError(t, err)

	assert.Empty(t, base.got.Header.Values("Authorization"))
	assert.Equal(t, "application/json", base.got.Header.Get("Accept"))
}

func TestAuthenticator_ReadsStoreOnEveryRequest(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	base := &captureTransport{}
	auth := NewAuthenticator(store, base, logging.Nop())

	_, err := auth.RoundTrip(newRequest(t))
	require.NoError(t, err)
	assert.Empty(t, base.got.Header.Get("Authorization"))

	require.NoError(t, store.Save(ctx, "fresh"))
	_, err = auth.RoundTrip(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "Bearer fresh", base.got.Header.Get("Authorization"))

	require.NoError(t, store.Delete(ctx))
	_, err = auth.RoundTrip(newRequest(t))
	require.NoError(t, err)
	assert.Empty(t, base.got.Header.Get("Authorization"))
}

func TestAuthenticator_StoreErrorSendsUnauthenticated(t *testing.T) {
	base := &captureTransport{}
	auth := NewAuthenticator(brokenStore{}, base, logging.Nop())

	_, err := auth.RoundTrip(newRequest(t))
	require.NoError(t, err)

	assert.Empty(t, base.got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", base.got.Header.Get("Accept"))
}
