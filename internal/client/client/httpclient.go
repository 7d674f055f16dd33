package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/branchadmin/internal/client/models"
	"github.com/dmitrijs2005/branchadmin/internal/client/tokenstore"
	"github.com/dmitrijs2005/branchadmin/internal/common"
	"github.com/dmitrijs2005/branchadmin/internal/logging"
)

const (
	pathLogin     = "/login"
	pathVerify2FA = "/login/verify-2fa"
	pathResend2FA = "/login/resend-2fa"
	pathLogout    = "/logout"
	pathMe        = "/me"

	// maxBodySize bounds how much of a response is read.
	maxBodySize = 1 << 20
)

// HTTPClient implements Client over the REST/JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client whose transport is an Authenticator over
// base (http.DefaultTransport when nil).
func NewHTTPClient(baseURL string, timeout time.Duration, tokens tokenstore.Store,
	base http.RoundTripper, log logging.Logger) *HTTPClient {
	log = log.With("component", "api")
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: NewAuthenticator(tokens, base, log),
		},
		log: log,
	}
}

type userDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	RoleID   int    `json:"role_id"`
	BranchID *int64 `json:"sucursal_id"`
}

func (u userDTO) toModel() models.User {
	return models.User{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		RoleID:   models.RoleID(u.RoleID),
		BranchID: u.BranchID,
	}
}

type authResponse struct {
	Token       string   `json:"token"`
	User        *userDTO `json:"user"`
	Requires2FA bool     `json:"requires_2fa"`
	Message     string   `json:"message"`
	Email       string   `json:"email"`
}

func (r authResponse) toResult(code int) (*AuthResult, error) {
	if r.Token == "" || r.User == nil {
		return nil, badResponse(code, "missing token or user")
	}
	return &AuthResult{Token: r.Token, User: r.User.toModel()}, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resendRequest struct {
	Email string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login posts the credentials. The response either carries a token and
// user, or asks for a second factor.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*LoginResult, error) {
	var resp authResponse
	code, err := c.do(ctx, http.MethodPost, pathLogin, loginRequest{Email: email, Password: string(password)}, &resp)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.Requires2FA && resp.Token == "":
		challengeEmail := resp.Email
		if challengeEmail == "" {
			challengeEmail = email
		}
		return &LoginResult{Challenge: &models.TwoFactorChallenge{Email: challengeEmail, Message: resp.Message}}, nil
	case resp.Requires2FA:
		return nil, badResponse(code, "both token and second-factor challenge")
	}

	auth, err := resp.toResult(code)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Auth: auth}, nil
}

func (c *HTTPClient) VerifyTwoFactor(ctx context.Context, email, code string) (*AuthResult, error) {
	var resp authResponse
	status, err := c.do(ctx, http.MethodPost, pathVerify2FA, verifyRequest{Email: email, Code: code}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toResult(status)
}

// ResendTwoFactor asks the server to send a new code and returns its
// confirmation message.
func (c *HTTPClient) ResendTwoFactor(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	if _, err := c.do(ctx, http.MethodPost, pathResend2FA, resendRequest{Email: email}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, pathLogout, struct{}{}, nil)
	return err
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var resp userDTO
	status, err := c.do(ctx, http.MethodGet, pathMe, nil, &resp)
	if err != nil {
		return nil, err
	}
	if resp.ID == 0 {
		return nil, badResponse(status, "user without id")
	}
	u := resp.toModel()
	return &u, nil
}

// do sends one request and decodes a 2xx body into out (when non-nil).
// It returns the status code of the response it understood.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", common.JSONMediaType)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	log := c.log.With("method", method, "path", path, "request_id", requestID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return 0, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return resp.StatusCode, transportError(err)
	}

	log.Debug(ctx, "response", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, mapStatus(resp.StatusCode, raw)
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, badResponse(resp.StatusCode, "decode body: "+err.Error())
	}
	return resp.StatusCode, nil
}
