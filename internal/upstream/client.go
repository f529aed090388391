// Copyright (c) 2026 OpsDesk. All rights reserved.

// Package upstream is the HTTP client for the remote OpsDesk API, the sole
// authority on credentials and directory data. The gateway never validates
// a password or mints a bearer token itself; everything flows through here.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/opsdesk/portal/internal/platform/apperr"
)

// ErrUnauthorized signals a 401 from a bearer-authenticated endpoint. The
// caller must treat it as an implicit logout: the token the session holds is
// no longer honored upstream.
var ErrUnauthorized = errors.New("upstream: bearer token rejected")

// Client talks to the remote API over JSON.
//
// # Error Mapping
//
//   - Transport failures (DNS, refused connection, timeout) become a generic
//     502 [apperr.Upstream]; the user sees a retry message, the log keeps
//     the transport detail.
//   - Upstream 4xx/5xx responses with a {message} body surface that message
//     verbatim, preserving texts like "Invalid credentials".
//   - 401 on bearer-authenticated calls becomes [ErrUnauthorized].
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Login exchanges credentials for a bearer token and the account record.
// A rejected login surfaces the remote message as a 401.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var decoded loginResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, apperr.Upstream(fmt.Errorf("upstream: malformed login response: %w", err))
	}
	if decoded.Token == "" {
		return nil, apperr.Upstream(errors.New("upstream: login response carries no token"))
	}
	if err := decoded.User.Validate(); err != nil {
		return nil, apperr.Upstream(fmt.Errorf("upstream: login response user record rejected: %w", err))
	}

	return &LoginResult{Token: decoded.Token, User: &decoded.User}, nil
}

// Signup registers a new account. The remote API owns all uniqueness and
// policy checks; a 2xx means the account exists and the caller should send
// the user to the login view.
func (c *Client) Signup(ctx context.Context, input SignupInput) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/signup", "", input)
	return err
}

// ForgotPassword asks the remote API to start a reset flow for email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/forgot-password", "", forgotPasswordRequest{Email: email})
	return err
}

// ResetPassword completes a reset flow with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/reset-password", "", resetPasswordRequest{
		Token:       token,
		NewPassword: newPassword,
	})
	return err
}

// ListDepartments fetches the department selector entries. Unauthenticated.
func (c *Client) ListDepartments(ctx context.Context) ([]Department, error) {
	body, err := c.do(ctx, http.MethodGet, "/departments", "", nil)
	if err != nil {
		return nil, err
	}

	var departments []Department
	if err := json.Unmarshal(body, &departments); err != nil {
		return nil, apperr.Upstream(fmt.Errorf("upstream: malformed departments response: %w", err))
	}
	return departments, nil
}

// ListUsers fetches the user directory with the session's bearer token.
// Returns [ErrUnauthorized] when the token is no longer honored.
func (c *Client) ListUsers(ctx context.Context, token string) ([]DirectoryUser, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/users", token, nil)
	if err != nil {
		return nil, err
	}

	var users []DirectoryUser
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, apperr.Upstream(fmt.Errorf("upstream: malformed users response: %w", err))
	}
	return users, nil
}

// do performs one JSON round trip and applies the error mapping. token, when
// non-empty, is attached as a bearer credential and turns a 401 into
// [ErrUnauthorized].
func (c *Client) do(ctx context.Context, method, path, token string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("upstream: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("upstream: failed to build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return nil, apperr.Upstream(fmt.Errorf("upstream: failed to read response: %w", err))
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return body, nil
	}

	if response.StatusCode == http.StatusUnauthorized && token != "" {
		return nil, ErrUnauthorized
	}

	return nil, c.decodeError(response.StatusCode, body)
}

// decodeError turns a non-2xx response into an [apperr.AppError], surfacing
// the remote {message} when one is present.
func (c *Client) decodeError(status int, body []byte) error {
	message := "Request failed"
	var decoded apiError
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.Message != "" {
		message = decoded.Message
	}

	switch {
	case status == http.StatusUnauthorized:
		return apperr.Unauthorized(message)
	case status == http.StatusNotFound:
		return &apperr.AppError{Code: "NOT_FOUND", Message: message, HTTPStatus: http.StatusNotFound}
	case status >= 400 && status < 500:
		return apperr.ValidationError(message)
	default:
		return apperr.Upstream(fmt.Errorf("upstream: status %d: %s", status, message))
	}
}
