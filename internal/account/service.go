// Copyright (c) 2026 OpsDesk. All rights reserved.

// Package account implements credential submission: login, registration,
// forgot-password and reset-password, plus logout. It validates form shape
// locally, forwards valid submissions to the remote API exactly once, and
// applies the results to the session.
package account

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/opsdesk/portal/internal/session"
	"github.com/opsdesk/portal/internal/upstream"
)

// Service coordinates form validation, the outbound call, and the session
// mutation for each credential flow.
//
// # Duplicate Submission
//
// A double-clicked submit button must not produce two upstream requests.
// Concurrent identical submissions from the same browser session are
// collapsed onto one in-flight call per form kind; every waiter receives the
// shared result. Sequential resubmissions are unaffected.
type Service struct {
	api    *upstream.Client
	group  singleflight.Group
	logger *slog.Logger
}

// NewService constructs the account service.
func NewService(api *upstream.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: api, logger: logger}
}

// Login validates the form, exchanges the credentials upstream, and commits
// the result to the session. The session mutates only on full success.
func (s *Service) Login(ctx context.Context, sess *session.Session, form LoginForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	result, err, _ := s.inflight(sess.ID(), "login", func() (any, error) {
		return s.api.Login(ctx, form.Email, form.Password)
	})
	if err != nil {
		return err
	}

	login := result.(*upstream.LoginResult)
	if err := sess.Commit(ctx, login.Token, login.User); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "account_login_succeeded",
		slog.String("user_id", login.User.ID),
		slog.String("role", string(login.User.Role)),
	)
	return nil
}

// Register validates the form and creates the account upstream. The session
// is not touched: the user signs in afterwards through the login view.
func (s *Service) Register(ctx context.Context, sess *session.Session, form RegistrationForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	_, err, _ := s.inflight(sess.ID(), "register", func() (any, error) {
		return nil, s.api.Signup(ctx, upstream.SignupInput{
			Name:         form.Name,
			Email:        form.Email,
			Password:     form.Password,
			Role:         string(session.RoleUser),
			DepartmentID: form.DepartmentID,
		})
	})
	return err
}

// ForgotPassword validates the form and starts a reset flow upstream.
func (s *Service) ForgotPassword(ctx context.Context, sess *session.Session, form ForgotPasswordForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	_, err, _ := s.inflight(sess.ID(), "forgot_password", func() (any, error) {
		return nil, s.api.ForgotPassword(ctx, form.Email)
	})
	return err
}

// ResetPassword validates the form and completes a reset flow upstream.
func (s *Service) ResetPassword(ctx context.Context, sess *session.Session, form ResetPasswordForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	_, err, _ := s.inflight(sess.ID(), "reset_password", func() (any, error) {
		return nil, s.api.ResetPassword(ctx, form.Token, form.Password)
	})
	return err
}

// Logout clears the session and its persisted record. It cannot fail for
// lack of authentication: logging out an anonymous session is a no-op.
func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	userID := ""
	if sess.User() != nil {
		userID = sess.User().ID
	}

	if err := sess.Clear(ctx); err != nil {
		return err
	}

	if userID != "" {
		s.logger.InfoContext(ctx, "account_logout_completed",
			slog.String("user_id", userID),
		)
	}
	return nil
}

// inflight collapses concurrent duplicate submissions onto one upstream
// call, keyed by browser session and form kind.
func (s *Service) inflight(sessionID, form string, fn func() (any, error)) (any, error, bool) {
	return s.group.Do(sessionID+"|"+form, fn)
}
