// Copyright (c) 2026 OpsDesk. All rights reserved.

package account

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsdesk/portal/internal/platform/apperr"
	"github.com/opsdesk/portal/internal/platform/constants"
	requestutil "github.com/opsdesk/portal/internal/platform/request"
	"github.com/opsdesk/portal/internal/platform/respond"
	"github.com/opsdesk/portal/internal/session"
)

/*
Handler exposes the credential flows as form-submission endpoints.

Error responses echo the submitted form with secret fields cleared, so the
shell can re-render inputs without the user retyping everything except the
password. Success responses are declarative redirects to the flow's landing
route.
*/
type Handler struct {
	service *Service
}

// NewHandler creates an account Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the submission endpoints. Reads of the same paths are view
// routes owned by the portal package.
func (h *Handler) Routes(router chi.Router) {
	router.Post(constants.RouteLogin, h.Login)
	router.Post(constants.RouteRegister, h.Register)
	router.Post(constants.RouteForgotPassword, h.ForgotPassword)
	router.Post(constants.RouteResetPassword, h.ResetPassword)
	router.Post(constants.RouteLogout, h.Logout)
}

// Login handles POST /login.
func (h *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	sess := session.MustFromContext(request.Context())

	var form LoginForm
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := h.service.Login(request.Context(), sess, form); err != nil {
		// A stale commit means a concurrent submission for this session
		// already signed in; the duplicate lands where the winner did.
		if errors.Is(err, session.ErrRevisionConflict) {
			respond.Redirect(writer, request, constants.RouteDashboard)
			return
		}
		// A rejected login is the password's fault as far as the form is
		// concerned; bind the remote message to that field.
		if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus == http.StatusUnauthorized {
			err = appErr.WithField("password")
		}
		respond.ErrorWithForm(writer, request, err, form.Echo())
		return
	}

	respond.Redirect(writer, request, constants.RouteDashboard)
}

// Register handles POST /register.
func (h *Handler) Register(writer http.ResponseWriter, request *http.Request) {
	sess := session.MustFromContext(request.Context())

	var form RegistrationForm
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := h.service.Register(request.Context(), sess, form); err != nil {
		respond.ErrorWithForm(writer, request, err, form.Echo())
		return
	}

	// Registration never signs the user in; the login view is next.
	respond.Redirect(writer, request, constants.RouteLogin)
}

// ForgotPassword handles POST /forgot-password.
func (h *Handler) ForgotPassword(writer http.ResponseWriter, request *http.Request) {
	sess := session.MustFromContext(request.Context())

	var form ForgotPasswordForm
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := h.service.ForgotPassword(request.Context(), sess, form); err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus < 500 && len(appErr.Details) == 0 {
			err = appErr.WithField("email")
		}
		respond.ErrorWithForm(writer, request, err, form.Echo())
		return
	}

	respond.Redirect(writer, request, constants.RouteLogin)
}

// ResetPassword handles POST /reset-password.
func (h *Handler) ResetPassword(writer http.ResponseWriter, request *http.Request) {
	sess := session.MustFromContext(request.Context())

	var form ResetPasswordForm
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := h.service.ResetPassword(request.Context(), sess, form); err != nil {
		respond.ErrorWithForm(writer, request, err, form.Echo())
		return
	}

	respond.Redirect(writer, request, constants.RouteLogin)
}

// Logout handles POST /logout.
func (h *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	sess := session.MustFromContext(request.Context())

	if err := h.service.Logout(request.Context(), sess); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Redirect(writer, request, constants.RouteLogin)
}
