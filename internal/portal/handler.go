// Copyright (c) 2026 OpsDesk. All rights reserved.

// Package portal serves the navigable route surface: every GET route the
// shell can visit resolves here to a view model, a redirect, or a not-found.
// The render-or-redirect decision itself belongs to package guard; handlers
// only execute the verdict.
package portal

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsdesk/portal/internal/gate"
	"github.com/opsdesk/portal/internal/guard"
	"github.com/opsdesk/portal/internal/platform/apperr"
	"github.com/opsdesk/portal/internal/platform/constants"
	requestutil "github.com/opsdesk/portal/internal/platform/request"
	"github.com/opsdesk/portal/internal/platform/respond"
	"github.com/opsdesk/portal/internal/session"
	"github.com/opsdesk/portal/internal/upstream"
	"github.com/opsdesk/portal/pkg/pointer"
	"github.com/opsdesk/portal/pkg/slug"
)

// Handler renders the portal's views.
type Handler struct {
	api    *upstream.Client
	logger *slog.Logger
}

// NewHandler creates a portal Handler.
func NewHandler(api *upstream.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{api: api, logger: logger}
}

// Routes mounts the view routes, including the wildcard.
func (h *Handler) Routes(router chi.Router) {
	router.Get(constants.RouteRoot, h.view(constants.RouteRoot, nil))
	router.Get(constants.RouteLogin, h.view(constants.RouteLogin, h.loginView))
	router.Get(constants.RouteRegister, h.view(constants.RouteRegister, h.registerView))
	router.Get(constants.RouteForgotPassword, h.view(constants.RouteForgotPassword, h.forgotPasswordView))
	router.Get(constants.RouteResetPassword, h.view(constants.RouteResetPassword, h.resetPasswordView))
	router.Get(constants.RouteDashboard, h.view(constants.RouteDashboard, h.dashboardView))
	router.Get(constants.RouteAdminUsers, h.view(constants.RouteAdminUsers, h.adminUsersView))
	router.Get(constants.RouteDepartments, h.view(constants.RouteDepartments, h.departmentsView))
	router.NotFound(h.notFoundView)
}

// renderFunc produces the view for a route once the guard has ruled Render.
type renderFunc func(w http.ResponseWriter, r *http.Request, sess *session.Session)

// view wraps a renderer with the guard verdict for its route.
func (h *Handler) view(path string, render renderFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		sess := session.MustFromContext(request.Context())

		decision := guard.Decide(sess.State(), path)
		switch decision.Kind {
		case guard.Redirect:
			respond.Redirect(writer, request, decision.Target)
		case guard.NotFound:
			h.notFoundView(writer, request)
		case guard.Placeholder:
			respond.OK(writer, View{Name: "loading"})
		case guard.Render:
			render(writer, request, sess)
		}
	}
}

func (h *Handler) loginView(writer http.ResponseWriter, _ *http.Request, _ *session.Session) {
	respond.OK(writer, View{
		Name: "login",
		Model: LoginModel{
			RegisterRoute:       constants.RouteRegister,
			ForgotPasswordRoute: constants.RouteForgotPassword,
		},
	})
}

/*
registerView renders the registration form with a live department selector.

A ?department=<slug> deep link preselects the matching department, so an
invite mail can send a new hire straight to their own team's form.
*/
func (h *Handler) registerView(writer http.ResponseWriter, request *http.Request, _ *session.Session) {
	departments, err := h.api.ListDepartments(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	options := make([]DepartmentOption, 0, len(departments))
	preselected := ""
	wanted := requestutil.Query(request, "department")
	for _, department := range departments {
		option := DepartmentOption{
			ID:   department.ID,
			Name: department.Name,
			Slug: slug.From(department.Name),
		}
		if wanted != "" && option.Slug == wanted {
			preselected = option.ID
		}
		options = append(options, option)
	}

	respond.OK(writer, View{
		Name:  "register",
		Model: RegisterModel{Departments: options, Preselected: preselected},
	})
}

func (h *Handler) forgotPasswordView(writer http.ResponseWriter, _ *http.Request, _ *session.Session) {
	respond.OK(writer, View{Name: "forgot-password"})
}

// resetPasswordView requires the emailed token as a query parameter. A
// visit without one is a dead end, not an error page: notify and send the
// user back to login.
func (h *Handler) resetPasswordView(writer http.ResponseWriter, request *http.Request, _ *session.Session) {
	token := requestutil.Query(request, "token")
	if token == "" {
		respond.OK(writer, View{
			Name: "redirect",
			Model: map[string]string{
				"target": constants.RouteLogin,
			},
			Notification: &Notification{
				Level:   levelWarning,
				Message: "The password reset link is invalid or incomplete. Please request a new one.",
			},
		})
		return
	}

	respond.OK(writer, View{
		Name:  "reset-password",
		Model: ResetPasswordModel{Token: token},
	})
}

// dashboardView renders the authenticated home view. Feature cards are
// filtered by the role gate, so a card a role may not use simply does not
// exist in its model.
func (h *Handler) dashboardView(writer http.ResponseWriter, _ *http.Request, sess *session.Session) {
	cards := []gate.Section[FeatureCard]{
		{Content: FeatureCard{Title: "Departments", Route: constants.RouteDepartments}},
		{
			Content: FeatureCard{Title: "User Management", Route: constants.RouteAdminUsers},
			Roles:   []session.Role{session.RoleAdmin},
		},
	}

	respond.OK(writer, View{
		Name: "dashboard",
		Model: DashboardModel{
			User:  sess.User(),
			Cards: gate.Visible(sess.User().Role, cards),
		},
	})
}

/*
adminUsersView renders the user directory.

Two gates stack here: the route guard has already required authentication,
and the role gate hides the route's existence from non-admins — they get
the same not-found view an unknown path would, not a forbidden page that
confirms there is something to be forbidden from.

A 401 from the directory call means the bearer token is no longer honored
upstream: the session is cleared and the user lands back on login, exactly
as if they had logged out.
*/
func (h *Handler) adminUsersView(writer http.ResponseWriter, request *http.Request, sess *session.Session) {
	if !gate.Allowed(sess.User().Role, session.RoleAdmin) {
		h.notFoundView(writer, request)
		return
	}

	users, err := h.api.ListUsers(request.Context(), sess.Token())
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			h.implicitLogout(writer, request, sess)
			return
		}
		respond.Error(writer, request, err)
		return
	}

	rows := make([]DirectoryRow, 0, len(users))
	for _, user := range users {
		rows = append(rows, DirectoryRow{
			ID:         user.ID,
			Name:       user.Name,
			Email:      user.Email,
			Role:       user.Role,
			Active:     user.Active,
			Department: pointer.Val(user.Department).Name,
		})
	}

	respond.OK(writer, View{
		Name:  "admin-users",
		Model: AdminUsersModel{Users: rows},
	})
}

func (h *Handler) departmentsView(writer http.ResponseWriter, request *http.Request, _ *session.Session) {
	departments, err := h.api.ListDepartments(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	options := make([]DepartmentOption, 0, len(departments))
	for _, department := range departments {
		options = append(options, DepartmentOption{
			ID:   department.ID,
			Name: department.Name,
			Slug: slug.From(department.Name),
		})
	}

	respond.OK(writer, View{
		Name:  "departments",
		Model: DepartmentsModel{Departments: options},
	})
}

// notFoundView is the wildcard. Unknown paths render a way back to the
// root dispatcher rather than a bare 404 body.
func (h *Handler) notFoundView(writer http.ResponseWriter, _ *http.Request) {
	appErr := apperr.NotFound("Page")
	respond.JSON(writer, appErr.HTTPStatus, View{
		Name:  "not-found",
		Model: NotFoundModel{HomeRoute: constants.RouteRoot},
	})
}

// implicitLogout reacts to an upstream token rejection on a privileged
// call: the local session is invalidated and the user returns to login.
func (h *Handler) implicitLogout(writer http.ResponseWriter, request *http.Request, sess *session.Session) {
	h.logger.WarnContext(request.Context(), "portal_implicit_logout",
		slog.String("user_id", sess.User().ID),
	)

	if err := sess.Clear(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, request, constants.RouteLogin)
}
