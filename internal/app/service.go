package app

import (
	"context"
	"errors"

	"odoo-dashboard/internal/core"
)

var (
	// ErrLoginInProgress is returned when a sign-in is submitted while another is in flight.
	ErrLoginInProgress = errors.New("a sign-in is already in progress")
	// ErrAlreadyAuthenticated is returned by Login when a session exists.
	ErrAlreadyAuthenticated = errors.New("already signed in")
	// ErrNotAuthenticated is returned by dashboard operations without a session.
	ErrNotAuthenticated = errors.New("not signed in")
)

// DashboardService is the single interface all adapters (web, CLI) call.
// It owns the session, navigation and widget state; implementations hold no
// presentation logic.
type DashboardService interface {
	// State returns a snapshot of the current state.
	State() core.State

	// Session returns the current session, or nil when anonymous.
	Session() *core.Session

	// Login validates the credentials locally, then authenticates against the
	// backend. Expected failures (missing fields, bad credentials, network) are
	// reported in the result, not as an error.
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)

	// SwitchUser is Login for a process that may already hold a session. The
	// active session survives unless the new credentials are accepted; empty
	// fields are rejected without a remote call.
	SwitchUser(ctx context.Context, req LoginRequest) (*LoginResult, error)

	// Logout destroys the backend session on a best-effort basis and always
	// returns to the anonymous state on the default page.
	Logout(ctx context.Context) core.State

	// Navigate selects a page.
	Navigate(page core.Page) core.State

	// GoHome resets to the default page.
	GoHome() core.State

	// ToggleUserMenu opens or closes the header dropdown.
	ToggleUserMenu() core.State

	// CloseUserMenu closes the header dropdown.
	CloseUserMenu() core.State

	// OpenAddWidgetForm shows the add-widget form.
	OpenAddWidgetForm() (core.State, error)

	// CancelAddWidgetForm hides the add-widget form.
	CancelAddWidgetForm() core.State

	// AddWidget appends a widget with a new id.
	AddWidget(req AddWidgetRequest) (*WidgetResult, error)

	// RemoveWidget deletes a widget; unknown ids are a no-op.
	RemoveWidget(id string) (core.State, error)
}
