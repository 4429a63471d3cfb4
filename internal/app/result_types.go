package app

import "odoo-dashboard/internal/core"

// LoginResult is returned by Login.
type LoginResult struct {
	Session *core.Session // nil unless the sign-in succeeded
	Message string        // inline message for the form when Session is nil
	State   core.State
}

// Authenticated reports whether the sign-in succeeded.
func (r *LoginResult) Authenticated() bool {
	return r != nil && r.Session != nil
}

// WidgetResult is returned by AddWidget.
type WidgetResult struct {
	Widget core.Widget
	State  core.State
}
