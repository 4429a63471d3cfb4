package app

import "odoo-dashboard/internal/core"

// LoginRequest is the sign-in form submission.
type LoginRequest struct {
	Username string
	Password string
}

// AddWidgetRequest is the add-widget form submission.
type AddWidgetRequest struct {
	Kind  core.WidgetKind
	Title string // optional; blank means the kind's default title
}
