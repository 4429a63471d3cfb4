package layouts

import "odoo-dashboard/internal/core"

// AppLayoutData is passed to the app layout to configure the page shell.
type AppLayoutData struct {
	Title        string // header title, e.g. "Odoo Dashboard"
	CompanyName  string // shown on the sidebar logo
	Username     string // header user menu label
	ActiveNav    core.Page
	NavItems     []core.NavItem
	UserMenuOpen bool
	FlashMsg     string
	FlashKind    string // "success", "error", "warning", "info"
}

// Flash keys carried in the ?flash= query parameter of a redirect.
const (
	FlashWidgetAdded   = "added"
	FlashWidgetRemoved = "removed"
	FlashSignedOut     = "signed-out"
)

var flashes = map[string]struct{ msg, kind string }{
	FlashWidgetAdded:   {"Widget added.", "success"},
	FlashWidgetRemoved: {"Widget removed.", "success"},
	FlashSignedOut:     {"You have been signed out.", "info"},
}

// Flash resolves a flash key to its message and kind. Unknown keys yield
// empty strings, so arbitrary query text is never echoed.
func Flash(key string) (msg, kind string) {
	f := flashes[key]
	return f.msg, f.kind
}

// WithFlash returns d showing the message for key.
func (d AppLayoutData) WithFlash(key string) AppLayoutData {
	d.FlashMsg, d.FlashKind = Flash(key)
	return d
}

// IsActive reports whether p is the selected menu entry.
func (d AppLayoutData) IsActive(p core.Page) bool {
	return d.ActiveNav == p
}
