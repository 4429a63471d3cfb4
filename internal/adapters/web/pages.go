package web

import (
	"errors"
	"net/http"
	"strings"

	"odoo-dashboard/internal/app"
	"odoo-dashboard/internal/core"
	"odoo-dashboard/web/templates/layouts"
	"odoo-dashboard/web/templates/pages"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ── Login page ────────────────────────────────────────────────────────────────

// loginPage handles GET /login. Redirects to / if already authenticated.
// The form starts empty; inline messages belong to the POST that caused them.
func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authenticate(r); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	notice, _ := layouts.Flash(r.URL.Query().Get("flash"))
	h.render(w, r, pages.Login(pages.LoginData{
		CompanyName: h.companyName,
		Notice:      notice,
	}))
}

// loginFormSubmit handles POST /login.
func (h *Handler) loginFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, "", "Invalid form submission.", false)
		return
	}
	username := r.FormValue("username")
	password := r.FormValue("password")

	res, err := h.signIn(r.Context(), username, password)
	if errors.Is(err, app.ErrLoginInProgress) {
		h.renderLogin(w, r, username, "", true)
		return
	}
	if err != nil {
		h.log.Error("sign-in", zap.Error(err))
		h.renderLogin(w, r, username, core.MsgConnectionFailed, false)
		return
	}
	if !res.Authenticated() {
		h.renderLogin(w, r, username, res.Message, false)
		return
	}

	if err := h.issueCookie(w, res.Session); err != nil {
		h.log.Error("issue auth cookie", zap.Error(err))
		h.svc.Logout(r.Context())
		h.renderLogin(w, r, username, "Server error. Please try again.", false)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// logoutPage handles POST /logout: ends the session, clears the cookie and
// shows the sign-in page.
func (h *Handler) logoutPage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authenticate(r); err == nil {
		h.svc.Logout(r.Context())
	}
	h.clearCookie(w)
	http.Redirect(w, r, "/login?flash="+layouts.FlashSignedOut, http.StatusSeeOther)
}

// ── Main area ─────────────────────────────────────────────────────────────────

// currentPage handles GET / and renders whatever page is selected.
func (h *Handler) currentPage(w http.ResponseWriter, r *http.Request) {
	st := h.svc.State()
	if !st.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	layout := h.buildAppLayoutData(st).WithFlash(r.URL.Query().Get("flash"))

	if st.Page == core.PageDashboard {
		h.render(w, r, pages.Dashboard(pages.DashboardData{
			Layout:  layout,
			Widgets: pages.WidgetViews(st.Widgets, h.panels),
			AddForm: st.AddForm,
			Catalog: core.WidgetCatalog(),
		}))
		return
	}
	h.render(w, r, pages.Placeholder(pages.PlaceholderData{
		Layout: layout,
		Body:   st.Page.Placeholder(),
	}))
}

// homePage handles GET /home, the logo link.
func (h *Handler) homePage(w http.ResponseWriter, r *http.Request) {
	h.svc.GoHome()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// navigatePage handles GET /page/{page}. Only menu pages are reachable.
func (h *Handler) navigatePage(w http.ResponseWriter, r *http.Request) {
	page, err := core.ParsePage(chi.URLParam(r, "page"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.svc.Navigate(page)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// toggleUserMenu handles POST /ui/user-menu. The page script asks for JSON
// and gets the new menu state; a plain form post is redirected.
func (h *Handler) toggleUserMenu(w http.ResponseWriter, r *http.Request) {
	st := h.svc.ToggleUserMenu()
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, struct {
			Open bool `json:"open"`
		}{st.UserMenuOpen})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// closeUserMenu handles POST /ui/user-menu/close, sent by the page script on
// an outside click.
func (h *Handler) closeUserMenu(w http.ResponseWriter, r *http.Request) {
	h.svc.CloseUserMenu()
	w.WriteHeader(http.StatusNoContent)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// buildAppLayoutData constructs AppLayoutData from the current state.
func (h *Handler) buildAppLayoutData(st core.State) layouts.AppLayoutData {
	return layouts.AppLayoutData{
		Title:        h.title,
		CompanyName:  h.companyName,
		Username:     st.Session.HeaderName(),
		ActiveNav:    st.Page,
		NavItems:     core.NavItems(),
		UserMenuOpen: st.UserMenuOpen,
	}
}
