package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"odoo-dashboard/internal/app"
	"odoo-dashboard/internal/config"
	"odoo-dashboard/internal/core"
	webui "odoo-dashboard/web"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler holds the DashboardService, the chi router and the page settings.
type Handler struct {
	svc          app.DashboardService
	router       chi.Router
	log          *zap.Logger
	jwtSecret    string
	cookieSecure bool
	title        string
	companyName  string
	panels       core.PanelContent
	fileServer   http.Handler
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.DashboardService, cfg config.Config, log *zap.Logger) (http.Handler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	staticFS, err := webui.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("web/static embed sub-FS: %w", err)
	}
	upstream, err := url.Parse(cfg.Odoo.URL)
	if err != nil {
		return nil, fmt.Errorf("odoo url: %w", err)
	}

	h := &Handler{
		svc:          svc,
		log:          log,
		jwtSecret:    cfg.Server.JWTSecret,
		cookieSecure: cfg.Server.CookieSecure,
		title:        cfg.Dashboard.Title,
		companyName:  cfg.Dashboard.CompanyName,
		panels:       core.StaticPanels(),
		fileServer:   http.FileServer(http.FS(staticFS)),
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(cfg.Server.AllowedOrigins))

	// ── Health (public) ───────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Auth (public API) ─────────────────────────────────────────────────────
	r.With(RequestBodyLimit(1<<20)).Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Static files served at /static/* ─────────────────────────────────────
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/static", h.fileServer).ServeHTTP(w, req)
	})

	// ── Backend proxy, so the browser talks to Odoo same-origin ──────────────
	prefix := cfg.Odoo.ProxyPrefix
	r.Handle(prefix+"/*", http.StripPrefix(prefix, newBackendProxy(upstream, log)))

	// ── Browser login/logout (public HTML) ───────────────────────────────────
	r.Get("/login", h.loginPage)
	r.Post("/login", h.loginFormSubmit)
	r.Post("/logout", h.logoutPage)

	// ── Protected browser routes (redirect to /login if unauthenticated) ─────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuthBrowser)
		r.Get("/", h.currentPage)
		r.Get("/home", h.homePage)
		r.Get("/page/{page}", h.navigatePage)
		r.Post("/ui/user-menu", h.toggleUserMenu)
		r.Post("/ui/user-menu/close", h.closeUserMenu)
		r.Post("/dashboard/widgets/form", h.openAddWidgetForm)
		r.Post("/dashboard/widgets/form/cancel", h.cancelAddWidgetForm)
		r.Post("/dashboard/widgets", h.addWidgetForm)
		r.Post("/dashboard/widgets/{id}/remove", h.removeWidgetForm)
	})

	// ── Protected API routes (return 401 JSON if unauthenticated) ────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)
		r.Get("/api/state", h.apiState)
		r.Post("/api/navigate", h.apiNavigate)
		r.Get("/api/widgets", h.apiListWidgets)
		r.Post("/api/widgets", h.apiAddWidget)
		r.Delete("/api/widgets/{id}", h.apiRemoveWidget)
	})

	h.router = r
	return r, nil
}

// health reports service status and whether a session is active.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status        string `json:"status"`
		Authenticated bool   `json:"authenticated"`
	}
	writeJSON(w, response{Status: "ok", Authenticated: h.svc.Session() != nil})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
