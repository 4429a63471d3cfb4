package web

import (
	"errors"
	"net/http"

	"odoo-dashboard/internal/app"
	"odoo-dashboard/internal/core"
	"odoo-dashboard/web/templates/layouts"

	"github.com/go-chi/chi/v5"
)

// ── Browser forms ─────────────────────────────────────────────────────────────

// openAddWidgetForm handles POST /dashboard/widgets/form.
func (h *Handler) openAddWidgetForm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.OpenAddWidgetForm(); err != nil {
		h.sessionGone(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// cancelAddWidgetForm handles POST /dashboard/widgets/form/cancel.
func (h *Handler) cancelAddWidgetForm(w http.ResponseWriter, r *http.Request) {
	h.svc.CancelAddWidgetForm()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// addWidgetForm handles POST /dashboard/widgets.
func (h *Handler) addWidgetForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	_, err := h.svc.AddWidget(app.AddWidgetRequest{
		Kind:  core.WidgetKind(r.FormValue("type")),
		Title: r.FormValue("title"),
	})
	if err != nil {
		h.sessionGone(w, r, err)
		return
	}
	http.Redirect(w, r, "/?flash="+layouts.FlashWidgetAdded, http.StatusSeeOther)
}

// removeWidgetForm handles POST /dashboard/widgets/{id}/remove.
func (h *Handler) removeWidgetForm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.RemoveWidget(chi.URLParam(r, "id")); err != nil {
		h.sessionGone(w, r, err)
		return
	}
	http.Redirect(w, r, "/?flash="+layouts.FlashWidgetRemoved, http.StatusSeeOther)
}

// sessionGone handles a session that ended between the auth check and the
// operation.
func (h *Handler) sessionGone(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, app.ErrNotAuthenticated) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// ── JSON API ──────────────────────────────────────────────────────────────────

// apiState handles GET /api/state.
func (h *Handler) apiState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.State())
}

// apiNavigate handles POST /api/navigate with {"page": "..."}.
func (h *Handler) apiNavigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page string `json:"page"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	page, err := core.ParsePage(req.Page)
	if err != nil {
		writeError(w, r, err.Error(), "UNKNOWN_PAGE", http.StatusBadRequest)
		return
	}
	writeJSON(w, h.svc.Navigate(page))
}

// apiListWidgets handles GET /api/widgets.
func (h *Handler) apiListWidgets(w http.ResponseWriter, r *http.Request) {
	widgets := h.svc.State().Widgets
	if widgets == nil {
		widgets = []core.Widget{}
	}
	writeJSON(w, widgets)
}

// apiAddWidget handles POST /api/widgets with {"type": "...", "title": "..."}.
func (h *Handler) apiAddWidget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind  core.WidgetKind `json:"type"`
		Title string          `json:"title"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.AddWidget(app.AddWidgetRequest{Kind: req.Kind, Title: req.Title})
	if err != nil {
		h.apiSessionGone(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, res.Widget)
}

// apiRemoveWidget handles DELETE /api/widgets/{id}. Unknown ids succeed.
func (h *Handler) apiRemoveWidget(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.RemoveWidget(chi.URLParam(r, "id")); err != nil {
		h.apiSessionGone(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) apiSessionGone(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, app.ErrNotAuthenticated) {
		writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}
	writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
}
