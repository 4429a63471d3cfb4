// Package pages renders the dashboard's HTML pages as templ components.
package pages

import (
	"embed"
	"html/template"

	"odoo-dashboard/internal/core"
	"odoo-dashboard/web/templates/layouts"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed *.html
var files embed.FS

var printer = message.NewPrinter(language.English)

var funcs = template.FuncMap{
	"money":   formatMoney,
	"count":   formatCount,
	"percent": formatPercent,
}

// Each page is a clone of the shared layout and panels with its own "content".
var (
	loginTmpl       = template.Must(template.New("login.html").Funcs(funcs).ParseFS(files, "login.html"))
	base            = template.Must(template.New("base").Funcs(funcs).ParseFS(files, "layout.html", "panels.html"))
	dashboardTmpl   = template.Must(template.Must(base.Clone()).ParseFS(files, "dashboard.html"))
	placeholderTmpl = template.Must(template.Must(base.Clone()).ParseFS(files, "placeholder.html"))
)

// LoginData configures the sign-in page.
type LoginData struct {
	CompanyName string
	Username    string
	Error       string
	Busy        bool
	Notice      string // informational banner, e.g. after sign-out
}

// DashboardData configures the dashboard page.
type DashboardData struct {
	Layout  layouts.AppLayoutData
	Widgets []WidgetView
	AddForm core.AddWidgetForm
	Catalog []core.WidgetType
}

// PlaceholderData configures the pages that have no content yet. An empty
// Body renders an empty main area.
type PlaceholderData struct {
	Layout layouts.AppLayoutData
	Body   string
}

// WidgetView is one rendered widget.
type WidgetView struct {
	ID     string
	Title  string
	Panel  string // panel template selector, see PanelFor
	Values core.PanelContent
}

// Panel selectors.
const (
	PanelSales     = "sales"
	PanelCustomers = "customers"
	PanelTasks     = "tasks"
	PanelInventory = "inventory"
	PanelUnknown   = "unknown"
)

// PanelFor picks the panel a widget kind renders; unknown kinds get the
// fallback placeholder.
func PanelFor(kind core.WidgetKind) string {
	switch kind {
	case core.WidgetSales:
		return PanelSales
	case core.WidgetCustomers:
		return PanelCustomers
	case core.WidgetTasks:
		return PanelTasks
	case core.WidgetInventory:
		return PanelInventory
	default:
		return PanelUnknown
	}
}

// WidgetViews prepares widgets for rendering.
func WidgetViews(ws []core.Widget, content core.PanelContent) []WidgetView {
	out := make([]WidgetView, len(ws))
	for i, w := range ws {
		out[i] = WidgetView{ID: w.ID, Title: w.Title, Panel: PanelFor(w.Kind), Values: content}
	}
	return out
}

// Login renders the sign-in page.
func Login(d LoginData) templ.Component {
	return templ.FromGoHTML(loginTmpl, d)
}

// Dashboard renders the widget page inside the app layout.
func Dashboard(d DashboardData) templ.Component {
	return templ.FromGoHTML(dashboardTmpl.Lookup("dashboard.html"), d)
}

// Placeholder renders a page without content inside the app layout.
func Placeholder(d PlaceholderData) templ.Component {
	return templ.FromGoHTML(placeholderTmpl.Lookup("placeholder.html"), d)
}

func formatMoney(d decimal.Decimal) string {
	return "$" + printer.Sprintf("%d", d.Round(0).IntPart())
}

func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

func formatPercent(d decimal.Decimal) string {
	sign := ""
	if d.IsPositive() {
		sign = "+"
	}
	return sign + d.StringFixed(0) + "%"
}
