package repl

import (
	"fmt"
	"io"
	"strings"

	"odoo-dashboard/internal/core"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// printState prints the header line and the main area of the current page.
func printState(w io.Writer, st core.State) {
	fmt.Fprintln(w)
	if !st.Authenticated() {
		fmt.Fprintln(w, "Not signed in.")
		return
	}
	fmt.Fprintln(w, strings.Repeat("=", 62))
	fmt.Fprintf(w, "  %-40s %19s\n", strings.ToUpper(string(st.Page)), st.Session.HeaderName())
	fmt.Fprintln(w, strings.Repeat("=", 62))

	if st.Page != core.PageDashboard {
		if text := st.Page.Placeholder(); text != "" {
			fmt.Fprintf(w, "  %s\n", text)
		}
		return
	}
	printWidgets(w, st.Widgets)
}

// printWidgets prints each widget with a one-line summary of its panel.
func printWidgets(w io.Writer, widgets []core.Widget) {
	if len(widgets) == 0 {
		fmt.Fprintln(w, "  No widgets. Add one with /add <type>.")
		return
	}
	content := core.StaticPanels()
	fmt.Fprintf(w, "  %-36s %-24s\n", "ID", "TITLE")
	fmt.Fprintln(w, strings.Repeat("-", 62))
	for _, wd := range widgets {
		fmt.Fprintf(w, "  %-36s %-24s\n", wd.ID, wd.Title)
		fmt.Fprintf(w, "      %s\n", panelSummary(wd.Kind, content))
	}
}

func panelSummary(kind core.WidgetKind, c core.PanelContent) string {
	switch kind {
	case core.WidgetSales:
		return fmt.Sprintf("Total Sales This Month: %s (%s from last month)",
			money(c.Sales.TotalThisMonth), percent(c.Sales.ChangePercent))
	case core.WidgetCustomers:
		return printer.Sprintf("Active Customers: %d (+%d new this week)", c.Customers.Active, c.Customers.NewThisWeek)
	case core.WidgetTasks:
		open := 0
		for _, t := range c.Tasks.Tasks {
			if !t.Done {
				open++
			}
		}
		return fmt.Sprintf("%d tasks, %d open", len(c.Tasks.Tasks), open)
	case core.WidgetInventory:
		return printer.Sprintf("In Stock: %d  Low Stock: %d  Out of Stock: %d",
			c.Inventory.InStock, c.Inventory.LowStock, c.Inventory.OutOfStock)
	default:
		return "Unknown widget type"
	}
}

func money(d decimal.Decimal) string {
	return "$" + printer.Sprintf("%d", d.Round(0).IntPart())
}

func percent(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(0) + "%"
	}
	return d.StringFixed(0) + "%"
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "ODOO DASHBOARD COMMANDS")
	fmt.Fprintln(w, strings.Repeat("=", 62))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  SESSION")
	fmt.Fprintln(w, "  /login [username]                Sign in (password is not echoed)")
	fmt.Fprintln(w, "  /logout                          Sign out")
	fmt.Fprintln(w, "  /state                           Show the current page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  NAVIGATION")
	fmt.Fprintln(w, "  /page <name>                     Dashboard, Customers, Products, Sales, Inventory")
	fmt.Fprintln(w, "  <name>                           Same as /page <name>")
	fmt.Fprintln(w, "  /home                            Back to the dashboard")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  WIDGETS")
	fmt.Fprintln(w, "  /widgets                         List widgets")
	fmt.Fprintln(w, "  /add <type> [title]              Add sales, customers, tasks or inventory")
	fmt.Fprintln(w, "  /remove <widget-id>              Remove a widget")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  /help                            Show this help")
	fmt.Fprintln(w, "  /exit                            Exit")
	fmt.Fprintln(w, strings.Repeat("=", 62))
}
