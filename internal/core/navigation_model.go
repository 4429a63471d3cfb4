package core

import (
	"errors"
	"fmt"
	"strings"
)

// Page identifies what the main area shows.
type Page string

const (
	PageDashboard Page = "Dashboard"
	PageCustomers Page = "Customers"
	PageProducts  Page = "Products"
	PageSales     Page = "Sales"
	PageInventory Page = "Inventory"
)

// DefaultPage is shown on load, on logo click and after logout.
const DefaultPage = PageDashboard

// ErrUnknownPage is returned by ParsePage for identifiers outside the menu.
var ErrUnknownPage = errors.New("unknown page")

// NavItem is one entry of the side menu.
type NavItem struct {
	Page Page
	Name string
	Icon string
}

var navItems = []NavItem{
	{Page: PageDashboard, Name: "Dashboard", Icon: "📊"},
	{Page: PageCustomers, Name: "Customers", Icon: "👥"},
	{Page: PageProducts, Name: "Products", Icon: "📦"},
	{Page: PageSales, Name: "Sales", Icon: "💰"},
	{Page: PageInventory, Name: "Inventory", Icon: "📦"},
}

// NavItems returns the side menu in display order.
func NavItems() []NavItem {
	return append([]NavItem(nil), navItems...)
}

// ParsePage resolves a page identifier, case-insensitively.
func ParsePage(s string) (Page, error) {
	for _, it := range navItems {
		if strings.EqualFold(string(it.Page), s) {
			return it.Page, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPage, s)
}

var placeholders = map[Page]string{
	PageCustomers: "Customers Content",
	PageProducts:  "Products Content",
	PageSales:     "Sales Content",
}

// Placeholder returns the text shown for a page without real content. The
// dashboard, the inventory page and unknown pages have none.
func (p Page) Placeholder() string {
	return placeholders[p]
}
