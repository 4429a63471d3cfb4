package core

import "strings"

// WidgetKind selects which panel a widget renders.
type WidgetKind string

const (
	WidgetSales     WidgetKind = "sales"
	WidgetCustomers WidgetKind = "customers"
	WidgetTasks     WidgetKind = "tasks"
	WidgetInventory WidgetKind = "inventory"
)

// DefaultWidgetKind is preselected in the add form.
const DefaultWidgetKind = WidgetSales

// FallbackWidgetTitle is used for kinds outside the catalog.
const FallbackWidgetTitle = "New Widget"

// WidgetType is one entry of the add-form catalog.
type WidgetType struct {
	Kind  WidgetKind
	Label string
}

// widgetCatalog is ordered as presented in the add form.
var widgetCatalog = []WidgetType{
	{Kind: WidgetSales, Label: "Sales Overview"},
	{Kind: WidgetCustomers, Label: "Customer Stats"},
	{Kind: WidgetTasks, Label: "Recent Tasks"},
	{Kind: WidgetInventory, Label: "Inventory Status"},
}

// WidgetCatalog returns the selectable widget types.
func WidgetCatalog() []WidgetType {
	return append([]WidgetType(nil), widgetCatalog...)
}

// Known reports whether k is in the catalog.
func (k WidgetKind) Known() bool {
	for _, t := range widgetCatalog {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// DefaultTitle is the catalog label for k, or FallbackWidgetTitle.
func (k WidgetKind) DefaultTitle() string {
	for _, t := range widgetCatalog {
		if t.Kind == k {
			return t.Label
		}
	}
	return FallbackWidgetTitle
}

// Widget is a removable summary panel on the dashboard.
type Widget struct {
	ID    string     `json:"id"`
	Kind  WidgetKind `json:"type"`
	Title string     `json:"title"`
}

// NewWidget builds a widget, defaulting a blank title from the kind.
// A custom title is kept verbatim.
func NewWidget(id string, kind WidgetKind, title string) Widget {
	if strings.TrimSpace(title) == "" {
		title = kind.DefaultTitle()
	}
	return Widget{ID: id, Kind: kind, Title: title}
}

// WidgetSeed describes a widget created when a session starts.
type WidgetSeed struct {
	Kind  WidgetKind `yaml:"type" json:"type"`
	Title string     `yaml:"title,omitempty" json:"title,omitempty"`
}

// DefaultWidgetSeeds is the dashboard a fresh session starts with.
func DefaultWidgetSeeds() []WidgetSeed {
	return []WidgetSeed{
		{Kind: WidgetSales},
		{Kind: WidgetCustomers},
		{Kind: WidgetTasks},
	}
}

func indexOfWidget(ws []Widget, id string) int {
	for i, w := range ws {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// HasWidget reports whether a widget with id is in ws.
func HasWidget(ws []Widget, id string) bool {
	return indexOfWidget(ws, id) >= 0
}
