package core

import "github.com/shopspring/decimal"

// The panels are read-only summaries with fixed figures; no backend query
// feeds them yet.

// SalesPanel is the content of a sales widget.
type SalesPanel struct {
	TotalThisMonth decimal.Decimal
	ChangePercent  decimal.Decimal // versus last month
}

// CustomersPanel is the content of a customers widget.
type CustomersPanel struct {
	Active      int
	NewThisWeek int
}

// TasksPanel is the content of a tasks widget.
type TasksPanel struct {
	Tasks []TaskItem
}

// TaskItem is one line of the tasks panel.
type TaskItem struct {
	Title string
	Due   string
	Done  bool
}

// InventoryPanel is the content of an inventory widget.
type InventoryPanel struct {
	InStock    int
	LowStock   int
	OutOfStock int
}

// PanelContent holds the figures for every known widget kind.
type PanelContent struct {
	Sales     SalesPanel
	Customers CustomersPanel
	Tasks     TasksPanel
	Inventory InventoryPanel
}

// StaticPanels returns the fixed panel figures.
func StaticPanels() PanelContent {
	return PanelContent{
		Sales: SalesPanel{
			TotalThisMonth: decimal.NewFromInt(12450),
			ChangePercent:  decimal.NewFromInt(15),
		},
		Customers: CustomersPanel{Active: 847, NewThisWeek: 23},
		Tasks: TasksPanel{Tasks: []TaskItem{
			{Title: "Follow up on quotation S00042", Due: "Today"},
			{Title: "Confirm delivery for WH/OUT/00017", Due: "Tomorrow"},
			{Title: "Review vendor bill BILL/2025/0031", Due: "This week", Done: true},
		}},
		Inventory: InventoryPanel{InStock: 1247, LowStock: 23, OutOfStock: 5},
	}
}
