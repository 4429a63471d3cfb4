package core_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"odoo-dashboard/internal/core"
)

func authenticatedState(widgets ...core.Widget) core.State {
	return core.Reduce(core.InitialState(), core.LoginSucceeded{
		Session: core.Session{ID: "s1", UserID: 7, Username: "admin", DisplayName: "Mitchell Admin", StartedAt: time.Unix(0, 0)},
		Widgets: widgets,
	})
}

func TestInitialState(t *testing.T) {
	s := core.InitialState()
	if s.Authenticated() {
		t.Error("expected anonymous initial state")
	}
	if s.Page != core.DefaultPage {
		t.Errorf("expected page %s, got %s", core.DefaultPage, s.Page)
	}
	if s.AddForm.Kind != core.WidgetSales {
		t.Errorf("expected add form kind sales, got %s", s.AddForm.Kind)
	}
}

func TestLoginSubmitted_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantBusy bool
		wantErr  string
	}{
		{name: "both empty", wantErr: core.MsgMissingCredentials},
		{name: "empty password", username: "admin", wantErr: core.MsgMissingCredentials},
		{name: "empty username", password: "secret", wantErr: core.MsgMissingCredentials},
		{name: "both present", username: "admin", password: "secret", wantBusy: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := core.Reduce(core.InitialState(), core.LoginSubmitted{Username: tt.username, Password: tt.password})
			if s.LoginForm.Busy != tt.wantBusy {
				t.Errorf("expected busy=%v, got %v", tt.wantBusy, s.LoginForm.Busy)
			}
			if s.LoginForm.Error != tt.wantErr {
				t.Errorf("expected error %q, got %q", tt.wantErr, s.LoginForm.Error)
			}
			if s.Authenticated() {
				t.Error("submission alone must not authenticate")
			}
		})
	}
}

func TestLoginSubmitted_IgnoredWhileBusy(t *testing.T) {
	busy := core.Reduce(core.InitialState(), core.LoginSubmitted{Username: "admin", Password: "secret"})
	again := core.Reduce(busy, core.LoginSubmitted{Username: "other", Password: ""})
	if diff := cmp.Diff(busy, again); diff != "" {
		t.Errorf("state changed while busy (-want +got):\n%s", diff)
	}
}

func TestLoginFailed(t *testing.T) {
	busy := core.Reduce(core.InitialState(), core.LoginSubmitted{Username: "admin", Password: "x"})
	s := core.Reduce(busy, core.LoginFailed{Message: core.MsgInvalidCredentials})

	want := core.InitialState()
	want.LoginForm = core.LoginForm{Username: "admin", Error: core.MsgInvalidCredentials}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("unexpected state (-want +got):\n%s", diff)
	}
}

func TestLoginSucceeded_SeedsDashboard(t *testing.T) {
	seed := []core.Widget{core.NewWidget("a", core.WidgetSales, "")}
	s := authenticatedState(seed...)

	if !s.Authenticated() {
		t.Fatal("expected authenticated state")
	}
	if s.Session.HeaderName() != "Mitchell Admin" {
		t.Errorf("expected header name 'Mitchell Admin', got %q", s.Session.HeaderName())
	}
	if diff := cmp.Diff(seed, s.Widgets); diff != "" {
		t.Errorf("unexpected widgets (-want +got):\n%s", diff)
	}
	if s.LoginForm != (core.LoginForm{}) {
		t.Errorf("expected cleared login form, got %+v", s.LoginForm)
	}
}

func TestLoggedOut_ResetsEverything(t *testing.T) {
	s := authenticatedState(core.NewWidget("a", core.WidgetSales, ""))
	s = core.Reduce(s, core.Navigate{Page: core.PageSales})
	s = core.Reduce(s, core.ToggleUserMenu{})
	s = core.Reduce(s, core.LoggedOut{})

	if diff := cmp.Diff(core.InitialState(), s); diff != "" {
		t.Errorf("expected initial state after logout (-want +got):\n%s", diff)
	}
}

func TestNavigation(t *testing.T) {
	s := authenticatedState()

	t.Run("navigate accepts pages without content", func(t *testing.T) {
		got := core.Reduce(s, core.Navigate{Page: core.PageInventory})
		if got.Page != core.PageInventory {
			t.Errorf("expected Inventory, got %s", got.Page)
		}
	})

	t.Run("logo click resets to default", func(t *testing.T) {
		got := core.Reduce(core.Reduce(s, core.Navigate{Page: core.PageSales}), core.GoHome{})
		if got.Page != core.DefaultPage {
			t.Errorf("expected %s, got %s", core.DefaultPage, got.Page)
		}
	})

	t.Run("navigation closes the user menu", func(t *testing.T) {
		open := core.Reduce(s, core.ToggleUserMenu{})
		if !open.UserMenuOpen {
			t.Fatal("expected menu open after toggle")
		}
		got := core.Reduce(open, core.Navigate{Page: core.PageCustomers})
		if got.UserMenuOpen {
			t.Error("expected menu closed after navigation")
		}
	})

	t.Run("toggle twice closes", func(t *testing.T) {
		got := core.Reduce(core.Reduce(s, core.ToggleUserMenu{}), core.ToggleUserMenu{})
		if got.UserMenuOpen {
			t.Error("expected menu closed")
		}
	})

	t.Run("menu stays closed when anonymous", func(t *testing.T) {
		got := core.Reduce(core.InitialState(), core.ToggleUserMenu{})
		if got.UserMenuOpen {
			t.Error("anonymous view has no user menu")
		}
	})
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := authenticatedState(core.NewWidget("a", core.WidgetSales, ""), core.NewWidget("b", core.WidgetTasks, ""))
	before := s.Clone()

	_ = core.Reduce(s, core.RemoveWidget{ID: "a"})
	_ = core.Reduce(s, core.AddWidget{Widget: core.NewWidget("c", core.WidgetInventory, "")})
	_ = core.Reduce(s, core.LoggedOut{})

	if diff := cmp.Diff(before, s); diff != "" {
		t.Errorf("input state was mutated (-want +got):\n%s", diff)
	}
}
