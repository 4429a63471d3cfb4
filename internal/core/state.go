package core

// Messages shown on the login form.
const (
	MsgMissingCredentials = "Please enter both username and password"
	MsgInvalidCredentials = "Invalid username or password"
	MsgConnectionFailed   = "Unable to connect to the server. Please try again."
)

// LoginForm is the sign-in form state. The password is never kept.
type LoginForm struct {
	Username string `json:"username"`
	Busy     bool   `json:"busy"`
	Error    string `json:"error,omitempty"`
}

// AddWidgetForm is the dashboard's add-widget form state.
type AddWidgetForm struct {
	Open  bool       `json:"open"`
	Kind  WidgetKind `json:"type"`
	Title string     `json:"title"`
}

func defaultAddForm() AddWidgetForm {
	return AddWidgetForm{Kind: DefaultWidgetKind}
}

// State is the whole client-side state of the dashboard. Values are treated
// as immutable: Reduce returns a new State and never modifies its input.
type State struct {
	Session      *Session      `json:"session,omitempty"`
	Page         Page          `json:"page"`
	Widgets      []Widget      `json:"widgets"`
	AddForm      AddWidgetForm `json:"add_form"`
	LoginForm    LoginForm     `json:"login_form"`
	UserMenuOpen bool          `json:"user_menu_open"`
}

// InitialState is the anonymous state shown on load.
func InitialState() State {
	return State{
		Page:    DefaultPage,
		AddForm: defaultAddForm(),
	}
}

// Authenticated reports whether a session exists.
func (s State) Authenticated() bool {
	return s.Session != nil
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s State) Clone() State {
	out := s
	if s.Session != nil {
		sess := *s.Session
		out.Session = &sess
	}
	if s.Widgets != nil {
		out.Widgets = append([]Widget(nil), s.Widgets...)
	}
	return out
}

// Action is a state transition.
type Action interface {
	apply(s State) State
}

// Reduce applies a to s and returns the resulting state.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s.Clone())
}

// ── Navigation ────────────────────────────────────────────────────────────────

// Navigate selects a page. Any page value is accepted.
type Navigate struct{ Page Page }

func (a Navigate) apply(s State) State {
	s.Page = a.Page
	s.UserMenuOpen = false
	return s
}

// GoHome is the logo click.
type GoHome struct{}

func (GoHome) apply(s State) State {
	s.Page = DefaultPage
	s.UserMenuOpen = false
	return s
}

// ToggleUserMenu opens or closes the user dropdown.
type ToggleUserMenu struct{}

func (ToggleUserMenu) apply(s State) State {
	if !s.Authenticated() {
		return s
	}
	s.UserMenuOpen = !s.UserMenuOpen
	return s
}

// CloseUserMenu closes the dropdown (a click outside it).
type CloseUserMenu struct{}

func (CloseUserMenu) apply(s State) State {
	s.UserMenuOpen = false
	return s
}

// ── Session ───────────────────────────────────────────────────────────────────

// ValidCredentials reports whether both fields are non-empty.
func ValidCredentials(username, password string) bool {
	return username != "" && password != ""
}

// LoginSubmitted is the sign-in button. With a missing field it records the
// validation message; otherwise it marks the form busy.
type LoginSubmitted struct {
	Username string
	Password string
}

func (a LoginSubmitted) apply(s State) State {
	if s.Authenticated() || s.LoginForm.Busy {
		return s
	}
	s.LoginForm.Username = a.Username
	if !ValidCredentials(a.Username, a.Password) {
		s.LoginForm.Error = MsgMissingCredentials
		return s
	}
	s.LoginForm.Busy = true
	s.LoginForm.Error = ""
	return s
}

// LoginSucceeded moves to the authenticated view with a freshly seeded dashboard.
type LoginSucceeded struct {
	Session Session
	Widgets []Widget
}

func (a LoginSucceeded) apply(s State) State {
	sess := a.Session
	return State{
		Session: &sess,
		Page:    DefaultPage,
		Widgets: append([]Widget{}, a.Widgets...),
		AddForm: defaultAddForm(),
	}
}

// LoginFailed keeps the anonymous view and shows message inline.
type LoginFailed struct{ Message string }

func (a LoginFailed) apply(s State) State {
	if s.Authenticated() {
		return s
	}
	s.LoginForm.Busy = false
	s.LoginForm.Error = a.Message
	return s
}

// LoggedOut clears the session and returns to the default page. It applies
// whatever the backend said about the logout.
type LoggedOut struct{}

func (LoggedOut) apply(State) State {
	return InitialState()
}

// ── Widgets ───────────────────────────────────────────────────────────────────

// OpenAddForm shows the add-widget form.
type OpenAddForm struct{}

func (OpenAddForm) apply(s State) State {
	if !s.Authenticated() {
		return s
	}
	s.AddForm.Open = true
	s.UserMenuOpen = false
	return s
}

// CancelAddForm hides the form and clears the title; the selected kind stays.
type CancelAddForm struct{}

func (CancelAddForm) apply(s State) State {
	s.AddForm.Open = false
	s.AddForm.Title = ""
	return s
}

// EditAddForm records the current form field values.
type EditAddForm struct {
	Kind  WidgetKind
	Title string
}

func (a EditAddForm) apply(s State) State {
	if !s.Authenticated() {
		return s
	}
	s.AddForm.Kind = a.Kind
	s.AddForm.Title = a.Title
	return s
}

// AddWidget appends w and resets the add form. A widget whose id is already
// present is ignored so ids stay unique.
type AddWidget struct{ Widget Widget }

func (a AddWidget) apply(s State) State {
	if !s.Authenticated() || a.Widget.ID == "" || HasWidget(s.Widgets, a.Widget.ID) {
		return s
	}
	s.Widgets = append(s.Widgets, a.Widget)
	s.AddForm = defaultAddForm()
	s.UserMenuOpen = false
	return s
}

// RemoveWidget deletes the widget with ID. Unknown ids leave the list untouched.
type RemoveWidget struct{ ID string }

func (a RemoveWidget) apply(s State) State {
	i := indexOfWidget(s.Widgets, a.ID)
	if i < 0 {
		return s
	}
	out := make([]Widget, 0, len(s.Widgets)-1)
	out = append(out, s.Widgets[:i]...)
	out = append(out, s.Widgets[i+1:]...)
	s.Widgets = out
	s.UserMenuOpen = false
	return s
}
