package app

import (
	"context"
	"sync"
	"time"

	"odoo-dashboard/internal/core"
	"odoo-dashboard/internal/odoo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RemoteClient is the part of the backend client the dashboard uses.
type RemoteClient interface {
	Login(ctx context.Context, username, password string) odoo.Result[*odoo.LoginInfo]
	Logout(ctx context.Context) odoo.Result[struct{}]
}

// Options tunes NewAppService. Zero values pick sensible defaults.
type Options struct {
	Seeds  []core.WidgetSeed // dashboard of a fresh session; nil means core.DefaultWidgetSeeds
	Logger *zap.Logger       // nil means no logging
	NewID  func() string     // widget ids; nil means UUIDv7
	Now    func() time.Time  // nil means time.Now
}

type appService struct {
	client RemoteClient
	seeds  []core.WidgetSeed
	log    *zap.Logger
	newID  func() string
	now    func() time.Time

	mu        sync.Mutex // guards state and switching
	state     core.State
	switching bool
}

// NewAppService constructs the controller that satisfies DashboardService.
func NewAppService(client RemoteClient, opts Options) DashboardService {
	s := &appService{
		client: client,
		seeds:  opts.Seeds,
		log:    opts.Logger,
		newID:  opts.NewID,
		now:    opts.Now,
		state:  core.InitialState(),
	}
	if s.seeds == nil {
		s.seeds = core.DefaultWidgetSeeds()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.newID == nil {
		s.newID = newTimeOrderedID
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// newTimeOrderedID returns a UUIDv7, falling back to a random UUID.
func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// dispatch applies a under the lock and returns the new state.
func (s *appService) dispatch(a core.Action) core.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = core.Reduce(s.state, a)
	return s.state.Clone()
}

func (s *appService) State() core.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *appService) Session() *core.Session {
	return s.State().Session
}

// Login runs the sign-in flow. The backend call happens outside the lock; the
// busy flag keeps a second submission from starting another call.
func (s *appService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	s.mu.Lock()
	if s.state.Authenticated() {
		s.mu.Unlock()
		return nil, ErrAlreadyAuthenticated
	}
	if s.state.LoginForm.Busy || s.switching {
		s.mu.Unlock()
		return nil, ErrLoginInProgress
	}
	s.state = core.Reduce(s.state, core.LoginSubmitted{Username: req.Username, Password: req.Password})
	if !s.state.LoginForm.Busy {
		st := s.state.Clone()
		s.mu.Unlock()
		return &LoginResult{Message: st.LoginForm.Error, State: st}, nil
	}
	s.mu.Unlock()

	res := s.client.Login(ctx, req.Username, req.Password)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.LoginForm.Busy {
		// a logout reset the form while the call was in flight; drop the outcome
		s.log.Info("sign-in outcome discarded after reset", zap.String("username", req.Username))
		st := s.state.Clone()
		return &LoginResult{Message: st.LoginForm.Error, State: st}, nil
	}

	if !res.OK() {
		f := res.Failure()
		msg := loginFailureMessage(f)
		s.log.Info("sign-in failed",
			zap.String("username", req.Username),
			zap.Stringer("kind", f.Kind),
			zap.String("error", f.Message),
		)
		s.state = core.Reduce(s.state, core.LoginFailed{Message: msg})
		st := s.state.Clone()
		return &LoginResult{Message: msg, State: st}, nil
	}

	return s.signedIn(req.Username, res.Value()), nil
}

// signedIn installs a fresh session for info. The caller holds the lock.
func (s *appService) signedIn(username string, info *odoo.LoginInfo) *LoginResult {
	display := info.Name
	if display == "" {
		display = username
	}
	sess := core.Session{
		ID:           uuid.NewString(),
		UserID:       info.UserID,
		Username:     username,
		DisplayName:  display,
		CompanyID:    info.CompanyID,
		SessionToken: info.SessionToken,
		StartedAt:    s.now(),
	}
	s.state = core.Reduce(s.state, core.LoginSucceeded{Session: sess, Widgets: s.seedWidgets()})
	s.log.Info("signed in", zap.Int64("uid", sess.UserID), zap.Int64("company_id", sess.CompanyID))

	st := s.state.Clone()
	return &LoginResult{Session: st.Session, State: st}
}

// SwitchUser signs in over an active session. The current session is left
// alone until the new credentials are accepted by the backend; authenticate
// rebinds the backend session, so no destroy call is made.
func (s *appService) SwitchUser(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	s.mu.Lock()
	if !s.state.Authenticated() {
		s.mu.Unlock()
		return s.Login(ctx, req)
	}
	if s.switching {
		s.mu.Unlock()
		return nil, ErrLoginInProgress
	}
	if !core.ValidCredentials(req.Username, req.Password) {
		st := s.state.Clone()
		s.mu.Unlock()
		return &LoginResult{Message: core.MsgMissingCredentials, State: st}, nil
	}
	s.switching = true
	s.mu.Unlock()

	res := s.client.Login(ctx, req.Username, req.Password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.switching = false

	if !res.OK() {
		f := res.Failure()
		msg := loginFailureMessage(f)
		s.log.Info("user switch rejected",
			zap.String("username", req.Username),
			zap.Stringer("kind", f.Kind),
			zap.String("error", f.Message),
		)
		return &LoginResult{Message: msg, State: s.state.Clone()}, nil
	}
	s.log.Info("sign-in replaces the active session", zap.String("username", req.Username))
	return s.signedIn(req.Username, res.Value()), nil
}

// loginFailureMessage maps a client failure to the inline form message.
// Transport details are never shown to the user.
func loginFailureMessage(f *odoo.Failure) string {
	switch f.Kind {
	case odoo.FailureInvalidCredentials:
		return core.MsgInvalidCredentials
	case odoo.FailureServer:
		if f.Message != "" {
			return f.Message
		}
		return core.MsgConnectionFailed
	default:
		return core.MsgConnectionFailed
	}
}

func (s *appService) seedWidgets() []core.Widget {
	out := make([]core.Widget, 0, len(s.seeds))
	for _, seed := range s.seeds {
		w := core.NewWidget(s.uniqueID(out), seed.Kind, seed.Title)
		out = append(out, w)
	}
	return out
}

// uniqueID draws ids until one is free in ws.
func (s *appService) uniqueID(ws []core.Widget) string {
	for {
		id := s.newID()
		if id != "" && !core.HasWidget(ws, id) {
			return id
		}
	}
}

// Logout always ends in the anonymous state; backend errors are only logged.
func (s *appService) Logout(ctx context.Context) core.State {
	if res := s.client.Logout(ctx); !res.OK() {
		s.log.Warn("logout: backend session not destroyed", zap.String("error", res.Failure().Message))
	}
	st := s.dispatch(core.LoggedOut{})
	s.log.Info("signed out")
	return st
}

func (s *appService) Navigate(page core.Page) core.State {
	return s.dispatch(core.Navigate{Page: page})
}

func (s *appService) GoHome() core.State {
	return s.dispatch(core.GoHome{})
}

func (s *appService) ToggleUserMenu() core.State {
	return s.dispatch(core.ToggleUserMenu{})
}

func (s *appService) CloseUserMenu() core.State {
	return s.dispatch(core.CloseUserMenu{})
}

func (s *appService) OpenAddWidgetForm() (core.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Authenticated() {
		return s.state.Clone(), ErrNotAuthenticated
	}
	s.state = core.Reduce(s.state, core.OpenAddForm{})
	return s.state.Clone(), nil
}

func (s *appService) CancelAddWidgetForm() core.State {
	return s.dispatch(core.CancelAddForm{})
}

func (s *appService) AddWidget(req AddWidgetRequest) (*WidgetResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	kind := req.Kind
	if kind == "" {
		kind = core.DefaultWidgetKind
	}
	w := core.NewWidget(s.uniqueID(s.state.Widgets), kind, req.Title)
	s.state = core.Reduce(s.state, core.AddWidget{Widget: w})
	return &WidgetResult{Widget: w, State: s.state.Clone()}, nil
}

func (s *appService) RemoveWidget(id string) (core.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Authenticated() {
		return s.state.Clone(), ErrNotAuthenticated
	}
	s.state = core.Reduce(s.state, core.RemoveWidget{ID: id})
	return s.state.Clone(), nil
}
