package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

// InvalidCredentialsMessage is the failure message for an authenticate call
// that returns no user id.
const InvalidCredentialsMessage = "Invalid username or password"

// randomIDLimit bounds random correlation ids.
const randomIDLimit = 1_000_000

// LoginInfo is the success value of Login.
type LoginInfo struct {
	UserID       int64
	SessionToken string // session_id from the authenticate result; may be empty
	CompanyID    int64
	Name         string
	Username     string
}

// Client speaks JSON-RPC to an Odoo backend and caches the logged-in user id.
// It is safe for concurrent use, though the dashboard drives it from one flow.
type Client struct {
	baseURL  string
	database string
	http     *http.Client
	log      *zap.Logger
	nextID   func() int64
	counter  atomic.Int64

	mu           sync.RWMutex
	uid          int64
	sessionToken string
}

// NewClient returns a client for the backend at baseURL (scheme and host, with
// an optional path prefix) using the given database.
func NewClient(baseURL, database string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		database: database,
		http:     &http.Client{Jar: jar},
		log:      zap.NewNop(),
	}
	c.nextID = randomID
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Database returns the configured database name.
func (c *Client) Database() string { return c.database }

// UserID returns the cached user id and whether one is set.
func (c *Client) UserID() (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.uid, c.uid != 0
}

// Login authenticates against the backend. It never returns an error outside the Result.
func (c *Client) Login(ctx context.Context, username, password string) Result[*LoginInfo] {
	raw, f := c.call(ctx, PathAuthenticate, authenticateParams{
		DB:       c.database,
		Login:    username,
		Password: password,
	})
	if f != nil {
		return Fail[*LoginInfo](f)
	}

	var res authenticateResult
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if err := json.Unmarshal(raw, &res); err != nil {
			// result of an unexpected shape (e.g. false) carries no uid
			c.log.Debug("odoo: authenticate result not an object", zap.Error(err))
		}
	}
	if res.UID == 0 {
		return Fail[*LoginInfo](&Failure{Kind: FailureInvalidCredentials, Message: InvalidCredentialsMessage})
	}

	c.mu.Lock()
	c.uid = int64(res.UID)
	c.sessionToken = res.SessionID
	c.mu.Unlock()

	return Ok(&LoginInfo{
		UserID:       int64(res.UID),
		SessionToken: res.SessionID,
		CompanyID:    int64(res.CompanyID),
		Name:         res.Name,
		Username:     res.Username,
	})
}

// Logout destroys the backend session. The cached user id is cleared whatever
// the outcome; a failure is logged and returned but callers may ignore it.
func (c *Client) Logout(ctx context.Context) Result[struct{}] {
	_, f := c.call(ctx, PathDestroySession, struct{}{})

	c.mu.Lock()
	c.uid = 0
	c.sessionToken = ""
	c.mu.Unlock()

	if f != nil {
		c.log.Warn("odoo: logout failed", zap.Stringer("kind", f.Kind), zap.String("error", f.Message))
		return Fail[struct{}](f)
	}
	return Ok(struct{}{})
}

// GetUserInfo reads name, login and company of the cached user and returns the
// decoded payload as-is.
func (c *Client) GetUserInfo(ctx context.Context) Result[any] {
	uid, ok := c.UserID()
	if !ok {
		return Fail[any](&Failure{Kind: FailureUnauthenticated, Message: "User is not logged in"})
	}

	raw, f := c.call(ctx, PathSessionInfo, readParams{
		Model:  "res.users",
		Method: "read",
		Args:   []any{[]int64{uid}, []string{"name", "login", "company_id"}},
		Kwargs: map[string]any{},
	})
	if f != nil {
		return Fail[any](f)
	}

	var payload any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return Fail[any](transportFailure(fmt.Errorf("decode user info: %w", err)))
		}
	}
	return Ok(payload)
}

// call performs one JSON-RPC exchange and returns the raw result.
func (c *Client) call(ctx context.Context, path string, params any) (json.RawMessage, *Failure) {
	payload := rpcRequest{
		JSONRPC: jsonRPCVersion,
		Method:  rpcMethodCall,
		Params:  params,
		ID:      c.nextID(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, transportFailure(fmt.Errorf("encode request: %w", err))
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, transportFailure(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Debug("odoo: request", zap.String("url", url), zap.Int64("id", payload.ID))

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("odoo: request failed", zap.String("url", url), zap.Error(err))
		return nil, transportFailure(err)
	}
	defer resp.Body.Close()

	c.log.Debug("odoo: response", zap.String("url", url), zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, transportFailure(fmt.Errorf("HTTP error! status: %d", resp.StatusCode))
	}

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, transportFailure(fmt.Errorf("decode response: %w", err))
	}
	if out.Error != nil {
		return nil, &Failure{Kind: FailureServer, Message: out.Error.Message, Err: out.Error}
	}
	return out.Result, nil
}

func (e *RPCError) Error() string {
	if e.Data.Message != "" && e.Data.Message != e.Message {
		return fmt.Sprintf("%s: %s", e.Message, e.Data.Message)
	}
	return e.Message
}

func randomID() int64 {
	return rand.Int64N(randomIDLimit)
}

func (c *Client) sequentialID() int64 {
	return c.counter.Add(1)
}
