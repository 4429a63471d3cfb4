package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"odoo-dashboard/internal/app"
	"odoo-dashboard/internal/core"

	"github.com/golang-jwt/jwt/v5"
)

const (
	authCookie = "auth_token"
	tokenTTL   = 8 * time.Hour
)

type authClaimsKey struct{}

// AuthClaims holds the authenticated user's identity extracted from the JWT.
type AuthClaims struct {
	UserID    int64
	CompanyID int64
	SessionID string
}

// authFromContext returns the auth claims stored in ctx, or nil.
func authFromContext(ctx context.Context) *AuthClaims {
	v, _ := ctx.Value(authClaimsKey{}).(*AuthClaims)
	return v
}

// jwtClaims is the JWT payload struct used for signing and parsing.
type jwtClaims struct {
	UserID    int64  `json:"user_id"`
	CompanyID int64  `json:"company_id"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// authenticate validates the auth cookie. A token is only good for the
// session it was issued for; after logout or a new sign-in it is stale.
func (h *Handler) authenticate(r *http.Request) (*AuthClaims, error) {
	cookie, err := r.Cookie(authCookie)
	if err != nil {
		return nil, err
	}
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	sess := h.svc.Session()
	if sess == nil || sess.ID != claims.SessionID {
		return nil, errors.New("session ended")
	}
	return &AuthClaims{UserID: claims.UserID, CompanyID: claims.CompanyID, SessionID: claims.SessionID}, nil
}

// RequireAuth is chi middleware that validates the auth_token cookie and injects
// AuthClaims into the request context. Returns 401 if the token is absent or invalid.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.authenticate(r)
		if err != nil {
			writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), authClaimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthBrowser is middleware for HTML page routes. Unlike RequireAuth (which returns 401 JSON),
// this middleware redirects unauthenticated requests to /login.
func (h *Handler) RequireAuthBrowser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.authenticate(r)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), authClaimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// signIn runs the sign-in flow. The process holds a single session, so a
// successful sign-in from a browser without a valid cookie replaces the
// active one; a rejected attempt leaves it in place.
func (h *Handler) signIn(ctx context.Context, username, password string) (*app.LoginResult, error) {
	return h.svc.SwitchUser(ctx, app.LoginRequest{Username: username, Password: password})
}

// issueCookie signs a token for sess and sets it as the auth cookie.
func (h *Handler) issueCookie(w http.ResponseWriter, sess *core.Session) error {
	now := time.Now()
	claims := &jwtClaims{
		UserID:    sess.UserID,
		CompanyID: sess.CompanyID,
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(tokenTTL / time.Second),
	})
	return nil
}

func (h *Handler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

type loginResponse struct {
	Authenticated bool          `json:"authenticated"`
	Session       *core.Session `json:"session"`
}

// login handles POST /api/auth/login.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.signIn(r.Context(), req.Username, req.Password)
	if errors.Is(err, app.ErrLoginInProgress) {
		writeError(w, r, err.Error(), "LOGIN_IN_PROGRESS", http.StatusConflict)
		return
	}
	if err != nil {
		writeError(w, r, "sign-in failed", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	if !res.Authenticated() {
		message, code, status := loginFailureStatus(res.Message)
		writeError(w, r, message, code, status)
		return
	}

	if err := h.issueCookie(w, res.Session); err != nil {
		writeError(w, r, "token generation failed", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, loginResponse{Authenticated: true, Session: res.Session})
}

// loginFailureStatus maps the inline login message to an API error.
func loginFailureStatus(message string) (string, string, int) {
	switch message {
	case core.MsgMissingCredentials:
		return message, "BAD_REQUEST", http.StatusBadRequest
	case core.MsgInvalidCredentials:
		return message, "UNAUTHORIZED", http.StatusUnauthorized
	default:
		return message, "BACKEND_UNAVAILABLE", http.StatusBadGateway
	}
}

// logout handles POST /api/auth/logout. Only the holder of the current
// session's cookie ends it; the cookie is cleared either way.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authenticate(r); err == nil {
		h.svc.Logout(r.Context())
	}
	h.clearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// me handles GET /api/auth/me and returns the current session.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	sess := h.svc.Session()
	if sess == nil {
		writeError(w, r, "not authenticated", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}
	type meResponse struct {
		*core.Session
		Name string `json:"name"`
	}
	writeJSON(w, meResponse{Session: sess, Name: sess.HeaderName()})
}
