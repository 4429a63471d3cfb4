package web

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"go.uber.org/zap"
)

// newBackendProxy forwards requests to the Odoo origin. The caller strips the
// mount prefix; the outbound Host is the upstream's and cookies pass through
// untouched.
func newBackendProxy(upstream *url.URL, log *zap.Logger) http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(upstream)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Warn("backend proxy",
				zap.String("path", r.URL.Path),
				zap.String("request_id", requestIDFromContext(r.Context())),
				zap.Error(err),
			)
			writeError(w, r, "backend unavailable", "BAD_GATEWAY", http.StatusBadGateway)
		},
	}
}
