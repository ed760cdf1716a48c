package restapi

import (
	"net/http"
	"time"
)

// instrument records request count and latency for a named route
func (api *RestAPI) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrapResponseWriter(w)
		next.ServeHTTP(wrapped, r)
		api.Metrics.ObserveRequest(route, wrapped.statusCode, time.Since(start))
	})
}
