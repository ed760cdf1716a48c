package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"compass.qibla.app/internal/appconf"
	"compass.qibla.app/internal/webui"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/qibla/direction.json", api.instrument("direction", validateAPIKey(api, api.directionHandler)))
	router.Handler(http.MethodGet, "/api/qibla/path.json", api.instrument("path", validateAPIKey(api, api.pathHandler)))
	router.Handler(http.MethodGet, "/api/qibla/compass/:angle", api.instrument("compass", validateAPIKey(api, api.compassHandler)))
	router.Handler(http.MethodGet, "/api/qibla/stream", api.instrument("stream", validateAPIKey(api, api.streamHandler)))

	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)
	router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())

	if api.Config.Env == appconf.Development {
		webui.SetWebUIRoutes(router, &webui.WebUI{Application: api.Application})
	}

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.HandleMethodNotAllowed = false
}

// Handler returns the router wrapped in the full middleware chain
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	handler = api.rateLimiter.Handler(handler)
	handler = securityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = NewRequestIDMiddleware(handler)
	return handler
}
