package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"compass.qibla.app/internal/app"
	"compass.qibla.app/internal/appconf"
	"compass.qibla.app/internal/logging"
	"compass.qibla.app/internal/metrics"
	"compass.qibla.app/internal/models"
)

// createTestApi creates a new RestAPI instance with its own metrics registry for use in tests.
func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithConfig(t, func(*appconf.Config) {})
}

func createTestApiWithConfig(t *testing.T, mutate func(*appconf.Config)) *RestAPI {
	t.Helper()

	cfg := appconf.Default()
	cfg.Env = appconf.EnvFlagToEnvironment("test")
	cfg.ApiKeys = []string{"TEST"}
	mutate(&cfg)

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	api := NewRestAPI(&app.Application{
		Config:  cfg,
		Logger:  logging.NewStructuredLogger(io.Discard, slog.LevelInfo),
		Metrics: collector,
	})
	t.Cleanup(api.Stop)

	return api
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

// serveAndRetrieveFieldErrors requests an endpoint expected to fail validation
func serveAndRetrieveFieldErrors(t *testing.T, endpoint string) (*http.Response, map[string][]string) {
	api := createTestApi(t)
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return resp, body.FieldErrors
}

func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "entry should be an object")
	return entry
}
