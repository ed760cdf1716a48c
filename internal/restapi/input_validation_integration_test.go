package restapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputValidationIntegration(t *testing.T) {
	api := createTestApi(t)
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	tests := []struct {
		name           string
		endpoint       string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "SQL injection in latitude",
			endpoint:       "/api/qibla/direction.json?key=TEST&lon=0&lat=" + url.QueryEscape("1; DROP TABLE targets; --"),
			expectedStatus: http.StatusBadRequest,
			expectedError:  `Invalid field value for field \"lat\".`,
		},
		{
			name:           "script in compass angle",
			endpoint:       "/api/qibla/compass/" + url.PathEscape("<script>alert(1)") + "?key=TEST",
			expectedStatus: http.StatusBadRequest,
			expectedError:  `Invalid field value for field \"angle\".`,
		},
		{
			name:           "path traversal in compass angle",
			endpoint:       "/api/qibla/compass/../../../etc/passwd?key=TEST",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "hex float heading",
			endpoint:       "/api/qibla/direction.json?key=TEST&lat=0&lon=0&heading=0x1p-2",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "huge points value",
			endpoint:       "/api/qibla/path.json?key=TEST&lat=0&lon=0&points=" + strings.Repeat("9", 30),
			expectedStatus: http.StatusBadRequest,
			expectedError:  `Invalid field value for field \"points\".`,
		},
		{
			name:           "infinite latitude",
			endpoint:       "/api/qibla/path.json?key=TEST&lat=Inf&lon=0",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "latitude must be between -90 and 90",
		},
		{
			name:           "very large heading is normalized",
			endpoint:       "/api/qibla/direction.json?key=TEST&lat=0&lon=0&heading=1e300",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(server.URL + tt.endpoint)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedStatus, resp.StatusCode, string(body))
			if tt.expectedError != "" {
				assert.Contains(t, string(body), tt.expectedError)
			}
		})
	}
}
