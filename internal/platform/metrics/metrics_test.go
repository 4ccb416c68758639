package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCollectors(t *testing.T) {
	HTTPRequests.WithLabelValues("GET", "/posts", "200").Inc()
	RateLimited.Inc()
	CacheLookups.WithLabelValues("miss").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "devlink_http_requests_total")
	assert.Contains(t, body, "devlink_rate_limited_requests_total")
	assert.Contains(t, body, `devlink_profile_cache_lookups_total{result="miss"}`)
}
