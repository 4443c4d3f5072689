package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/taxigo/internal/pkg/logger"
	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/internal/pkg/ratelimit"
	"github.com/piresc/taxigo/internal/pkg/validation"
)

func newHandler(t *testing.T) (*AdminHandler, *ratelimit.Limiter) {
	t.Helper()

	appLogger, err := logger.NewAppLogger(models.LoggerConfig{Level: "error"})
	require.NoError(t, err)
	t.Cleanup(func() { appLogger.Close() })

	limiter := ratelimit.NewLimiter(models.RateLimitConfig{SuspicionThreshold: 2})
	return NewAdminHandler(limiter, appLogger), limiter
}

func newContext(t *testing.T, method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validation.NewRequestValidator()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// blockSource drives a source over the suspicion threshold.
func blockSource(t *testing.T, limiter *ratelimit.Limiter, ip string) {
	t.Helper()

	policy := ratelimit.Policy{Limit: 1, Window: time.Minute}
	now := time.Now()
	limiter.Admit("client", ip, now, policy)
	for i := 0; i < 2; i++ {
		limiter.Admit("client", ip, now, policy)
	}
	require.True(t, limiter.IsBlocked(ip))
}

func TestLimiterStats(t *testing.T) {
	handler, limiter := newHandler(t)
	blockSource(t, limiter, "203.0.113.7")

	c, rec := newContext(t, http.MethodGet, "/v1/admin/limiter/stats", nil)
	require.NoError(t, handler.LimiterStats(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data ratelimit.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.BlockedSources)
	assert.Equal(t, 1, body.Data.TrackedClients)
}

func TestUnblockIP(t *testing.T) {
	handler, limiter := newHandler(t)
	blockSource(t, limiter, "203.0.113.7")

	c, rec := newContext(t, http.MethodPost, "/v1/admin/limiter/unblock",
		models.UnblockRequest{IPAddress: "203.0.113.7"})

	require.NoError(t, handler.UnblockIP(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, limiter.IsBlocked("203.0.113.7"))
}

func TestUnblockIP_NotBlocked(t *testing.T) {
	handler, _ := newHandler(t)

	c, rec := newContext(t, http.MethodPost, "/v1/admin/limiter/unblock",
		models.UnblockRequest{IPAddress: "203.0.113.99"})

	require.NoError(t, handler.UnblockIP(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnblockIP_InvalidAddress(t *testing.T) {
	handler, _ := newHandler(t)

	c, rec := newContext(t, http.MethodPost, "/v1/admin/limiter/unblock",
		models.UnblockRequest{IPAddress: "not-an-ip"})

	require.NoError(t, handler.UnblockIP(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
