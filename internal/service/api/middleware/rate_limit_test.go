package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/darkkaiser/hoplink/internal/service/api/constants"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// =============================================================================
// Helpers
// =============================================================================

func doRateLimitedRequest(t *testing.T, h echo.HandlerFunc, ip, path string) (int, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()

	if err := h(e.NewContext(req, rec)); err != nil {
		return httpStatusOf(t, err), rec
	}
	return rec.Code, rec
}

func assertRequest(t *testing.T, h echo.HandlerFunc, ip string, expected int) {
	t.Helper()

	status, _ := doRateLimitedRequest(t, h, ip, "/")
	assert.Equal(t, expected, status, "IP %q", ip)
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// =============================================================================
// ipRateLimiter
// =============================================================================

func TestNewIPRateLimiter(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(2.5, 20)

	assert.NotNil(t, limiter.limiters)
	assert.Equal(t, rate.Limit(2.5), limiter.rate)
	assert.Equal(t, 20, limiter.burst)
	assert.Equal(t, 0, limiter.size())
}

func TestIPRateLimiter_GetLimiter(t *testing.T) {
	t.Parallel()

	t.Run("같은 IP는 같은 Limiter 반환", func(t *testing.T) {
		t.Parallel()

		limiter := newIPRateLimiter(1, 1)
		assert.Same(t, limiter.getLimiter("1.1.1.1"), limiter.getLimiter("1.1.1.1"))
		assert.NotSame(t, limiter.getLimiter("1.1.1.1"), limiter.getLimiter("2.2.2.2"))
	})

	t.Run("최대 개수를 넘지 않음", func(t *testing.T) {
		t.Parallel()

		limiter := newIPRateLimiter(1, 1)
		for i := 0; i < maxIPRateLimiters+10; i++ {
			limiter.getLimiter(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
		}
		assert.Equal(t, maxIPRateLimiters, limiter.size())
	})

	t.Run("동시 접근", func(t *testing.T) {
		t.Parallel()

		limiter := newIPRateLimiter(1, 1)

		var wg sync.WaitGroup
		results := make([]*rate.Limiter, 50)
		for i := range results {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = limiter.getLimiter("same-ip")
			}(i)
		}
		wg.Wait()

		for _, l := range results {
			assert.Same(t, results[0], l)
		}
	})
}

// =============================================================================
// RateLimit
// =============================================================================

func TestRateLimit_InputValidation_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		requestsPerSecond float64
		burst             int
		expectedPanic     string
	}{
		{"성공: 정상값 입력", 10, 20, ""},
		{"성공: 소수 RPS 입력", 0.5, 1, ""},
		{"실패: RPS 0 입력", 0, 20, fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, 0.0)},
		{"실패: RPS 음수 입력", -10, 20, fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, -10.0)},
		{"실패: Burst 0 입력", 10, 0, fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, 0)},
		{"실패: Burst 음수 입력", 10, -20, fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, -20)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.expectedPanic == "" {
				assert.NotPanics(t, func() { RateLimit(tt.requestsPerSecond, tt.burst) })
				return
			}
			assert.PanicsWithValue(t, tt.expectedPanic, func() { RateLimit(tt.requestsPerSecond, tt.burst) })
		})
	}
}

func TestRateLimit_Scenarios_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rps        float64
		burst      int
		operations func(*testing.T, echo.HandlerFunc)
	}{
		{
			name:  "버스트 내 요청 허용 후 차단",
			rps:   1,
			burst: 5,
			operations: func(t *testing.T, h echo.HandlerFunc) {
				for i := 0; i < 5; i++ {
					assertRequest(t, h, "1.1.1.1", http.StatusOK)
				}
				assertRequest(t, h, "1.1.1.1", http.StatusTooManyRequests)
			},
		},
		{
			name:  "IP별 독립 제한",
			rps:   1,
			burst: 1,
			operations: func(t *testing.T, h echo.HandlerFunc) {
				assertRequest(t, h, "1.1.1.1", http.StatusOK)
				assertRequest(t, h, "1.1.1.1", http.StatusTooManyRequests)
				assertRequest(t, h, "2.2.2.2", http.StatusOK)
			},
		},
		{
			name:  "같은 IP는 경로와 무관하게 제한 공유",
			rps:   1,
			burst: 1,
			operations: func(t *testing.T, h echo.HandlerFunc) {
				status, _ := doRateLimitedRequest(t, h, "1.1.1.1", "/api/v1/lookups")
				assert.Equal(t, http.StatusOK, status)

				status, _ = doRateLimitedRequest(t, h, "1.1.1.1", "/api/v1/matches/batch")
				assert.Equal(t, http.StatusTooManyRequests, status)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.operations(t, RateLimit(tt.rps, tt.burst)(okHandler))
		})
	}
}

// TestRateLimit_BlockedResponse 차단 시 Retry-After 헤더와 경고 로그를 검증합니다.
// 전역 로거 훅을 사용하므로 병렬로 실행하지 않습니다.
func TestRateLimit_BlockedResponse(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	h := RateLimit(1, 1)(okHandler)

	assertRequest(t, h, "3.3.3.3", http.StatusOK)
	hook.Reset()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lookups", nil)
	req.RemoteAddr = "3.3.3.3:12345"
	rec := httptest.NewRecorder()

	err := h(e.NewContext(req, rec))
	require.Error(t, err)
	assert.Equal(t, ErrRateLimitExceeded, err)
	assert.Equal(t, constants.RetryAfterSeconds, rec.Header().Get(constants.HeaderRetryAfter))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, constants.LogMsgRateLimitExceeded, entry.Message)
	assert.Equal(t, "3.3.3.3", entry.Data["remote_ip"])
	assert.Equal(t, "/api/v1/lookups", entry.Data["path"])
}
