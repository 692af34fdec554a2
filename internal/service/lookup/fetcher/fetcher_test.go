package fetcher_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup/fetcher"
	"github.com/darkkaiser/hoplink/internal/service/lookup/fetcher/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// NewFromConfig (체인 통합)
// =============================================================================

func TestNewFromConfig_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"Items":[]}`))
	}))
	defer ts.Close()

	f := fetcher.NewFromConfig(fetcher.Config{
		MaxRetries:    3,
		MinRetryDelay: 10 * time.Millisecond,
		MaxRetryDelay: 20 * time.Millisecond,
	})

	resp, err := fetcher.Get(context.Background(), f, ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, `{"Items":[]}`, string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestNewFromConfig_NotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer ts.Close()

	f := fetcher.NewFromConfig(fetcher.Config{MaxRetries: 3, MinRetryDelay: 10 * time.Millisecond, DisableLogging: true})

	_, err := fetcher.Get(context.Background(), f, ts.URL)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewFromConfig_InvalidProxy(t *testing.T) {
	t.Parallel()

	f := fetcher.NewFromConfig(fetcher.Config{ProxyURL: "://bad-proxy"})

	_, err := fetcher.Get(context.Background(), f, "https://example.com")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}

// =============================================================================
// StatusCodeFetcher
// =============================================================================

func TestStatusCodeFetcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		allowed  []int
		wantType apperrors.ErrorType
		wantErr  bool
	}{
		{"200 기본 허용", http.StatusOK, nil, 0, false},
		{"204 허용 목록", http.StatusNoContent, []int{http.StatusOK, http.StatusNoContent}, 0, false},
		{"404는 NotFound", http.StatusNotFound, nil, apperrors.NotFound, true},
		{"403은 Forbidden", http.StatusForbidden, nil, apperrors.Forbidden, true},
		{"503은 Unavailable", http.StatusServiceUnavailable, nil, apperrors.Unavailable, true},
		{"400은 ExecutionFailed", http.StatusBadRequest, nil, apperrors.ExecutionFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mocks.NewMockHTTPFetcher()
			m.SetResponseWithStatus("https://item.rakuten.co.jp/shop/item/", []byte("error body"), tt.status)

			req, _ := http.NewRequest(http.MethodGet, "https://item.rakuten.co.jp/shop/item/", nil)
			resp, err := fetcher.NewStatusCodeFetcher(m, tt.allowed...).Do(req)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.status, resp.StatusCode)
				return
			}

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, apperrors.Is(err, tt.wantType))

			var statusErr *fetcher.HTTPStatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, "error body", statusErr.BodySnippet)
		})
	}
}

// =============================================================================
// MaxBytesFetcher
// =============================================================================

func TestMaxBytesFetcher(t *testing.T) {
	t.Parallel()

	t.Run("Content-Length 초과는 즉시 차단", func(t *testing.T) {
		m := mocks.NewMockHTTPFetcher()
		m.SetResponse("https://example.com/big", []byte(strings.Repeat("a", 100)))

		req, _ := http.NewRequest(http.MethodGet, "https://example.com/big", nil)
		_, err := fetcher.NewMaxBytesFetcher(m, 10).Do(req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Content-Length")
	})

	t.Run("읽는 도중 초과", func(t *testing.T) {
		m := &mocks.MockFetcher{}
		resp := mocks.NewMockResponse(strings.Repeat("a", 100), http.StatusOK)
		resp.ContentLength = -1
		m.On("Do", mock.Anything).Return(resp, nil)

		req, _ := http.NewRequest(http.MethodGet, "https://example.com/stream", nil)
		got, err := fetcher.NewMaxBytesFetcher(m, 10).Do(req)
		require.NoError(t, err)
		defer got.Body.Close()

		_, err = io.ReadAll(got.Body)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))
	})

	t.Run("NoLimit은 래핑하지 않음", func(t *testing.T) {
		m := mocks.NewMockHTTPFetcher()
		assert.Same(t, fetcher.Fetcher(m), fetcher.NewMaxBytesFetcher(m, fetcher.NoLimit))
	})
}

// =============================================================================
// UserAgentFetcher
// =============================================================================

func TestUserAgentFetcher(t *testing.T) {
	t.Parallel()

	m := mocks.NewMockHTTPFetcher()
	m.SetResponse("https://example.com", nil)
	f := fetcher.NewUserAgentFetcher(m, []string{"HopLinkBot/1.0"})

	req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)
	_, err := f.Do(req)
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get("User-Agent"), "원본 요청은 변경되지 않아야 합니다")

	req2, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)
	req2.Header.Set("User-Agent", "Custom/2.0")
	_, err = f.Do(req2)
	require.NoError(t, err)

	requests := m.GetRequests()
	require.Len(t, requests, 2)
	assert.Equal(t, "HopLinkBot/1.0", requests[0].Header.Get("User-Agent"))
	assert.Equal(t, "Custom/2.0", requests[1].Header.Get("User-Agent"))
}
