package fetcher

import (
	"context"
	"crypto/x509"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	applog "github.com/darkkaiser/hoplink/pkg/log"
)

const (
	minAllowedRetries = 0
	maxAllowedRetries = 10

	// minAllowedRetryDelay 재시도 대기 시간의 하한
	minAllowedRetryDelay = 10 * time.Millisecond

	defaultMinRetryDelay = 1 * time.Second
	defaultMaxRetryDelay = 30 * time.Second
)

// RetryFetcher 일시적인 실패(네트워크 오류, 5xx, 429, 408) 시 지수 백오프로 재시도하는 미들웨어입니다.
//
//   - 대기 시간: minRetryDelay * 2^(n-1)을 maxRetryDelay로 제한한 뒤 Full Jitter 적용
//   - Retry-After 헤더가 있으면 그 값을 우선하며, maxRetryDelay를 넘으면 재시도를 포기합니다.
//   - POST/PATCH는 WithRetryable로 표시된 요청만 재시도합니다.
//   - 대기 중 컨텍스트가 취소되면 즉시 반환합니다.
type RetryFetcher struct {
	delegate Fetcher

	maxRetries    int
	minRetryDelay time.Duration
	maxRetryDelay time.Duration
}

var _ Fetcher = (*RetryFetcher)(nil)

// NewRetryFetcher 새로운 RetryFetcher를 생성합니다. 범위를 벗어난 설정값은 보정됩니다.
func NewRetryFetcher(delegate Fetcher, maxRetries int, minRetryDelay, maxRetryDelay time.Duration) *RetryFetcher {
	minRetryDelay, maxRetryDelay = normalizeRetryDelays(minRetryDelay, maxRetryDelay)

	return &RetryFetcher{
		delegate:      delegate,
		maxRetries:    normalizeMaxRetries(maxRetries),
		minRetryDelay: minRetryDelay,
		maxRetryDelay: maxRetryDelay,
	}
}

func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	maxRetries := f.maxRetries
	if !isIdempotentMethod(req.Method) && !isMarkedRetryable(req.Context()) {
		maxRetries = 0
	}
	if req.Body != nil && req.GetBody == nil && maxRetries > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"url":    redactURL(req.URL),
			"method": req.Method,
		}).Warn("재시도 비활성화: 요청 본문을 재생성할 수 없습니다 (GetBody nil)")

		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay, err := f.nextDelay(attempt, lastErr)
			if err != nil {
				return nil, err
			}

			applog.WithComponentAndFields(component, applog.Fields{
				"url":         redactURL(req.URL),
				"retry":       attempt,
				"max_retries": maxRetries,
				"delay":       delay.String(),
				"error":       lastErr.Error(),
			}).Warn("일시적 오류로 요청을 재시도합니다")

			if err := sleepContext(req.Context(), delay); err != nil {
				return nil, err
			}

			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, newErrGetBodyFailed(err)
				}
				req = req.Clone(req.Context())
				req.Body = body
			}
		}

		resp, err := f.delegate.Do(req)
		if err == nil {
			if !isRetriableStatus(resp.StatusCode) {
				return resp, nil
			}

			err = newHTTPStatusError(resp)
			drainAndCloseBody(resp.Body)
		} else if resp != nil {
			drainAndCloseBody(resp.Body)
		}

		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !isRetriable(err) {
			return nil, err
		}

		lastErr = err
	}

	if maxRetries == 0 {
		return nil, lastErr
	}
	return nil, newErrMaxRetriesExceeded(lastErr)
}

// nextDelay attempt번째 재시도 전에 대기할 시간을 계산합니다.
func (f *RetryFetcher) nextDelay(attempt int, lastErr error) (time.Duration, error) {
	var statusErr *HTTPStatusError
	if errors.As(lastErr, &statusErr) && statusErr.Header != nil {
		if retryAfter, ok := parseRetryAfter(statusErr.Header.Get("Retry-After")); ok {
			if retryAfter > f.maxRetryDelay {
				return 0, newErrRetryAfterExceeded(retryAfter.String(), f.maxRetryDelay.String())
			}
			return retryAfter, nil
		}
	}

	delay := f.minRetryDelay << (attempt - 1)
	if delay > f.maxRetryDelay || delay <= 0 {
		delay = f.maxRetryDelay
	}

	delay = time.Duration(rand.Int64N(int64(delay) + 1))
	if delay < f.minRetryDelay/2 {
		delay = f.minRetryDelay / 2
	}
	return delay, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func normalizeMaxRetries(n int) int {
	return min(max(n, minAllowedRetries), maxAllowedRetries)
}

func normalizeRetryDelays(minDelay, maxDelay time.Duration) (time.Duration, time.Duration) {
	if minDelay <= 0 {
		minDelay = defaultMinRetryDelay
	}
	if minDelay < minAllowedRetryDelay {
		minDelay = minAllowedRetryDelay
	}
	if maxDelay <= 0 {
		maxDelay = defaultMaxRetryDelay
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return minDelay, maxDelay
}

func isRetriableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		return true
	case http.StatusNotImplemented, http.StatusHTTPVersionNotSupported, http.StatusNetworkAuthenticationRequired:
		return false
	}
	return statusCode >= 500
}

// isRetriable 재시도로 해결될 가능성이 있는 에러인지 판단합니다.
func isRetriable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg := urlErr.Error()
		if strings.Contains(msg, "unsupported protocol scheme") ||
			strings.Contains(msg, "invalid control character in URL") ||
			strings.Contains(msg, "stopped after") {
			return false
		}
	}

	var hostnameErr x509.HostnameError
	var unknownAuthorityErr x509.UnknownAuthorityError
	var certInvalidErr x509.CertificateInvalidError
	if errors.As(err, &hostnameErr) || errors.As(err, &unknownAuthorityErr) || errors.As(err, &certInvalidErr) {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return isRetriableStatus(statusErr.StatusCode)
	}

	if apperrors.Is(err, apperrors.Unavailable) || apperrors.Is(err, apperrors.Timeout) {
		return true
	}
	if apperrors.Is(err, apperrors.ExecutionFailed) ||
		apperrors.Is(err, apperrors.InvalidInput) ||
		apperrors.Is(err, apperrors.Forbidden) ||
		apperrors.Is(err, apperrors.NotFound) ||
		apperrors.Is(err, apperrors.Internal) {
		return false
	}

	// DNS 조회 실패, 연결 거부 등 명확한 실패 사유가 없는 네트워크 오류
	return true
}

func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// parseRetryAfter 초 단위 정수 또는 HTTP-date 형식의 Retry-After 값을 해석합니다.
func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}

	if date, err := http.ParseTime(value); err == nil {
		return max(time.Until(date), 0), true
	}

	return 0, false
}
