package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"slices"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
)

// maxBodySnippetBytes 에러에 포함할 응답 본문의 최대 크기
const maxBodySnippetBytes = 4096

// HTTPStatusError 허용되지 않은 상태 코드의 응답 정보를 담는 에러입니다.
//
// Cause에는 상태 코드에 따라 분류된 apperrors 에러가 들어 있으므로
// apperrors.Is(err, apperrors.Unavailable) 형태로 재시도 가능 여부를 판단할 수 있습니다.
type HTTPStatusError struct {
	StatusCode  int
	Status      string
	URL         string
	Header      http.Header
	BodySnippet string

	Cause error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += fmt.Sprintf(" URL: %s", e.URL)
	}
	if e.BodySnippet != "" {
		msg += fmt.Sprintf(", Body: %s", e.BodySnippet)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}

// CheckResponseStatus 응답 상태 코드가 허용 목록(기본값: 200 OK)에 없으면 HTTPStatusError를 반환합니다.
//
// 5xx, 429, 408은 Unavailable로, 404는 NotFound로, 401/403은 Forbidden으로,
// 그 외 4xx는 ExecutionFailed로 분류합니다. 에러를 반환한 경우에도 Body는 닫지 않습니다.
func CheckResponseStatus(resp *http.Response, allowedStatusCodes ...int) error {
	if len(allowedStatusCodes) == 0 {
		if resp.StatusCode == http.StatusOK {
			return nil
		}
	} else if slices.Contains(allowedStatusCodes, resp.StatusCode) {
		return nil
	}

	return newHTTPStatusError(resp)
}

// newHTTPStatusError 응답 본문 일부를 읽어 HTTPStatusError를 생성합니다. Body는 닫지 않습니다.
func newHTTPStatusError(resp *http.Response) *HTTPStatusError {
	var snippet string
	if resp.Body != nil {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippetBytes))
		snippet = string(b)
	}

	var reqURL string
	if resp.Request != nil {
		reqURL = redactURL(resp.Request.URL)
	}

	return &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		URL:         reqURL,
		Header:      redactHeaders(resp.Header),
		BodySnippet: snippet,
		Cause:       apperrors.Newf(statusErrorType(resp.StatusCode), "HTTP 요청이 실패했습니다. 상태 코드: %d", resp.StatusCode),
	}
}

func statusErrorType(statusCode int) apperrors.ErrorType {
	switch {
	case statusCode >= 500, statusCode == http.StatusTooManyRequests, statusCode == http.StatusRequestTimeout:
		return apperrors.Unavailable
	case statusCode == http.StatusNotFound:
		return apperrors.NotFound
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return apperrors.Forbidden
	default:
		return apperrors.ExecutionFailed
	}
}

// StatusCodeFetcher 응답 상태 코드를 검증하는 미들웨어입니다.
// 검증에 실패하면 Body를 정리하고 nil 응답과 HTTPStatusError를 반환합니다.
type StatusCodeFetcher struct {
	delegate Fetcher

	allowedStatusCodes []int
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher 허용할 상태 코드를 지정하여 StatusCodeFetcher를 생성합니다. 지정하지 않으면 200 OK만 허용합니다.
func NewStatusCodeFetcher(delegate Fetcher, allowedStatusCodes ...int) *StatusCodeFetcher {
	return &StatusCodeFetcher{
		delegate:           delegate,
		allowedStatusCodes: allowedStatusCodes,
	}
}

func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	if statusErr := CheckResponseStatus(resp, f.allowedStatusCodes...); statusErr != nil {
		drainAndCloseBody(resp.Body)
		return nil, statusErr
	}

	return resp, nil
}
