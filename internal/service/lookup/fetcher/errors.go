package fetcher

import (
	"fmt"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
)

var (
	// ErrMaxRetriesExceeded 최대 재시도 횟수를 모두 소진했을 때의 원인 에러입니다.
	ErrMaxRetriesExceeded = apperrors.New(apperrors.Unavailable, "최대 재시도 횟수를 초과했습니다")
)

func newErrMaxRetriesExceeded(cause error) error {
	return apperrors.Wrap(cause, apperrors.Unavailable, "최대 재시도 횟수를 초과했습니다")
}

func newErrRetryAfterExceeded(retryAfter, maxDelay string) error {
	return apperrors.Newf(apperrors.Unavailable, "서버가 요구한 재시도 대기 시간(%s)이 허용 최대값(%s)을 초과하여 요청을 중단합니다", retryAfter, maxDelay)
}

func newErrGetBodyFailed(cause error) error {
	return apperrors.Wrap(cause, apperrors.Internal, "재시도를 위한 요청 본문 재생성에 실패했습니다")
}

// newErrResponseBodyTooLarge 응답 본문이 허용 크기를 넘었을 때의 에러를 생성합니다.
func newErrResponseBodyTooLarge(limit int64) error {
	return apperrors.Newf(apperrors.ExecutionFailed, "응답 본문이 허용 크기(%d bytes)를 초과했습니다", limit)
}

func newErrResponseBodyTooLargeByContentLength(contentLength, limit int64) error {
	return apperrors.New(apperrors.ExecutionFailed, fmt.Sprintf("응답 본문 크기(Content-Length: %d bytes)가 허용 크기(%d bytes)를 초과했습니다", contentLength, limit))
}

func newErrInvalidProxyURL(proxyURL string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.InvalidInput, "프록시 URL(%s) 형식이 올바르지 않습니다", redactRawURL(proxyURL))
}
