package scraper

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup/fetcher"
)

// ErrInputReaderNil ParseHTML에 nil Reader가 전달되었을 때 반환됩니다.
var ErrInputReaderNil = apperrors.New(apperrors.Internal, "파싱 초기화 실패: 입력 Reader가 nil입니다")

func newErrCreateHTTPRequest(url string, err error) error {
	return apperrors.Wrapf(err, apperrors.InvalidInput, "HTTP 요청 생성 실패 (URL: %s)", fetcher.RedactRawURL(url))
}

// newErrRequestFailed fetcher 체인이 반환한 에러를 분류해 감쌉니다.
// 이미 분류된 에러(apperrors, HTTPStatusError)는 유형을 유지합니다.
func newErrRequestFailed(url string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrapf(err, apperrors.Timeout, "요청 중단: 시간이 초과되었거나 취소되었습니다 (URL: %s)", fetcher.RedactRawURL(url))
	}

	errType := apperrors.UnderlyingType(err)
	if errType == apperrors.Unknown {
		errType = apperrors.Unavailable
	}
	return apperrors.Wrapf(err, errType, "페이지(%s) 요청에 실패했습니다", fetcher.RedactRawURL(url))
}

func newErrResponseBodyTooLarge(limit int64, url string) error {
	return apperrors.New(apperrors.ParsingFailed, fmt.Sprintf("응답 본문이 허용 크기(%d bytes)를 초과하여 처리를 중단합니다 (URL: %s)", limit, fetcher.RedactRawURL(url)))
}

func newErrReadResponseBody(err error) error {
	return apperrors.Wrap(err, apperrors.ExecutionFailed, "응답 본문을 읽는 중 I/O 오류가 발생했습니다")
}

func newErrHTMLParseFailed(url string, err error) error {
	return apperrors.Wrapf(err, apperrors.ParsingFailed, "HTML 파싱 실패 (URL: %s)", fetcher.RedactRawURL(url))
}

func newErrInvalidJSON(url, preview string) error {
	return apperrors.Newf(apperrors.ParsingFailed, "응답이 올바른 JSON이 아닙니다 (URL: %s, Body: %s)", fetcher.RedactRawURL(url), preview)
}

func newErrUnexpectedHTMLResponse(url, contentType string) error {
	return apperrors.Newf(apperrors.ParsingFailed, "JSON을 기대했으나 HTML 응답이 수신되었습니다. 엔드포인트 또는 인증 정보를 확인하세요 (URL: %s, Content-Type: %s)", fetcher.RedactRawURL(url), contentType)
}
