package amazon

import (
	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup/fetcher"
	"github.com/tidwall/gjson"
)

// ErrNotConfigured 액세스 키 또는 파트너 태그가 없어 PA-API를 호출할 수 없습니다.
var ErrNotConfigured = apperrors.New(apperrors.NotConfigured, "Amazon PA-API 자격증명 또는 파트너 태그가 설정되지 않았습니다")

func newErrCredentialsLoadFailed(err error) error {
	return apperrors.Wrap(err, apperrors.NotConfigured, "AWS 공유 설정에서 PA-API 자격증명을 불러오지 못했습니다")
}

func newErrSigningFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "PA-API 요청 서명에 실패했습니다")
}

func newErrBuildRequestFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "PA-API 요청을 만들지 못했습니다")
}

func newErrInvalidResponse(operation string) error {
	return apperrors.Newf(apperrors.ParsingFailed, "PA-API %s 응답이 올바른 JSON이 아닙니다", operation)
}

func newErrInvalidOptions(err error) error {
	return apperrors.Wrap(err, apperrors.InvalidInput, "Amazon 검색 옵션이 올바르지 않습니다")
}

// newErrAPIRequestFailed 원인 에러의 타입을 유지하며, 상태 코드 에러라면 PA-API 에러 코드를 메시지에 덧붙입니다.
func newErrAPIRequestFailed(operation string, err error) error {
	errType := apperrors.UnderlyingType(err)
	if errType == apperrors.Unknown {
		errType = apperrors.Unavailable
	}

	var statusErr *fetcher.HTTPStatusError
	if apperrors.As(err, &statusErr) {
		if code := gjson.Get(statusErr.BodySnippet, "Errors.0.Code").String(); code != "" {
			return apperrors.Wrapf(err, errType, "PA-API %s 호출에 실패했습니다 (코드: %s)", operation, code)
		}
	}

	return apperrors.Wrapf(err, errType, "PA-API %s 호출에 실패했습니다", operation)
}

func newErrAPIError(operation, code, message string) error {
	return apperrors.Newf(apperrors.ExecutionFailed, "PA-API %s가 에러를 반환했습니다: %s (%s)", operation, code, message)
}
