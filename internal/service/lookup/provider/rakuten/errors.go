package rakuten

import (
	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/pkg/strutil"
)

// ErrNotConfigured 애플리케이션 ID가 설정되지 않아 Ichiba API를 호출할 수 없습니다.
var ErrNotConfigured = apperrors.New(apperrors.NotConfigured, "Rakuten 애플리케이션 ID가 설정되지 않았습니다")

func newErrUnsupportedURL(input string) error {
	return apperrors.Newf(apperrors.InvalidInput, "Rakuten 상품 URL 형식이 아닙니다: %s", strutil.TruncateRunes(input, 200))
}

func newErrShortLinkNotItem(shortURL, finalURL string) error {
	return apperrors.Newf(apperrors.InvalidInput, "단축 URL(%s)이 상품 페이지로 연결되지 않습니다: %s", shortURL, strutil.TruncateRunes(finalURL, 200))
}

func newErrShortLinkExpandFailed(shortURL string, err error) error {
	return apperrors.Wrapf(err, typeOrUnavailable(err), "단축 URL(%s)을 확장하지 못했습니다", shortURL)
}

func newErrAPIRequestFailed(err error) error {
	return apperrors.Wrap(err, typeOrUnavailable(err), "Rakuten Ichiba API 호출에 실패했습니다")
}

func newErrAPIError(code, description string) error {
	return apperrors.Newf(apperrors.ExecutionFailed, "Rakuten Ichiba API가 에러를 반환했습니다: %s (%s)", code, description)
}

func newErrInvalidEndpoint(endpoint string, err error) error {
	return apperrors.Wrapf(err, apperrors.InvalidInput, "Rakuten API 엔드포인트 형식이 올바르지 않습니다: %s", endpoint)
}

// typeOrUnavailable 원인 에러의 타입을 유지하고, 분류되지 않은 에러는 Unavailable로 봅니다.
func typeOrUnavailable(err error) apperrors.ErrorType {
	if t := apperrors.UnderlyingType(err); t != apperrors.Unknown {
		return t
	}
	return apperrors.Unavailable
}
