package middleware

import (
	"fmt"
	"net/http"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/api/constants"
	"github.com/darkkaiser/hoplink/internal/service/api/httputil"
	"github.com/darkkaiser/hoplink/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
)

var (
	// ErrAppKeyRequired App Key가 X-App-Key 헤더와 app_key 쿼리 파라미터 어디에도 없습니다.
	ErrAppKeyRequired = httputil.NewBadRequestError(constants.ErrMsgAuthAppKeyRequired)

	// ErrApplicationIDRequired Application ID가 헤더, 요청 본문, 쿼리 파라미터 어디에도 없습니다.
	ErrApplicationIDRequired = httputil.NewBadRequestError(constants.ErrMsgAuthApplicationIDRequired)

	// ErrBodyTooLarge 요청 본문이 BodyLimit를 초과했습니다.
	ErrBodyTooLarge = echo.NewHTTPError(http.StatusRequestEntityTooLarge, response.ErrorResponse{
		ResultCode: http.StatusRequestEntityTooLarge,
		Message:    constants.ErrMsgRequestEntityTooLarge,
	})

	// ErrBodyReadFailed 요청 본문을 읽지 못했습니다.
	ErrBodyReadFailed = httputil.NewBadRequestError(constants.ErrMsgBadRequestBodyReadFailed)

	// ErrInvalidJSON 요청 본문이 올바른 JSON이 아닙니다.
	ErrInvalidJSON = httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidJSON)

	// ErrRateLimitExceeded 허용된 요청 빈도를 초과했습니다.
	ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)

	// ErrUnsupportedMediaType 요청의 Content-Type을 지원하지 않습니다.
	ErrUnsupportedMediaType = echo.NewHTTPError(http.StatusUnsupportedMediaType, response.ErrorResponse{
		ResultCode: http.StatusUnsupportedMediaType,
		Message:    constants.ErrMsgUnsupportedMediaType,
	})
)

// NewErrPanicRecovered 복구된 패닉 값을 내부 시스템 오류로 변환합니다.
func NewErrPanicRecovered(r any) error {
	return apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
}
