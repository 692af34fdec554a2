// Package httputil API 핸들러와 미들웨어가 공통으로 사용하는 HTTP 응답/에러 헬퍼를 제공합니다.
package httputil

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/api/constants"
	"github.com/darkkaiser/hoplink/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
)

// NewBadRequestError 400 Bad Request 에러를 생성합니다
func NewBadRequestError(message string) error {
	return newHTTPError(http.StatusBadRequest, message)
}

// NewUnauthorizedError 401 Unauthorized 에러를 생성합니다
func NewUnauthorizedError(message string) error {
	return newHTTPError(http.StatusUnauthorized, message)
}

// NewNotFoundError 404 Not Found 에러를 생성합니다
func NewNotFoundError(message string) error {
	return newHTTPError(http.StatusNotFound, message)
}

// NewTooManyRequestsError 429 Too Many Requests 에러를 생성합니다
func NewTooManyRequestsError(message string) error {
	return newHTTPError(http.StatusTooManyRequests, message)
}

// NewInternalServerError 500 Internal Server Error 에러를 생성합니다
func NewInternalServerError(message string) error {
	return newHTTPError(http.StatusInternalServerError, message)
}

// NewServiceUnavailableError 503 Service Unavailable 에러를 생성합니다
func NewServiceUnavailableError(message string) error {
	return newHTTPError(http.StatusServiceUnavailable, message)
}

func newHTTPError(code int, message string) error {
	return echo.NewHTTPError(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

// FromAppError 서비스 계층의 AppError를 에러 타입에 맞는 HTTP 에러로 변환합니다.
//
// 입력 오류는 메시지를 그대로 전달하고, 내부 오류는 상세 내용을 숨긴 표준 메시지로 대체합니다.
// 이미 *echo.HTTPError인 에러는 그대로 반환합니다.
func FromAppError(err error) error {
	if err == nil {
		return nil
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newHTTPError(http.StatusGatewayTimeout, constants.ErrMsgGatewayTimeout)
	}

	var appErr *apperrors.AppError
	if !apperrors.As(err, &appErr) {
		return NewInternalServerError(constants.ErrMsgInternalServer)
	}

	message := appErr.Message()
	switch appErr.Type() {
	case apperrors.InvalidInput, apperrors.ParsingFailed:
		return NewBadRequestError(message)
	case apperrors.Unauthorized:
		return NewUnauthorizedError(message)
	case apperrors.Forbidden:
		return newHTTPError(http.StatusForbidden, message)
	case apperrors.NotFound:
		return NewNotFoundError(message)
	case apperrors.Conflict:
		return newHTTPError(http.StatusConflict, message)
	case apperrors.NotConfigured, apperrors.Unavailable:
		return NewServiceUnavailableError(constants.ErrMsgServiceUnavailable)
	case apperrors.Timeout:
		return newHTTPError(http.StatusGatewayTimeout, constants.ErrMsgGatewayTimeout)
	default:
		return NewInternalServerError(constants.ErrMsgInternalServer)
	}
}

// Success 표준 성공 응답(200 OK)을 JSON 형식으로 반환합니다.
func Success(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse{
		ResultCode: 0,
		Message:    constants.MsgSuccess,
	})
}
