package middleware

import (
	"net/http"
	"runtime"

	"github.com/darkkaiser/hoplink/internal/service/api/constants"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/labstack/echo/v4"
)

// stackBufferSize 패닉 스택 트레이스 버퍼 크기 (4KB)
const stackBufferSize = 4 << 10

// PanicRecovery 핸들러에서 발생한 패닉을 복구하고 스택 트레이스와 함께 기록하는 미들웨어를 반환합니다.
// 복구된 패닉은 Echo 에러 핸들러를 통해 500 응답으로 변환됩니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}

					err, ok := r.(error)
					if !ok {
						err = NewErrPanicRecovered(r)
					}

					stack := make([]byte, stackBufferSize)
					length := runtime.Stack(stack, false)

					fields := applog.Fields{
						"error":  err,
						"stack":  string(stack[:length]),
						"method": c.Request().Method,
						"path":   c.Request().URL.Path,
					}
					if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
						fields["request_id"] = requestID
					}

					applog.WithComponentAndFields(constants.ComponentMiddlewarePanicRecovery, fields).Error(constants.LogMsgPanicRecovered)

					c.Error(err)
				}
			}()

			return next(c)
		}
	}
}
