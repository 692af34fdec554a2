package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/hoplink/internal/service/api/constants"
	"github.com/darkkaiser/hoplink/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/hoplink/internal/service/api/middleware"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// hstsMaxAge TLS 사용 시 Strict-Transport-Security 헤더의 max-age (1년)
const hstsMaxAge = 31536000

// HTTPServerConfig HTTP 서버 생성에 필요한 설정입니다.
type HTTPServerConfig struct {
	// Debug Echo 디버그 모드 활성화 여부
	Debug bool

	// EnableHSTS Strict-Transport-Security 헤더 추가 여부 (TLS 서버에서만 사용)
	EnableHSTS bool

	// AllowOrigins CORS 허용 Origin 목록
	AllowOrigins []string

	// RequestTimeout 요청 하나의 최대 처리 시간 (0이면 기본값)
	RequestTimeout time.Duration

	// RateLimitEnabled IP별 요청 제한 사용 여부
	RateLimitEnabled bool
	// RateLimitRequestsPerSecond IP별 초당 허용 요청 수 (0 이하이면 기본값)
	RateLimitRequestsPerSecond float64
	// RateLimitBurst IP별 버스트 허용량 (0 이하이면 기본값)
	RateLimitBurst int
}

// NewHTTPServer 공통 미들웨어가 적용된 Echo 인스턴스를 생성합니다. 라우트는 포함하지 않습니다.
//
// 미들웨어 적용 순서:
//  1. PanicRecovery: 이후 미들웨어의 패닉까지 복구
//  2. RequestID: UUID 기반 요청 ID (로그 추적용)
//  3. Server 헤더 제거
//  4. HTTPLogger: 429/503 응답도 기록되도록 제한 미들웨어보다 앞에 위치
//  5. RateLimit: IP별 요청 제한 (설정 시)
//  6. BodyLimit: 요청 본문 크기 제한 (초과 시 413)
//  7. Timeout: 요청 처리 시간 제한 (초과 시 503)
//  8. CORS
//  9. Secure: 보안 헤더 (TLS 사용 시 HSTS 포함)
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	if cfg.RateLimitEnabled {
		rps := cfg.RateLimitRequestsPerSecond
		if rps <= 0 {
			rps = constants.DefaultRateLimitPerSecond
		}
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = constants.DefaultRateLimitBurst
		}
		e.Use(appmiddleware.RateLimit(rps, burst))
	}
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout:      timeout,
		ErrorMessage: constants.ErrMsgGatewayTimeout,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, constants.HeaderXAppKey, constants.HeaderXApplicationID},
	}))

	secureConfig := middleware.DefaultSecureConfig
	if cfg.EnableHSTS {
		secureConfig.HSTSMaxAge = hstsMaxAge
	}
	e.Use(middleware.SecureWithConfig(secureConfig))

	return e
}
