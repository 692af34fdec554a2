// Package system 헬스체크, 버전 정보 등 인증이 필요 없는 시스템 엔드포인트를 제공합니다.
package system

import (
	"context"
	"net/http"
	"runtime"
	"time"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/pkg/version"
	"github.com/darkkaiser/hoplink/internal/service/api/constants"
	"github.com/darkkaiser/hoplink/internal/service/api/model/system"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/labstack/echo/v4"
)

// healthCheckTimeout 의존성 상태 확인에 허용하는 최대 시간
const healthCheckTimeout = 3 * time.Second

// HealthChecker 외부 의존성별 상태를 제공합니다. 값이 nil이면 정상입니다.
type HealthChecker interface {
	Health(ctx context.Context) map[string]error
}

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	healthChecker HealthChecker

	buildInfo version.Info

	serverStartTime time.Time
}

// New Handler 인스턴스를 생성합니다.
func New(healthChecker HealthChecker, buildInfo version.Info) *Handler {
	if healthChecker == nil {
		panic(constants.PanicMsgHealthCheckerRequired)
	}

	return &Handler{
		healthChecker: healthChecker,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 외부 의존성(rakuten, amazon, cache)의 상태를 확인합니다.
// @Description 인증 없이 호출 가능하며, 모니터링 시스템에서 사용됩니다.
// @Description
// @Description 자격증명이 설정되지 않은 외부 API는 not_configured로 표시되며 전체 상태에 영향을 주지 않습니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	serverStatus := constants.HealthStatusHealthy
	deps := make(map[string]system.DependencyStatus)

	for name, err := range h.healthChecker.Health(ctx) {
		switch {
		case err == nil:
			deps[name] = system.DependencyStatus{
				Status:  constants.HealthStatusHealthy,
				Message: constants.MsgDepStatusHealthy,
			}

		case apperrors.Is(err, apperrors.NotConfigured):
			deps[name] = system.DependencyStatus{
				Status:  constants.HealthStatusNotConfigured,
				Message: err.Error(),
			}

		default:
			deps[name] = system.DependencyStatus{
				Status:  constants.HealthStatusUnhealthy,
				Message: err.Error(),
			}
			serverStatus = constants.HealthStatusUnhealthy
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       serverStatus,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 버전, Git 커밋 해시, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	goVersion := h.buildInfo.GoVersion
	if goVersion == "" {
		goVersion = runtime.Version()
	}

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   goVersion,
	})
}
