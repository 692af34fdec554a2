// Package v1 /api/v1 경로 하위의 조회, 매칭, 캐시 관리 엔드포인트를 등록합니다.
//
// 모든 엔드포인트는 애플리케이션 인증(App Key)을 요구합니다.
package v1

import (
	"github.com/darkkaiser/hoplink/internal/service/api/auth"
	"github.com/darkkaiser/hoplink/internal/service/api/middleware"
	"github.com/darkkaiser/hoplink/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 등록합니다.
//
// 등록되는 엔드포인트:
//   - POST   /api/v1/lookups        - 단건 조회 및 매칭
//   - POST   /api/v1/lookups/batch  - 일괄 조회 및 매칭
//   - POST   /api/v1/matches/batch  - 원본 상품 일괄 매칭
//   - DELETE /api/v1/cache          - 조회 결과 캐시 비우기
func RegisterRoutes(e *echo.Echo, h *handler.Handler, authenticator *auth.Authenticator) {
	v1Group := e.Group("/api/v1")

	authMiddleware := middleware.RequireAuthentication(authenticator)
	jsonOnly := middleware.ValidateContentType(echo.MIMEApplicationJSON)

	v1Group.POST("/lookups", h.LookupHandler, authMiddleware, jsonOnly)
	v1Group.POST("/lookups/batch", h.BatchLookupHandler, authMiddleware, jsonOnly)
	v1Group.POST("/matches/batch", h.BatchMatchHandler, authMiddleware, jsonOnly)
	v1Group.DELETE("/cache", h.PurgeCacheHandler, authMiddleware)
}
