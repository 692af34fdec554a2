package handler

import (
	"github.com/darkkaiser/hoplink/internal/service/api/httputil"
	"github.com/labstack/echo/v4"
)

// PurgeCacheHandler godoc
// @Summary 조회 결과 캐시 비우기
// @Description 저장된 모든 조회 결과 캐시를 삭제합니다.
// @Tags Cache
// @Produce json
// @Param X-App-Key header string true "Application Key"
// @Param X-Application-Id header string false "Application ID"
// @Param application_id query string false "Application ID"
// @Success 200 {object} response.SuccessResponse "성공"
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Failure 500 {object} response.ErrorResponse "서버 내부 오류"
// @Security ApiKeyAuth
// @Router /api/v1/cache [delete]
func (h *Handler) PurgeCacheHandler(c echo.Context) error {
	if err := h.lookupService.PurgeCache(c.Request().Context()); err != nil {
		h.log(c).WithField("error", err).Error("캐시 비우기 실패")
		return httputil.FromAppError(err)
	}

	h.log(c).Info("캐시 비우기 완료")

	return httputil.Success(c)
}
