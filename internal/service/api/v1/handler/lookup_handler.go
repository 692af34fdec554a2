package handler

import (
	"net/http"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/pkg/validator"
	"github.com/darkkaiser/hoplink/internal/service/api/httputil"
	"github.com/darkkaiser/hoplink/internal/service/api/v1/model/request"
	"github.com/darkkaiser/hoplink/internal/service/api/v1/model/response"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/labstack/echo/v4"
)

// LookupHandler godoc
// @Summary 상품 조회 및 매칭
// @Description Rakuten 상품 URL, JAN 코드 또는 검색 키워드로 원본 상품을 찾고, 가장 잘 맞는 Amazon 상품을 매칭합니다.
// @Description
// @Description 외부 API 실패는 HTTP 에러가 아니라 결과의 status 필드(lookup_failed, not_configured 등)로 전달됩니다.
// @Description
// @Description ```bash
// @Description curl -X POST "http://localhost:2443/api/v1/lookups" \
// @Description   -H "Content-Type: application/json" \
// @Description   -H "X-App-Key: your-app-key" \
// @Description   -H "X-Application-Id: my-app" \
// @Description   -d '{"query":"https://item.rakuten.co.jp/shop/item-123/","mode":"normal"}'
// @Description ```
// @Tags Lookup
// @Accept json
// @Produce json
// @Param X-App-Key header string true "Application Key"
// @Param X-Application-Id header string false "Application ID"
// @Param request body request.LookupRequest true "조회 요청"
// @Success 200 {object} response.LookupResponse "조회 결과"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Failure 429 {object} response.ErrorResponse "요청 빈도 초과"
// @Failure 500 {object} response.ErrorResponse "서버 내부 오류"
// @Security ApiKeyAuth
// @Router /api/v1/lookups [post]
func (h *Handler) LookupHandler(c echo.Context) error {
	req := new(request.LookupRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := validator.Struct(req); err != nil {
		return NewErrValidationFailed(validator.FormatValidationError(err))
	}

	res, err := h.lookupService.Lookup(c.Request().Context(), req.ToLookup())
	if err != nil {
		h.log(c).WithField("error", err).Warn("조회 요청 처리 실패")
		return httputil.FromAppError(err)
	}

	h.log(c).WithFields(applog.Fields{
		"kind":   res.Kind,
		"status": res.Status,
		"cached": res.Cached,
	}).Info("조회 요청 처리 완료")

	return c.JSON(http.StatusOK, response.LookupResponse{
		ResultCode: 0,
		Result:     res,
	})
}

// BatchLookupHandler godoc
// @Summary 일괄 상품 조회 및 매칭
// @Description 여러 조회 요청을 순서대로 처리합니다. 잘못된 항목은 해당 항목의 error 필드에만 기록됩니다.
// @Tags Lookup
// @Accept json
// @Produce json
// @Param X-App-Key header string true "Application Key"
// @Param X-Application-Id header string false "Application ID"
// @Param request body request.BatchLookupRequest true "일괄 조회 요청"
// @Success 200 {object} response.BatchLookupResponse "항목별 조회 결과"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청 (빈 목록, 최대 개수 초과 등)"
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Failure 500 {object} response.ErrorResponse "서버 내부 오류"
// @Security ApiKeyAuth
// @Router /api/v1/lookups/batch [post]
func (h *Handler) BatchLookupHandler(c echo.Context) error {
	req := new(request.BatchLookupRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := validator.Struct(req); err != nil {
		return NewErrValidationFailed(validator.FormatValidationError(err))
	}

	items, err := h.lookupService.Batch(c.Request().Context(), req.ToLookups())
	if err != nil {
		h.log(c).WithField("error", err).Warn("일괄 조회 요청 처리 실패")
		return httputil.FromAppError(err)
	}

	h.log(c).WithField("items", len(items)).Info("일괄 조회 요청 처리 완료")

	return c.JSON(http.StatusOK, response.BatchLookupResponse{
		ResultCode: 0,
		Items:      items,
	})
}

// BatchMatchHandler godoc
// @Summary 원본 상품 일괄 매칭
// @Description 이미 확보한 원본 상품 목록을 Amazon 후보와 매칭합니다. 캐시는 사용하지 않습니다.
// @Description 한 상품의 후보 검색이 실패해도 나머지 상품의 매칭은 계속됩니다.
// @Tags Match
// @Accept json
// @Produce json
// @Param X-App-Key header string true "Application Key"
// @Param X-Application-Id header string false "Application ID"
// @Param request body request.BatchMatchRequest true "일괄 매칭 요청"
// @Success 200 {object} response.BatchMatchResponse "원본별 매칭 결과"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Failure 500 {object} response.ErrorResponse "서버 내부 오류"
// @Security ApiKeyAuth
// @Router /api/v1/matches/batch [post]
func (h *Handler) BatchMatchHandler(c echo.Context) error {
	req := new(request.BatchMatchRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := validator.Struct(req); err != nil {
		return NewErrValidationFailed(validator.FormatValidationError(err))
	}
	for i, src := range req.Sources {
		if src == nil {
			return NewErrInvalidSource(i, apperrors.New(apperrors.InvalidInput, "원본 상품 정보가 없습니다"))
		}
		if err := src.Validate(); err != nil {
			return NewErrInvalidSource(i, err)
		}
	}

	outcomes, err := h.lookupService.BatchMatch(c.Request().Context(), req.Sources, req.Mode)
	if err != nil {
		h.log(c).WithField("error", err).Warn("일괄 매칭 요청 처리 실패")
		return httputil.FromAppError(err)
	}

	matched := 0
	for _, o := range outcomes {
		if o.Matched {
			matched++
		}
	}
	h.log(c).WithFields(applog.Fields{
		"sources": len(outcomes),
		"matched": matched,
	}).Info("일괄 매칭 요청 처리 완료")

	return c.JSON(http.StatusOK, response.BatchMatchResponse{
		ResultCode: 0,
		Items:      outcomes,
	})
}

// messageOf AppError이면 타입 접두어 없이 메시지만 반환합니다.
func messageOf(err error) string {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr.Message()
	}
	return err.Error()
}
