// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
package handler

import (
	"context"

	"github.com/darkkaiser/hoplink/internal/service/api/auth"
	"github.com/darkkaiser/hoplink/internal/service/api/constants"
	"github.com/darkkaiser/hoplink/internal/service/lookup"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/labstack/echo/v4"
)

// LookupService 핸들러가 사용하는 조회 서비스입니다.
type LookupService interface {
	Lookup(ctx context.Context, req lookup.Request) (*lookup.Result, error)
	Batch(ctx context.Context, reqs []lookup.Request) ([]lookup.BatchItem, error)
	BatchMatch(ctx context.Context, sources []*product.Record, mode string) ([]lookup.MatchOutcome, error)
	PurgeCache(ctx context.Context) error
}

// Handler v1 API 요청을 바인딩, 검증한 뒤 조회 서비스로 전달합니다.
type Handler struct {
	lookupService LookupService
}

// New Handler 인스턴스를 생성합니다.
func New(lookupService LookupService) *Handler {
	if lookupService == nil {
		panic(constants.PanicMsgLookupServiceRequired)
	}

	return &Handler{
		lookupService: lookupService,
	}
}

// log 공통 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	fields := applog.Fields{
		"endpoint":   c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	}
	if app, err := auth.GetApplication(c); err == nil && app != nil {
		fields["application_id"] = app.ID
	}

	return applog.WithComponentAndFields(constants.ComponentHandler, fields)
}
