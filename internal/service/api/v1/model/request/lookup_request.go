// Package request v1 API의 요청 본문 모델을 정의합니다.
package request

import (
	"github.com/darkkaiser/hoplink/internal/service/lookup"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
)

// LookupRequest 단건 조회 요청
type LookupRequest struct {
	// Rakuten 상품 URL, JAN 코드 또는 검색 키워드
	Query string `json:"query" validate:"required,max=500" korean:"검색어" example:"https://item.rakuten.co.jp/shop/item-123/"`
	// 조회 종류 (비어 있으면 자동 판단)
	Kind string `json:"kind,omitempty" validate:"omitempty,oneof=url jan keyword" korean:"조회 종류" example:"url"`
	// 매칭 모드 (비어 있으면 서버 기본값)
	Mode string `json:"mode,omitempty" validate:"omitempty,oneofci=strict normal loose" korean:"매칭 모드" example:"normal"`
	// Amazon 키워드 검색 조건 (search_index, min_price, max_price, item_count)
	Options map[string]any `json:"options,omitempty" korean:"검색 조건"`
}

// ToLookup 서비스 계층의 조회 요청으로 변환합니다.
func (r LookupRequest) ToLookup() lookup.Request {
	return lookup.Request{
		Query:   r.Query,
		Kind:    lookup.InputKind(r.Kind),
		Mode:    r.Mode,
		Options: r.Options,
	}
}

// BatchLookupRequest 일괄 조회 요청
type BatchLookupRequest struct {
	Items []LookupRequest `json:"items" validate:"required,min=1,dive" korean:"조회 항목"`
}

// ToLookups 서비스 계층의 조회 요청 목록으로 변환합니다.
func (r BatchLookupRequest) ToLookups() []lookup.Request {
	reqs := make([]lookup.Request, len(r.Items))
	for i, item := range r.Items {
		reqs[i] = item.ToLookup()
	}
	return reqs
}

// BatchMatchRequest 이미 확보한 원본 상품 목록을 Amazon 후보와 매칭하는 요청
type BatchMatchRequest struct {
	// 매칭 모드 (비어 있으면 서버 기본값)
	Mode string `json:"mode,omitempty" validate:"omitempty,oneofci=strict normal loose" korean:"매칭 모드" example:"strict"`
	// 원본 상품 목록
	Sources []*product.Record `json:"sources" validate:"required,min=1" korean:"원본 상품 목록"`
}
