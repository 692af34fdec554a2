package amazon

import (
	"strconv"

	"github.com/darkkaiser/hoplink/pkg/maputil"
)

const (
	defaultSearchIndex = "All"
	defaultItemCount   = 10
	maxItemCount       = 10
)

// SearchOptions 키워드 검색 조건입니다. 가격은 엔화 정수입니다.
type SearchOptions struct {
	SearchIndex string `json:"search_index"`
	MinPrice    int    `json:"min_price"`
	MaxPrice    int    `json:"max_price"`
	ItemCount   int    `json:"item_count"`
}

// ParseSearchOptions 요청 JSON에서 디코딩된 맵을 base 위에 덮어써 검색 옵션을 만듭니다.
// 맵에 없는 항목은 base의 값을 유지합니다. "3000"처럼 문자열로 전달된 숫자도 허용하며,
// 정의되지 않은 항목이 있으면 에러를 반환합니다.
func ParseSearchOptions(base SearchOptions, raw map[string]any) (SearchOptions, error) {
	opts := base
	if len(raw) == 0 {
		return opts.normalized(), nil
	}

	if err := maputil.DecodeTo(raw, &opts, maputil.WithErrorUnused(true)); err != nil {
		return SearchOptions{}, newErrInvalidOptions(err)
	}

	return opts.normalized(), nil
}

// normalized 기본값을 채우고 범위를 벗어난 값을 보정합니다.
func (o SearchOptions) normalized() SearchOptions {
	if o.SearchIndex == "" {
		o.SearchIndex = defaultSearchIndex
	}
	if o.ItemCount <= 0 {
		o.ItemCount = defaultItemCount
	}
	if o.ItemCount > maxItemCount {
		o.ItemCount = maxItemCount
	}
	if o.MinPrice < 0 {
		o.MinPrice = 0
	}
	if o.MaxPrice < 0 {
		o.MaxPrice = 0
	}
	if o.MaxPrice > 0 && o.MinPrice > o.MaxPrice {
		o.MinPrice, o.MaxPrice = o.MaxPrice, o.MinPrice
	}
	return o
}

// CacheOptions 캐시 키에 포함할 옵션 값을 반환합니다. 기본값과 같은 항목은 생략합니다.
func (o SearchOptions) CacheOptions() map[string]string {
	o = o.normalized()

	out := make(map[string]string)
	if o.SearchIndex != defaultSearchIndex {
		out["search_index"] = o.SearchIndex
	}
	if o.MinPrice > 0 {
		out["min_price"] = strconv.Itoa(o.MinPrice)
	}
	if o.MaxPrice > 0 {
		out["max_price"] = strconv.Itoa(o.MaxPrice)
	}
	if o.ItemCount != defaultItemCount {
		out["item_count"] = strconv.Itoa(o.ItemCount)
	}
	return out
}
