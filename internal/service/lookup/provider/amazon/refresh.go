package amazon

import (
	"context"

	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	applog "github.com/darkkaiser/hoplink/pkg/log"
)

// needsRefresh 검색 결과에 가격(Offers) 또는 JAN 코드(ExternalIds)가 빠진 후보인지 확인합니다.
func needsRefresh(rec *product.Record) bool {
	return rec.ID != "" && (!rec.HasPrice() || !rec.HasJAN())
}

// refresh 정보가 빠진 후보를 GetItems로 다시 조회하여 비어 있는 항목을 채웁니다.
//
// 호출은 한 번(최대 maxGetItemsIDs개)으로 제한되며, 실패해도 후보 목록은 그대로 반환됩니다.
// 채워진 후보는 새 레코드로 교체됩니다.
func (c *Client) refresh(ctx context.Context, candidates []*product.Record) []*product.Record {
	if c.cfg.EnrichLimit < 0 {
		return candidates
	}

	var asins []string
	for _, rec := range candidates {
		if len(asins) == maxGetItemsIDs {
			break
		}
		if needsRefresh(rec) {
			asins = append(asins, rec.ID)
		}
	}
	if len(asins) == 0 {
		return candidates
	}

	fresh, err := c.GetItems(ctx, asins)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"asins": len(asins),
			"error": err,
		}).Debug("후보 재조회 실패: 검색 결과를 그대로 사용합니다")

		return candidates
	}

	byASIN := make(map[string]*product.Record, len(fresh))
	for _, rec := range fresh {
		byASIN[rec.ID] = rec
	}

	for i, rec := range candidates {
		if f, ok := byASIN[rec.ID]; ok {
			candidates[i] = mergeMissing(rec, f)
		}
	}

	return candidates
}

// mergeMissing rec에 없는 항목만 f에서 채운 복사본을 반환합니다.
func mergeMissing(rec, f *product.Record) *product.Record {
	copied := *rec

	if !copied.HasPrice() && f.HasPrice() {
		copied.Price = f.Price
	}
	if !copied.HasJAN() && f.HasJAN() {
		copied.JANCode = f.JANCode
	}
	if copied.Brand == "" {
		copied.Brand = f.Brand
	}
	if copied.ImageURL == "" {
		copied.ImageURL = f.ImageURL
	}
	if copied.ReviewCount == 0 && f.ReviewCount > 0 {
		copied.ReviewCount = f.ReviewCount
		copied.ReviewAverage = f.ReviewAverage
	}

	return &copied
}
