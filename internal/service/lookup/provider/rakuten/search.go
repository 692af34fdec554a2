package rakuten

import (
	"context"
	"net/http"
	"strconv"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/darkkaiser/hoplink/pkg/strutil"
	"github.com/tidwall/gjson"
)

// Ichiba API가 상품 없음으로 응답할 때의 에러 코드
const apiErrorNotFound = "not_found"

type searchParams struct {
	itemCode string
	keyword  string
	hits     int

	// 검색한 JAN 코드. 상품명이나 설명에 이 코드가 그대로 있으면 해당 상품의 JAN으로 인정한다.
	jan string
}

// search Ichiba Item Search API를 1회 호출하여 결과를 상품 레코드로 변환합니다.
func (c *Client) search(ctx context.Context, p searchParams) ([]*product.Record, error) {
	apiURL := c.buildSearchURL(p)

	res, err := c.scraper.FetchJSON(ctx, http.MethodGet, apiURL, nil, nil)
	if err != nil {
		// 상품이 없으면 404(not_found)로 응답한다.
		if apperrors.Is(err, apperrors.NotFound) {
			return nil, nil
		}
		return nil, newErrAPIRequestFailed(err)
	}

	if code := res.Get("error").String(); code != "" {
		if code == apiErrorNotFound {
			return nil, nil
		}
		return nil, newErrAPIError(code, res.Get("error_description").String())
	}

	items := res.Get("Items").Array()
	records := make([]*product.Record, 0, len(items))
	for _, item := range items {
		// formatVersion=1 응답은 {"Item": {...}} 형태로 한 번 더 감싸져 있다.
		if wrapped := item.Get("Item"); wrapped.Exists() {
			item = wrapped
		}

		rec := c.parseItem(item, p.jan)
		if rec == nil {
			continue
		}
		records = append(records, rec)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"item_code": p.itemCode,
		"keyword":   p.keyword,
		"count":     len(records),
		"total":     res.Get("count").Int(),
	}).Debug("Ichiba 상품 검색 완료")

	return records, nil
}

// buildSearchURL 검색 조건과 자격증명을 조합하여 요청 URL을 만듭니다.
func (c *Client) buildSearchURL(p searchParams) string {
	u := *c.baseURL

	q := u.Query()
	q.Set("applicationId", c.cfg.ApplicationID)
	if c.cfg.AffiliateID != "" {
		q.Set("affiliateId", c.cfg.AffiliateID)
	}
	q.Set("format", "json")
	q.Set("formatVersion", "2")
	if p.itemCode != "" {
		q.Set("itemCode", p.itemCode)
	}
	if p.keyword != "" {
		q.Set("keyword", p.keyword)
	}
	if p.hits > 0 {
		q.Set("hits", strconv.Itoa(p.hits))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// parseItem API 응답의 상품 1건을 레코드로 변환합니다. 필수 항목이 없거나 검증에 실패하면 nil을 반환합니다.
// 텍스트에서 JAN을 찾지 못했더라도 janHint가 본문에 그대로 있으면 그 코드를 사용합니다.
func (c *Client) parseItem(item gjson.Result, janHint string) *product.Record {
	itemCode := item.Get("itemCode").String()
	name := strutil.NormalizeSpaces(strutil.StripHTMLTags(item.Get("itemName").String()))
	caption := strutil.StripHTMLTags(item.Get("itemCaption").String())

	opts := []product.Option{
		product.WithPrice(int(item.Get("itemPrice").Int())),
		product.WithURL(item.Get("itemUrl").String()),
		product.WithAffiliateURL(item.Get("affiliateUrl").String()),
		product.WithShopName(item.Get("shopName").String()),
		product.WithReviews(int(item.Get("reviewCount").Int()), item.Get("reviewAverage").Float()),
	}
	if img := firstImageURL(item); img != "" {
		opts = append(opts, product.WithImageURL(img))
	}
	if jan := DiscoverJAN(name, caption); jan != "" {
		opts = append(opts, product.WithJANCode(jan))
	} else if janHint != "" && containsCode(janHint, name, caption) {
		opts = append(opts, product.WithJANCode(janHint))
	}

	rec, err := product.New(product.PlatformRakuten, itemCode, name, opts...)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"item_code": itemCode,
			"item_name": name,
			"error":     err,
		}).Warn("상품 정보 무시됨: 응답 데이터가 올바르지 않습니다")

		return nil
	}

	return rec
}

// firstImageURL formatVersion=2는 문자열 배열, formatVersion=1은 {"imageUrl": ...} 배열이다.
func firstImageURL(item gjson.Result) string {
	first := item.Get("mediumImageUrls.0")
	if first.IsObject() {
		return first.Get("imageUrl").String()
	}
	return first.String()
}
