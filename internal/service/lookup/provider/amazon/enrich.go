package amazon

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/shopspring/decimal"
)

// 상품 페이지의 가격 표시 영역 (우선순위 순)
var priceSelectors = []string{
	"#corePrice_feature_div .a-price .a-offscreen",
	"#corePriceDisplay_desktop_feature_div .a-price .a-offscreen",
	"#priceblock_ourprice",
	"#priceblock_dealprice",
	"#price_inside_buybox",
}

var (
	numberRegexp = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
	ratingRegexp = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*$`)
)

// pageDetails 상품 페이지에서 읽어낸 보강 정보입니다. 0 또는 빈 값은 찾지 못한 항목입니다.
type pageDetails struct {
	Price         int
	ReviewCount   int
	ReviewAverage float64
	Brand         string
}

// enrich 가격 또는 리뷰 정보가 빠진 후보를 상품 페이지로 보강합니다.
// 보강 실패는 후보 목록에 영향을 주지 않으며, 보강된 후보는 새 레코드로 교체됩니다.
func (c *Client) enrich(ctx context.Context, candidates []*product.Record) []*product.Record {
	if c.cfg.EnrichLimit < 0 {
		return candidates
	}

	enriched := 0
	for i, rec := range candidates {
		if enriched >= c.cfg.EnrichLimit {
			break
		}
		if rec.URL == "" || (rec.HasPrice() && rec.ReviewCount > 0) {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		enriched++

		doc, err := c.scraper.FetchHTML(ctx, rec.URL, nil)
		if err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"asin":  rec.ID,
				"error": err,
			}).Debug("후보 보강 실패: 상품 페이지를 가져올 수 없습니다")

			continue
		}

		candidates[i] = applyDetails(rec, extractPageDetails(doc))
	}

	return candidates
}

// applyDetails 원본 레코드에 없는 항목만 채운 복사본을 반환합니다.
func applyDetails(rec *product.Record, d pageDetails) *product.Record {
	copied := *rec

	if !copied.HasPrice() && d.Price > 0 {
		copied.Price = d.Price
	}
	if copied.ReviewCount == 0 && d.ReviewCount > 0 {
		copied.ReviewCount = d.ReviewCount
		if d.ReviewAverage >= 0 && d.ReviewAverage <= 5 {
			copied.ReviewAverage = d.ReviewAverage
		}
	}
	if copied.Brand == "" && d.Brand != "" {
		copied.Brand = d.Brand
	}

	return &copied
}

func extractPageDetails(doc *goquery.Document) pageDetails {
	var d pageDetails

	for _, sel := range priceSelectors {
		if p := parseYen(doc.Find(sel).First().Text()); p > 0 {
			d.Price = p
			break
		}
	}

	if title, ok := doc.Find("#acrPopover").Attr("title"); ok {
		// "5つ星のうち4.3"
		if m := ratingRegexp.FindStringSubmatch(strings.TrimSpace(title)); m != nil {
			if v, err := decimal.NewFromString(m[1]); err == nil {
				d.ReviewAverage = v.InexactFloat64()
			}
		}
	}

	// "1,234個の評価"
	if m := numberRegexp.FindString(doc.Find("#acrCustomerReviewText").First().Text()); m != "" {
		if v, err := decimal.NewFromString(strings.ReplaceAll(m, ",", "")); err == nil {
			d.ReviewCount = int(v.IntPart())
		}
	}

	d.Brand = cleanByline(doc.Find("#bylineInfo").First().Text())

	return d
}

// parseYen "￥3,100", "¥ 3,100円" 같은 표기를 엔화 정수로 변환합니다.
func parseYen(s string) int {
	m := numberRegexp.FindString(s)
	if m == "" {
		return 0
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(m, ",", ""))
	if err != nil || !d.IsPositive() {
		return 0
	}
	return int(d.Round(0).IntPart())
}

// cleanByline "ブランド: Sony", "Sonyのストアを表示" 같은 표기에서 브랜드 이름만 남깁니다.
func cleanByline(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"ブランド:", "ブランド：", "Brand:"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.TrimSuffix(s, "のストアを表示")
	s = strings.TrimPrefix(s, "Visit the ")
	s = strings.TrimSuffix(s, " Store")
	return strings.TrimSpace(s)
}
