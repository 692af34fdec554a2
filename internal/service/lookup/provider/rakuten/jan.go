package rakuten

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"golang.org/x/text/width"
)

// JAN 코드 탐색 패턴 (우선순위 순)
var janPatterns = []*regexp.Regexp{
	// 명시적 라벨: "JANコード:4901234567894", "JAN code 49012345", "JAN：49012345"
	// "Jan 20240115" 같은 날짜 표기와 구분하기 위해 "コード/code" 또는 콜론이 있어야 한다.
	regexp.MustCompile(`(?i)JAN\s*(?:(?:コード|code)\s*[:：]?|[:：])\s*(\d{13}|\d{8})(?:\D|$)`),

	// 49/45로 시작하는 13자리 (일본 GS1 접두어)
	regexp.MustCompile(`(?:^|\D)((?:49|45)\d{11})(?:\D|$)`),

	// 49/45로 시작하는 8자리 단축형
	regexp.MustCompile(`(?:^|\D)((?:49|45)\d{6})(?:\D|$)`),
}

// DiscoverJAN 상품명과 설명 등의 텍스트에서 JAN 코드를 찾습니다. 찾지 못하면 빈 문자열을 반환합니다.
// 전각 숫자와 전각 콜론은 반각으로 변환한 뒤 탐색합니다.
func DiscoverJAN(texts ...string) string {
	text := width.Fold.String(strings.Join(texts, "\n"))

	for _, re := range janPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if jan, ok := product.NormalizeJAN(m[1]); ok {
				return jan
			}
		}
	}

	return ""
}

// containsCode 텍스트에 code가 앞뒤로 다른 숫자 없이 그대로 들어 있는지 확인합니다.
func containsCode(code string, texts ...string) bool {
	text := width.Fold.String(strings.Join(texts, "\n"))

	for i := 0; ; {
		idx := strings.Index(text[i:], code)
		if idx < 0 {
			return false
		}
		start, end := i+idx, i+idx+len(code)
		if !isDigitAt(text, start-1) && !isDigitAt(text, end) {
			return true
		}
		i = start + 1
	}
}

func isDigitAt(s string, i int) bool {
	return i >= 0 && i < len(s) && s[i] >= '0' && s[i] <= '9'
}

// discoverJANFromPage 상품 페이지를 가져와 구조화 데이터와 본문 텍스트에서 JAN 코드를 찾습니다.
// 실패는 조회 결과에 영향을 주지 않으므로 로그만 남기고 빈 문자열을 반환합니다.
func (c *Client) discoverJANFromPage(ctx context.Context, itemURL string) string {
	doc, err := c.scraper.FetchHTML(ctx, itemURL, nil)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"url":   itemURL,
			"error": err,
		}).Debug("상품 페이지 JAN 탐색 실패: 페이지를 가져올 수 없습니다")

		return ""
	}

	return discoverJANInDocument(doc)
}

func discoverJANInDocument(doc *goquery.Document) string {
	var structured []string
	doc.Find(`[itemprop="gtin13"], [itemprop="gtin8"], [itemprop="gtin"]`).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("content"); ok {
			structured = append(structured, v)
		}
		structured = append(structured, s.Text())
	})
	for _, v := range structured {
		if jan, ok := product.NormalizeJAN(v); ok {
			return jan
		}
	}

	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()

	return DiscoverJAN(body.Text())
}
