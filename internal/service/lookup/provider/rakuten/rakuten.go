// Package rakuten Rakuten 상품 URL을 해석하고 Ichiba Item Search API로 상품 정보를 조회합니다.
//
// 단축 URL(r10.to)은 리다이렉트를 따라가 상품 URL로 확장하며, JAN 코드는 상품명과
// 설명에서 찾고 없으면 상품 페이지 본문에서 한 번 더 찾습니다.
package rakuten

import (
	"context"
	"net/url"
	"slices"
	"strings"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	"github.com/darkkaiser/hoplink/internal/service/lookup/scraper"
	applog "github.com/darkkaiser/hoplink/pkg/log"
)

const component = "lookup.rakuten"

const (
	// DefaultEndpoint Ichiba Item Search API (2022-06-01 버전)
	DefaultEndpoint = "https://app.rakuten.co.jp/services/api/IchibaItem/Search/20220601"

	defaultHits = 10
	maxHits     = 30
)

// Config Rakuten 조회 설정입니다.
type Config struct {
	ApplicationID string
	AffiliateID   string

	// Endpoint 비어 있으면 DefaultEndpoint를 사용합니다.
	Endpoint string

	// Hits 키워드/JAN 검색 시 요청할 결과 수 (1~30)
	Hits int

	// DisablePageJANDiscovery API 응답에 JAN 코드가 없을 때 상품 페이지를 추가로 조회하지 않습니다.
	DisablePageJANDiscovery bool
}

// Client Rakuten 상품 조회 클라이언트입니다.
type Client struct {
	cfg     Config
	baseURL *url.URL

	scraper scraper.Scraper
}

// New 클라이언트를 생성합니다. 애플리케이션 ID가 없어도 생성은 되며, 조회 시 ErrNotConfigured를 반환합니다.
func New(cfg Config, s scraper.Scraper) (*Client, error) {
	if s == nil {
		panic("rakuten: Scraper는 필수입니다")
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Hits <= 0 {
		cfg.Hits = defaultHits
	}
	if cfg.Hits > maxHits {
		cfg.Hits = maxHits
	}
	cfg.ApplicationID = strings.TrimSpace(cfg.ApplicationID)
	cfg.AffiliateID = strings.TrimSpace(cfg.AffiliateID)

	baseURL, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, newErrInvalidEndpoint(cfg.Endpoint, err)
	}

	return &Client{cfg: cfg, baseURL: baseURL, scraper: s}, nil
}

// Configured API 자격증명이 설정되어 있는지 여부를 반환합니다.
func (c *Client) Configured() bool {
	return c.cfg.ApplicationID != ""
}

// Resolve Rakuten 상품 URL 또는 상품 코드를 상품 레코드로 변환합니다.
// 상품이 존재하지 않으면 (nil, nil)을 반환합니다.
func (c *Client) Resolve(ctx context.Context, input string) (*product.Record, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	ref, err := ParseInput(input)
	if err != nil {
		return nil, err
	}

	if ref.IsShortLink() {
		if ref, err = c.expandShortLink(ctx, ref.ShortURL); err != nil {
			return nil, err
		}
	}

	return c.GetItem(ctx, ref.ItemCode())
}

func (c *Client) expandShortLink(ctx context.Context, shortURL string) (ItemRef, error) {
	finalURL, err := c.scraper.ResolveURL(ctx, shortURL)
	if err != nil {
		return ItemRef{}, newErrShortLinkExpandFailed(shortURL, err)
	}

	ref, err := ParseInput(finalURL)
	if err != nil || ref.IsShortLink() {
		return ItemRef{}, newErrShortLinkNotItem(shortURL, finalURL)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"short_url": shortURL,
		"item_code": ref.ItemCode(),
	}).Debug("단축 URL 확장 완료")

	return ref, nil
}

// GetItem 상품 코드(shop:item)로 상품 하나를 조회합니다. 존재하지 않으면 (nil, nil)을 반환합니다.
func (c *Client) GetItem(ctx context.Context, itemCode string) (*product.Record, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	records, err := c.search(ctx, searchParams{itemCode: itemCode, hits: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	rec := records[0]
	if !rec.HasJAN() && !c.cfg.DisablePageJANDiscovery && rec.URL != "" {
		if jan := c.discoverJANFromPage(ctx, rec.URL); jan != "" {
			copied := *rec
			copied.JANCode = jan
			rec = &copied

			applog.WithComponentAndFields(component, applog.Fields{
				"item_code": itemCode,
				"jan_code":  jan,
			}).Debug("상품 페이지에서 JAN 코드를 찾았습니다")
		}
	}

	return rec, nil
}

// SearchByJAN JAN 코드를 키워드로 검색합니다.
func (c *Client) SearchByJAN(ctx context.Context, jan string) ([]*product.Record, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	normalized, ok := product.NormalizeJAN(jan)
	if !ok {
		return nil, apperrors.Newf(apperrors.InvalidInput, "JAN 코드 형식이 올바르지 않습니다: %s", jan)
	}

	records, err := c.search(ctx, searchParams{keyword: normalized, hits: c.cfg.Hits, jan: normalized})
	if err != nil {
		return nil, err
	}

	// 키워드 검색은 JAN과 무관한 상품도 돌려주므로 같은 JAN을 가진 상품을 앞에 둔다.
	slices.SortStableFunc(records, func(a, b *product.Record) int {
		return cmpBool(b.JANCode == normalized, a.JANCode == normalized)
	})

	return records, nil
}

// SearchByKeyword 키워드로 상품을 검색합니다.
func (c *Client) SearchByKeyword(ctx context.Context, keyword string) ([]*product.Record, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "검색 키워드가 비어 있습니다")
	}

	return c.search(ctx, searchParams{keyword: keyword, hits: c.cfg.Hits})
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}
