// Package amazon Amazon Product Advertising API 5.0으로 Rakuten 상품의 매칭 후보를 찾습니다.
//
// 후보 검색은 JAN 코드 검색을 먼저 시도하고, 결과가 없으면 정리된 상품명 키워드로
// 다시 검색합니다. 모든 PA-API 호출은 최소 호출 간격 게이트를 통과해야 하며,
// 가격이나 리뷰 정보가 빠진 후보는 상품 페이지에서 보강합니다(실패해도 후보는 유지).
package amazon

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup/fetcher"
	"github.com/darkkaiser/hoplink/internal/service/lookup/matcher"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	"github.com/darkkaiser/hoplink/internal/service/lookup/scraper"
	applog "github.com/darkkaiser/hoplink/pkg/log"
)

const component = "lookup.amazon"

const (
	// DefaultEndpoint 일본 마켓플레이스 PA-API 호스트
	DefaultEndpoint    = "https://webservices.amazon.co.jp"
	DefaultRegion      = "us-west-2"
	DefaultMarketplace = "www.amazon.co.jp"

	// DefaultMinInterval PA-API 초기 할당량(초당 1회)에 맞춘 최소 호출 간격
	DefaultMinInterval = time.Second

	defaultEnrichLimit = 3
)

// Config PA-API 설정입니다.
type Config struct {
	AccessKey  string
	SecretKey  string
	PartnerTag string

	// Profile 액세스 키가 비어 있을 때 자격증명을 읽어올 AWS 공유 설정 프로필
	Profile string

	Endpoint    string
	Region      string
	Marketplace string

	// MinInterval PA-API 호출 사이의 최소 간격 (0이면 DefaultMinInterval, 음수이면 제한 없음)
	MinInterval time.Duration

	// DefaultSearch FindCandidates의 키워드 검색에 사용할 기본 옵션
	DefaultSearch SearchOptions

	// EnrichLimit 상품 페이지로 보강할 최대 후보 수 (0이면 기본값 3, 음수이면 보강하지 않음)
	EnrichLimit int
}

// Client PA-API 클라이언트이며 matcher.CandidateFinder를 구현합니다.
type Client struct {
	cfg      Config
	endpoint *url.URL

	creds  aws.CredentialsProvider
	signer *v4.Signer

	fetcher fetcher.Fetcher
	scraper scraper.Scraper
	gate    *gate

	now func() time.Time
}

var _ matcher.CandidateFinder = (*Client)(nil)

// New 클라이언트를 생성합니다. 자격증명이 없어도 생성은 되며, 조회 시 ErrNotConfigured를 반환합니다.
// 액세스 키가 비어 있고 Profile이 지정되어 있으면 AWS 공유 설정에서 자격증명을 읽습니다.
func New(ctx context.Context, cfg Config, f fetcher.Fetcher, s scraper.Scraper) (*Client, error) {
	if f == nil || s == nil {
		panic("amazon: Fetcher와 Scraper는 필수입니다")
	}

	cfg = withDefaults(cfg)

	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil || endpoint.Host == "" {
		return nil, apperrors.Newf(apperrors.InvalidInput, "PA-API 엔드포인트 형식이 올바르지 않습니다: %s", cfg.Endpoint)
	}

	creds, err := resolveCredentials(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg:      cfg,
		endpoint: endpoint,
		creds:    creds,
		signer:   v4.NewSigner(),
		fetcher:  f,
		scraper:  s,
		gate:     newGate(cfg.MinInterval),
		now:      time.Now,
	}, nil
}

func withDefaults(cfg Config) Config {
	cfg.AccessKey = strings.TrimSpace(cfg.AccessKey)
	cfg.SecretKey = strings.TrimSpace(cfg.SecretKey)
	cfg.PartnerTag = strings.TrimSpace(cfg.PartnerTag)

	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.Marketplace == "" {
		cfg.Marketplace = DefaultMarketplace
	}
	if cfg.MinInterval == 0 {
		cfg.MinInterval = DefaultMinInterval
	}
	if cfg.EnrichLimit == 0 {
		cfg.EnrichLimit = defaultEnrichLimit
	}
	cfg.DefaultSearch = cfg.DefaultSearch.normalized()

	return cfg
}

func resolveCredentials(ctx context.Context, cfg Config) (aws.CredentialsProvider, error) {
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		return aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")), nil
	}

	if cfg.Profile != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithSharedConfigProfile(cfg.Profile),
			awsconfig.WithRegion(cfg.Region),
		)
		if err != nil {
			return nil, newErrCredentialsLoadFailed(err)
		}
		return awsCfg.Credentials, nil
	}

	return nil, nil
}

// Configured 자격증명과 파트너 태그가 모두 있는지 여부를 반환합니다.
func (c *Client) Configured() bool {
	return c.creds != nil && c.cfg.PartnerTag != ""
}

// DefaultSearchOptions 설정 파일의 기본 키워드 검색 조건을 반환합니다.
func (c *Client) DefaultSearchOptions() SearchOptions {
	return c.cfg.DefaultSearch
}

// FindCandidates 원본 상품의 JAN 코드로 먼저 검색하고, 결과가 없으면 상품명 키워드로 검색합니다.
func (c *Client) FindCandidates(ctx context.Context, source *product.Record) ([]*product.Record, error) {
	return c.FindCandidatesWithOptions(ctx, source, c.cfg.DefaultSearch)
}

// FindCandidatesWithOptions 키워드 검색 조건을 지정하여 후보를 찾습니다.
//
// JAN 검색이 실패해도 키워드 검색을 시도하며, 두 검색이 모두 실패한 경우에만 에러를 반환합니다.
// 결과는 ASIN 기준으로 중복이 제거됩니다.
func (c *Client) FindCandidatesWithOptions(ctx context.Context, source *product.Record, opts SearchOptions) ([]*product.Record, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if source == nil {
		return nil, nil
	}

	var (
		candidates []*product.Record
		janErr     error
	)

	if source.HasJAN() {
		candidates, janErr = c.SearchItems(ctx, source.JANCode, SearchOptions{}.normalized())
		if janErr != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"source": source.ID,
				"jan":    source.JANCode,
				"error":  janErr,
			}).Warn("JAN 검색 실패: 키워드 검색으로 대체합니다")
		}
	}

	if len(candidates) == 0 {
		keyword := matcher.CleanKeyword(source.Name)
		if keyword == "" {
			return nil, janErr
		}

		var err error
		candidates, err = c.SearchItems(ctx, keyword, opts)
		if err != nil {
			return nil, err
		}
	}

	candidates = dedupeByASIN(candidates)
	candidates = c.refresh(ctx, candidates)
	candidates = c.enrich(ctx, candidates)

	applog.WithComponentAndFields(component, applog.Fields{
		"source":     source.ID,
		"candidates": len(candidates),
	}).Debug("Amazon 후보 검색 완료")

	return candidates, nil
}

func dedupeByASIN(records []*product.Record) []*product.Record {
	seen := make(map[string]struct{}, len(records))
	out := records[:0:0]
	for _, r := range records {
		if r == nil {
			continue
		}
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
