package lookup

import (
	"context"

	"github.com/darkkaiser/hoplink/internal/config"
	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup/cache"
	"github.com/darkkaiser/hoplink/internal/service/lookup/fetcher"
	"github.com/darkkaiser/hoplink/internal/service/lookup/matcher"
	"github.com/darkkaiser/hoplink/internal/service/lookup/provider/amazon"
	"github.com/darkkaiser/hoplink/internal/service/lookup/provider/rakuten"
	"github.com/darkkaiser/hoplink/internal/service/lookup/scraper"
)

// NewFromConfig 애플리케이션 설정으로 Fetcher 체인, Rakuten/Amazon 클라이언트, 캐시 저장소를 조립하여 서비스를 생성합니다.
//
// 자격증명이 없어도 서비스는 생성되며, 해당 쪽의 결과가 not_configured로 보고됩니다.
func NewFromConfig(ctx context.Context, appConfig *config.AppConfig) (*Service, error) {
	if appConfig == nil {
		return nil, apperrors.New(apperrors.Internal, "애플리케이션 설정이 없습니다")
	}

	f := fetcher.NewFromConfig(fetcher.Config{
		Timeout:                      appConfig.HTTPRetry.Timeout,
		ProxyURL:                     appConfig.HTTPRetry.ProxyURL,
		MaxRetries:                   appConfig.HTTPRetry.MaxRetries,
		MinRetryDelay:                appConfig.HTTPRetry.RetryDelay,
		MaxRetryDelay:                appConfig.HTTPRetry.MaxRetryDelay,
		MaxBytes:                     appConfig.HTTPRetry.MaxBytes,
		EnableUserAgentRandomization: true,
	})
	s := scraper.New(f)

	rakutenClient, err := rakuten.New(rakuten.Config{
		ApplicationID:           appConfig.Rakuten.ApplicationID,
		AffiliateID:             appConfig.Rakuten.AffiliateID,
		Endpoint:                appConfig.Rakuten.Endpoint,
		Hits:                    appConfig.Rakuten.Hits,
		DisablePageJANDiscovery: !appConfig.Rakuten.PageJANDiscovery,
	}, s)
	if err != nil {
		return nil, err
	}

	amazonClient, err := amazon.New(ctx, amazon.Config{
		AccessKey:   appConfig.Amazon.AccessKey,
		SecretKey:   appConfig.Amazon.SecretKey,
		PartnerTag:  appConfig.Amazon.PartnerTag,
		Profile:     appConfig.Amazon.Profile,
		Endpoint:    appConfig.Amazon.Endpoint,
		Region:      appConfig.Amazon.Region,
		Marketplace: appConfig.Amazon.Marketplace,
		MinInterval: appConfig.Amazon.MinInterval,
		DefaultSearch: amazon.SearchOptions{
			SearchIndex: appConfig.Amazon.DefaultSearch.SearchIndex,
			ItemCount:   appConfig.Amazon.DefaultSearch.ItemCount,
		},
		EnrichLimit: appConfig.Amazon.EnrichLimit,
	}, f, s)
	if err != nil {
		return nil, err
	}

	mode, err := matcher.ParseMode(appConfig.Matcher.DefaultMode)
	if err != nil {
		return nil, err
	}

	store, err := cache.New(ctx, cache.Config{
		Backend: cache.Backend(appConfig.Cache.Backend),
		Dir:     appConfig.Cache.Dir,
		DSN:     appConfig.Cache.DSN,
		Table:   appConfig.Cache.Table,
	})
	if err != nil {
		return nil, err
	}

	return NewService(Config{
		TTL:          appConfig.Cache.TTL,
		NegativeTTL:  appConfig.Cache.NegativeTTL,
		MaxBatchSize: appConfig.Matcher.MaxBatchSize,
		DefaultMode:  mode,
	}, rakutenClient, amazonClient, store), nil
}
