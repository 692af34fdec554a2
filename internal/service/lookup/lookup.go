// Package lookup Rakuten 상품 해석, Amazon 후보 검색, 상품 매칭을 하나의 파이프라인으로 묶습니다.
//
// 요청 하나는 Resolver → Candidate Finder → Matcher 순서로 동기 처리되며,
// 파이프라인 앞뒤로 캐시를 읽고 씁니다. 외부 API 실패는 해당 쪽의 상태(lookup_failed,
// not_configured)로만 기록되고 요청 전체를 실패시키지 않습니다.
package lookup

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/hoplink/internal/service/lookup/cache"
	"github.com/darkkaiser/hoplink/internal/service/lookup/matcher"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	"github.com/darkkaiser/hoplink/internal/service/lookup/provider/amazon"
	applog "github.com/darkkaiser/hoplink/pkg/log"
)

const component = "lookup.service"

const (
	DefaultTTL          = 24 * time.Hour
	DefaultNegativeTTL  = time.Hour
	DefaultMaxBatchSize = 20
)

// RakutenResolver Rakuten 쪽 원본 상품을 찾습니다.
type RakutenResolver interface {
	Configured() bool
	Resolve(ctx context.Context, input string) (*product.Record, error)
	SearchByJAN(ctx context.Context, jan string) ([]*product.Record, error)
	SearchByKeyword(ctx context.Context, keyword string) ([]*product.Record, error)
}

// AmazonFinder 원본 상품에 대한 Amazon 후보를 찾습니다.
type AmazonFinder interface {
	matcher.CandidateFinder
	Configured() bool
	DefaultSearchOptions() amazon.SearchOptions
	FindCandidatesWithOptions(ctx context.Context, source *product.Record, opts amazon.SearchOptions) ([]*product.Record, error)
}

// Config 파이프라인 동작 설정입니다.
type Config struct {
	// TTL 매칭 결과를 캐시에 보관하는 시간 (0이면 DefaultTTL)
	TTL time.Duration

	// NegativeTTL 매칭 없음/상품 없음 결과의 보관 시간 (0이면 DefaultNegativeTTL, 음수이면 캐시하지 않음)
	NegativeTTL time.Duration

	// MaxBatchSize Batch, BatchMatch 1회 호출에 허용되는 최대 항목 수
	MaxBatchSize int

	// DefaultMode 요청에 모드가 없을 때 사용할 매칭 모드
	DefaultMode matcher.Mode
}

func (c Config) withDefaults() Config {
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.NegativeTTL == 0 {
		c.NegativeTTL = DefaultNegativeTTL
	}
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = DefaultMaxBatchSize
	}
	if !c.DefaultMode.IsValid() {
		c.DefaultMode = matcher.DefaultMode
	}
	return c
}

// Service 매칭 파이프라인 서비스입니다.
type Service struct {
	cfg Config

	rakuten RakutenResolver
	amazon  AmazonFinder
	store   cache.Store

	now func() time.Time

	running   bool
	runningMu sync.Mutex
}

// NewService 파이프라인 서비스를 생성합니다. 협력 객체는 모두 필수입니다.
func NewService(cfg Config, r RakutenResolver, a AmazonFinder, store cache.Store) *Service {
	if r == nil {
		panic("RakutenResolver는 필수입니다")
	}
	if a == nil {
		panic("AmazonFinder는 필수입니다")
	}
	if store == nil {
		panic("cache.Store는 필수입니다")
	}

	return &Service{
		cfg:     cfg.withDefaults(),
		rakuten: r,
		amazon:  a,
		store:   store,
		now:     time.Now,
	}
}

// MaxBatchSize Batch, BatchMatch에 허용되는 최대 항목 수를 반환합니다.
func (s *Service) MaxBatchSize() int {
	return s.cfg.MaxBatchSize
}

// Start 서비스를 시작합니다. serviceStopCtx가 취소되면 캐시 저장소를 닫습니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Lookup 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"rakuten_configured": s.rakuten.Configured(),
		"amazon_configured":  s.amazon.Configured(),
		"default_mode":       s.cfg.DefaultMode,
	}).Info("서비스 시작 완료: Lookup 서비스가 요청을 받을 준비가 되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.runningMu.Lock()
		defer s.runningMu.Unlock()

		if err := s.store.Close(); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Error("캐시 저장소를 닫는 중 오류가 발생했습니다")
		}
		s.running = false

		applog.WithComponent(component).Info("Lookup 서비스 종료 완료")
	}()

	return nil
}
