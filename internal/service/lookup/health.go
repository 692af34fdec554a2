package lookup

import (
	"context"
	"errors"

	"github.com/darkkaiser/hoplink/internal/service/lookup/cache"
	"github.com/darkkaiser/hoplink/internal/service/lookup/provider/amazon"
	"github.com/darkkaiser/hoplink/internal/service/lookup/provider/rakuten"
)

// 헬스체크 대상 의존성 이름입니다.
const (
	DependencyRakuten = "rakuten"
	DependencyAmazon  = "amazon"
	DependencyCache   = "cache"
)

// healthProbeKey 캐시 저장소 응답 여부만 확인하기 위한 키입니다. 값이 저장되지 않으므로 항상 miss입니다.
const healthProbeKey = "health:probe"

// Health 의존성별 상태를 반환합니다. 값이 nil이면 정상입니다.
//
// 자격증명이 없는 외부 API는 각 클라이언트의 ErrNotConfigured를 반환하며,
// 캐시 저장소는 조회가 miss 외의 에러를 반환할 때만 비정상으로 봅니다.
func (s *Service) Health(ctx context.Context) map[string]error {
	deps := map[string]error{
		DependencyRakuten: nil,
		DependencyAmazon:  nil,
		DependencyCache:   nil,
	}

	if !s.rakuten.Configured() {
		deps[DependencyRakuten] = rakuten.ErrNotConfigured
	}
	if !s.amazon.Configured() {
		deps[DependencyAmazon] = amazon.ErrNotConfigured
	}
	if _, err := s.store.Get(ctx, healthProbeKey); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		deps[DependencyCache] = err
	}

	return deps
}
