package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/darkkaiser/hoplink/internal/service/lookup/cache"
	applog "github.com/darkkaiser/hoplink/pkg/log"
)

// readCache 캐시된 결과를 반환합니다. 없거나 읽을 수 없으면 nil입니다.
func (s *Service) readCache(ctx context.Context, key string) *Result {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			applog.WithComponentAndFields(component, applog.Fields{
				"namespace": cache.NamespaceOf(key),
				"error":     err,
			}).Warn("캐시 조회 실패: 캐시 없이 조회를 진행합니다")
		}
		return nil
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"namespace": cache.NamespaceOf(key),
			"error":     err,
		}).Warn("캐시된 결과를 해석할 수 없어 삭제합니다")

		_ = s.store.Delete(ctx, key)
		return nil
	}

	res.Cached = true
	return &res
}

// writeCache 결과를 캐시에 저장합니다. 한쪽이라도 실패했거나 설정되지 않았다면 저장하지 않습니다.
// 같은 키를 동시에 계산한 요청은 서로 덮어쓰며, 마지막 쓰기가 남습니다.
func (s *Service) writeCache(ctx context.Context, key string, res *Result) {
	if !res.RakutenStatus.cacheable() || !res.AmazonStatus.cacheable() {
		return
	}
	if ctx.Err() != nil {
		return
	}

	ttl := s.ttlFor(res.Status)
	if ttl <= 0 {
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("조회 결과를 직렬화하지 못했습니다")
		return
	}

	if err := s.store.Set(ctx, key, data, ttl); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"namespace": cache.NamespaceOf(key),
			"error":     err,
		}).Warn("캐시 저장 실패")
	}
}

func (s *Service) ttlFor(status Status) time.Duration {
	switch status {
	case StatusMatched, StatusInvalidMatch:
		return s.cfg.TTL
	default:
		return s.cfg.NegativeTTL
	}
}

// PurgeCache 캐시된 모든 결과를 삭제합니다.
func (s *Service) PurgeCache(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}

	applog.WithComponent(component).Info("캐시 전체 삭제 완료")
	return nil
}

// PurgeExpired 만료된 캐시 항목을 정리하고 삭제한 개수를 반환합니다.
func (s *Service) PurgeExpired(ctx context.Context) (int, error) {
	n, err := s.store.PurgeExpired(ctx)
	if err != nil {
		return n, err
	}

	if n > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"purged": n,
		}).Info("만료된 캐시 항목 정리 완료")
	}
	return n, nil
}
