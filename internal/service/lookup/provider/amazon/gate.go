package amazon

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// gate PA-API 호출 사이의 최소 간격을 보장합니다. 버스트는 허용하지 않습니다.
// 프로세스 내부에서만 유효하며 여러 인스턴스 사이의 호출 간격은 보장하지 않습니다.
type gate struct {
	limiter *rate.Limiter
}

func newGate(minInterval time.Duration) *gate {
	if minInterval <= 0 {
		return &gate{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &gate{limiter: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Wait 다음 호출이 허용될 때까지 대기합니다. ctx가 먼저 끝나면 에러를 반환합니다.
func (g *gate) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}
