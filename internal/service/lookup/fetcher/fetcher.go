// Package fetcher 외부 상점 API와 상품 페이지 요청에 사용하는 HTTP 클라이언트 체인을 제공합니다.
//
// 각 기능(재시도, 상태 코드 검증, 본문 크기 제한, User-Agent 주입, 로깅)은 Fetcher를 감싸는
// 미들웨어로 구현되어 있으며 NewFromConfig가 이를 정해진 순서로 조립합니다.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"sync"
)

// component 로깅용 컴포넌트 이름
const component = "lookup.fetcher"

// Fetcher HTTP 요청을 수행하는 인터페이스입니다.
//
// 반환된 응답 객체의 Body는 호출자가 닫아야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get 지정된 URL로 HTTP GET 요청을 전송합니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	return resp, nil
}

type retryableKey struct{}

// WithRetryable 비멱등 메서드(POST)라도 재시도해도 안전한 요청임을 표시합니다.
// 검색 API처럼 POST로 조회만 하는 요청에 사용합니다.
func WithRetryable(ctx context.Context) context.Context {
	return context.WithValue(ctx, retryableKey{}, true)
}

func isMarkedRetryable(ctx context.Context) bool {
	v, _ := ctx.Value(retryableKey{}).(bool)
	return v
}

// maxDrainBytes 커넥션 재사용을 위해 응답 Body를 비울 때 읽을 최대 바이트 수
const maxDrainBytes = 64 * 1024

var drainBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 32*1024)
		return &b
	},
}

// drainAndCloseBody 커넥션 재사용을 위해 응답 Body를 일정량 읽어서 버린 뒤 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	bufPtr := drainBufPool.Get().(*[]byte)
	defer drainBufPool.Put(bufPtr)

	_, _ = io.CopyBuffer(io.Discard, io.LimitReader(body, maxDrainBytes), *bufPtr)
}
