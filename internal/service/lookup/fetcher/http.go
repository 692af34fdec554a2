package fetcher

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout             = 30 * time.Second
	defaultTLSHandshakeTimeout = 10 * time.Second
	defaultIdleConnTimeout     = 90 * time.Second
	defaultMaxIdleConns        = 100
	defaultMaxRedirects        = 10

	// defaultUserAgent 요청 헤더에 User-Agent가 없을 때 사용하는 값
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// HTTPFetcher 체인의 가장 안쪽에서 실제 네트워크 요청을 수행하는 구현체입니다.
type HTTPFetcher struct {
	client *http.Client

	defaultUA string
	initErr   error
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*HTTPFetcher)(nil)

// Option HTTPFetcher의 설정을 변경하기 위한 함수 타입입니다.
type Option func(*HTTPFetcher)

// NewHTTPFetcher 새로운 HTTPFetcher 인스턴스를 생성합니다.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSHandshakeTimeout = defaultTLSHandshakeTimeout
	transport.IdleConnTimeout = defaultIdleConnTimeout
	transport.MaxIdleConns = defaultMaxIdleConns
	transport.MaxIdleConnsPerHost = defaultMaxIdleConns

	h := &HTTPFetcher{
		client: &http.Client{
			Timeout:       defaultTimeout,
			Transport:     transport,
			CheckRedirect: newCheckRedirectPolicy(defaultMaxRedirects),
		},
		defaultUA: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Do HTTP 요청을 실행합니다. 요청에 User-Agent가 없으면 기본값을 설정합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if h.initErr != nil {
		return nil, h.initErr
	}

	if req.Header.Get("User-Agent") == "" && h.defaultUA != "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", h.defaultUA)
	}

	return h.client.Do(req)
}

// WithTimeout HTTP 요청 전체(연결부터 본문 수신까지)에 대한 타임아웃을 설정합니다.
func WithTimeout(timeout time.Duration) Option {
	return func(h *HTTPFetcher) {
		h.client.Timeout = timeout
	}
}

// WithTLSHandshakeTimeout TLS 핸드셰이크 타임아웃을 설정합니다.
func WithTLSHandshakeTimeout(timeout time.Duration) Option {
	return func(h *HTTPFetcher) {
		if t, ok := h.client.Transport.(*http.Transport); ok {
			t.TLSHandshakeTimeout = timeout
		}
	}
}

// WithMaxIdleConns 전체 유휴 연결의 최대 개수를 설정합니다. 호스트당 제한도 같은 값으로 설정됩니다.
func WithMaxIdleConns(n int) Option {
	return func(h *HTTPFetcher) {
		if t, ok := h.client.Transport.(*http.Transport); ok && n >= 0 {
			t.MaxIdleConns = n
			t.MaxIdleConnsPerHost = n
		}
	}
}

// WithProxy 모든 요청을 지정된 프록시 서버로 전송합니다. 빈 문자열이면 환경 변수 설정을 따릅니다.
func WithProxy(proxyURL string) Option {
	return func(h *HTTPFetcher) {
		if proxyURL == "" {
			return
		}

		u, err := url.Parse(proxyURL)
		if err != nil || u.Host == "" {
			if err == nil {
				err = errors.New("호스트가 없습니다")
			}
			h.initErr = newErrInvalidProxyURL(proxyURL, err)
			return
		}

		if t, ok := h.client.Transport.(*http.Transport); ok {
			t.Proxy = http.ProxyURL(u)
		}
	}
}

// WithUserAgent 요청 헤더에 User-Agent가 없을 때 사용할 기본값을 설정합니다.
func WithUserAgent(ua string) Option {
	return func(h *HTTPFetcher) {
		h.defaultUA = ua
	}
}

// WithMaxRedirects 최대 리다이렉트 횟수를 설정합니다. 0이면 리다이렉트를 따라가지 않습니다.
func WithMaxRedirects(max int) Option {
	return func(h *HTTPFetcher) {
		if max < 0 {
			max = defaultMaxRedirects
		}
		h.client.CheckRedirect = newCheckRedirectPolicy(max)
	}
}

// WithTransport HTTP 클라이언트의 Transport를 직접 설정합니다. 테스트에서 주로 사용합니다.
func WithTransport(transport http.RoundTripper) Option {
	return func(h *HTTPFetcher) {
		h.client.Transport = transport
	}
}

// newCheckRedirectPolicy 최대 횟수를 제한하고 이전 URL을 Referer로 설정하는 리다이렉트 정책을 생성합니다.
func newCheckRedirectPolicy(max int) func(req *http.Request, via []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if max == 0 {
			return http.ErrUseLastResponse
		}
		if len(via) >= max {
			return fmt.Errorf("stopped after %d redirects", max)
		}
		if len(via) > 0 && req.Header.Get("Referer") == "" {
			req.Header.Set("Referer", redactURL(via[len(via)-1].URL))
		}
		return nil
	}
}
