package fetcher

import (
	"time"
)

// Config Fetcher 체인을 구성하기 위한 설정입니다.
type Config struct {
	// Timeout 요청 전체 타임아웃 (0이면 기본값 30초)
	Timeout time.Duration

	// ProxyURL 프록시 서버 주소 (빈 문자열이면 환경 변수 설정을 따름)
	ProxyURL string

	// MaxRedirects 최대 리다이렉트 횟수 (nil이면 기본값 10회, 0이면 리다이렉트 안 함)
	MaxRedirects *int

	// MaxRetries 최대 재시도 횟수 (0~10)
	MaxRetries int

	// MinRetryDelay, MaxRetryDelay 지수 백오프 대기 시간의 범위
	MinRetryDelay time.Duration
	MaxRetryDelay time.Duration

	// AllowedStatusCodes 성공으로 볼 상태 코드 (비어 있으면 200 OK만 허용)
	AllowedStatusCodes []int

	// DisableStatusCodeValidation true이면 모든 상태 코드를 그대로 전달합니다.
	DisableStatusCodeValidation bool

	// MaxBytes 응답 본문 최대 크기 (0 이하는 기본값 10MB, NoLimit은 제한 없음)
	MaxBytes int64

	// EnableUserAgentRandomization true이면 요청마다 User-Agent를 무작위로 선택합니다.
	EnableUserAgentRandomization bool
	UserAgents                   []string

	// DisableLogging true이면 요청 로깅을 생략합니다.
	DisableLogging bool
}

// New 재시도 횟수와 대기 시간만으로 기본 Fetcher 체인을 생성합니다.
func New(maxRetries int, minRetryDelay, maxRetryDelay time.Duration, opts ...Option) Fetcher {
	return NewFromConfig(Config{
		MaxRetries:    maxRetries,
		MinRetryDelay: minRetryDelay,
		MaxRetryDelay: maxRetryDelay,
	}, opts...)
}

// NewFromConfig 설정에 따라 Fetcher 체인을 조립합니다. (바깥쪽 -> 안쪽)
//
//  1. LoggingFetcher: 재시도를 포함한 전체 요청을 기록
//  2. UserAgentFetcher: 재시도 간에도 같은 User-Agent를 유지
//  3. RetryFetcher: 일시적 실패 시 재시도
//  4. StatusCodeFetcher: 시도마다 상태 코드 검증
//  5. MaxBytesFetcher: 응답 본문 크기 제한
//  6. HTTPFetcher: 실제 네트워크 요청
func NewFromConfig(cfg Config, opts ...Option) Fetcher {
	var httpOpts []Option
	if cfg.Timeout > 0 {
		httpOpts = append(httpOpts, WithTimeout(cfg.Timeout))
	}
	if cfg.ProxyURL != "" {
		httpOpts = append(httpOpts, WithProxy(cfg.ProxyURL))
	}
	if cfg.MaxRedirects != nil {
		httpOpts = append(httpOpts, WithMaxRedirects(*cfg.MaxRedirects))
	}
	httpOpts = append(httpOpts, opts...)

	var f Fetcher = NewHTTPFetcher(httpOpts...)

	f = NewMaxBytesFetcher(f, cfg.MaxBytes)

	if !cfg.DisableStatusCodeValidation {
		f = NewStatusCodeFetcher(f, cfg.AllowedStatusCodes...)
	}

	f = NewRetryFetcher(f, cfg.MaxRetries, cfg.MinRetryDelay, cfg.MaxRetryDelay)

	if cfg.EnableUserAgentRandomization {
		f = NewUserAgentFetcher(f, cfg.UserAgents)
	}

	if !cfg.DisableLogging {
		f = NewLoggingFetcher(f)
	}

	return f
}
