package constants

import "time"

// 서버 보안 및 리소스 보호 관련 기본값입니다.
const (
	// DefaultMaxBodySize 요청 본문의 최대 크기 (일괄 요청을 고려하여 1MB)
	DefaultMaxBodySize = "1M"

	// DefaultRequestTimeout 요청 하나의 최대 처리 시간
	// 일괄 조회는 외부 API를 여러 번 호출하므로 넉넉하게 잡는다.
	DefaultRequestTimeout = 120 * time.Second

	// DefaultReadTimeout 요청 본문 읽기 제한 시간
	DefaultReadTimeout = 30 * time.Second

	// DefaultReadHeaderTimeout 요청 헤더 읽기 제한 시간 (Slowloris 방어)
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout 응답 쓰기 제한 시간 (DefaultRequestTimeout보다 길어야 함)
	DefaultWriteTimeout = 130 * time.Second

	// DefaultIdleTimeout Keep-Alive 연결 유휴 제한 시간
	DefaultIdleTimeout = 120 * time.Second

	// DefaultShutdownTimeout Graceful Shutdown 최대 대기 시간
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultRateLimitPerSecond IP별 초당 허용 요청 수 (설정이 없을 때)
	DefaultRateLimitPerSecond = 5.0

	// DefaultRateLimitBurst IP별 버스트 허용량 (설정이 없을 때)
	DefaultRateLimitBurst = 10

	// RetryAfterSeconds 속도 제한 초과 시 권장하는 재시도 대기 시간(초)
	RetryAfterSeconds = "1"
)
