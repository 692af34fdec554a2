// Package cache 조회 파이프라인 앞단에 위치하는 결과 캐시를 제공합니다.
//
// 캐시는 직렬화된 바이트만 다루며 값의 형식은 호출자가 결정합니다.
// 요청 간 잠금은 제공하지 않으므로 동시에 발생한 미스는 각자 계산 후 기록하고,
// 마지막으로 기록한 값이 남습니다.
//
// 백엔드:
//   - memory: 프로세스 메모리 (기본값)
//   - file: 디렉토리에 항목별 JSON 파일로 저장
//   - postgres: 트랜잭션 외부의 단일 테이블에 저장
package cache

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
)

const component = "lookup.cache"

// ErrCacheMiss 키에 해당하는 항목이 없거나 만료되었습니다.
var ErrCacheMiss = apperrors.New(apperrors.NotFound, "캐시 항목이 없습니다")

// Store 캐시 백엔드의 공통 계약입니다.
type Store interface {
	// Get 키의 값을 반환합니다. 항목이 없거나 만료되었으면 ErrCacheMiss를 반환합니다.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 값을 저장합니다. ttl이 0 이하이면 저장하지 않습니다.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// Clear 모든 항목을 삭제합니다.
	Clear(ctx context.Context) error

	// PurgeExpired 만료된 항목을 삭제하고 삭제한 개수를 반환합니다.
	PurgeExpired(ctx context.Context) (int, error)

	Close() error
}

// Backend 캐시 저장소 종류입니다.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendPostgres Backend = "postgres"
)

// Config 캐시 저장소 생성 설정입니다.
type Config struct {
	Backend Backend

	// Dir file 백엔드의 저장 디렉토리
	Dir string

	// DSN postgres 백엔드의 접속 문자열
	DSN string

	// Table postgres 백엔드의 테이블 이름 (기본값: hoplink_cache)
	Table string
}

// New 설정에 맞는 캐시 저장소를 생성합니다.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch Backend(strings.ToLower(string(cfg.Backend))) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(cfg.Dir)
	case BackendPostgres:
		return NewPostgresStore(ctx, cfg.DSN, cfg.Table)
	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 캐시 백엔드입니다: %s", cfg.Backend)
	}
}

// entry 백엔드가 공통으로 사용하는 저장 항목입니다.
type entry struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (e *entry) expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
