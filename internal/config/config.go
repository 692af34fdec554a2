package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "hoplink"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 읽는 기본 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	// 예: HOPLINK_AMAZON__ACCESS_KEY -> amazon.access_key
	EnvPrefix = "HOPLINK_"

	// ------------------------------------------------------------------------------------------------
	// HTTP 재시도 정책 기본값
	// ------------------------------------------------------------------------------------------------

	// DefaultMaxRetries HTTP 요청 실패 시 최대 재시도 횟수 기본값
	DefaultMaxRetries = 3

	// DefaultRetryDelay 재시도 사이의 최소 대기 시간 기본값
	DefaultRetryDelay = 2 * time.Second

	// DefaultMaxRetryDelay 재시도 대기 시간의 상한 기본값
	DefaultMaxRetryDelay = 30 * time.Second

	// DefaultHTTPTimeout 외부 API 요청 1건의 타임아웃 기본값
	DefaultHTTPTimeout = 15 * time.Second

	// ------------------------------------------------------------------------------------------------
	// 매칭/캐시 기본값
	// ------------------------------------------------------------------------------------------------

	DefaultMatchMode     = "normal"
	DefaultMaxBatchSize  = 20
	DefaultCacheBackend  = "memory"
	DefaultCacheTTL      = 24 * time.Hour
	DefaultNegativeTTL   = time.Hour
	DefaultPurgeSchedule = "0 */10 * * * *"

	DefaultListenPort = 2543

	DefaultRateLimitRPS   = 5.0
	DefaultRateLimitBurst = 10
)

// newDefaultConfig 설정 파일과 환경 변수가 덮어쓰기 전의 기본 설정을 반환합니다.
func newDefaultConfig() *AppConfig {
	return &AppConfig{
		Debug: true,
		HTTPRetry: HTTPRetryConfig{
			MaxRetries:    DefaultMaxRetries,
			RetryDelay:    DefaultRetryDelay,
			MaxRetryDelay: DefaultMaxRetryDelay,
			Timeout:       DefaultHTTPTimeout,
		},
		Rakuten: RakutenConfig{
			PageJANDiscovery: true,
		},
		Matcher: MatcherConfig{
			DefaultMode:  DefaultMatchMode,
			MaxBatchSize: DefaultMaxBatchSize,
		},
		Cache: CacheConfig{
			Backend:       DefaultCacheBackend,
			TTL:           DefaultCacheTTL,
			NegativeTTL:   DefaultNegativeTTL,
			PurgeSchedule: DefaultPurgeSchedule,
		},
		HoplinkAPI: HoplinkAPIConfig{
			WS: WSConfig{
				ListenPort: DefaultListenPort,
			},
			CORS: CORSConfig{
				AllowOrigins: []string{"*"},
			},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: DefaultRateLimitRPS,
				Burst:             DefaultRateLimitBurst,
			},
		},
	}
}

// normalizeEnvKey 환경 변수 이름을 koanf 키 경로로 변환합니다.
// 이중 언더스코어(__)는 계층 구분자(.)가 됩니다.
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
//
// 우선순위: 환경 변수 > 설정 파일 > 기본값
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (기본값 덮어쓰기)
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 로드 (최우선 순위)
	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링
	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true, // 구조체에 없는 필드가 있으면 에러
			WeaklyTypedInput: true,
			Result:           &appConfig,
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사
	if err := appConfig.validate(newValidator()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}
