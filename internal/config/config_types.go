package config

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// AppConfig 애플리케이션의 모든 설정을 포함하는 최상위 구조체
type AppConfig struct {
	Debug      bool             `json:"debug"`
	HTTPRetry  HTTPRetryConfig  `json:"http_retry"`
	Rakuten    RakutenConfig    `json:"rakuten"`
	Amazon     AmazonConfig     `json:"amazon"`
	Matcher    MatcherConfig    `json:"matcher"`
	Cache      CacheConfig      `json:"cache"`
	HoplinkAPI HoplinkAPIConfig `json:"hoplink_api"`
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c.HTTPRetry, "HTTP 재시도 설정(http_retry)"); err != nil {
		return err
	}
	if c.HTTPRetry.MaxRetryDelay > 0 && c.HTTPRetry.MaxRetryDelay < c.HTTPRetry.RetryDelay {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("HTTP 최대 재시도 대기 시간(max_retry_delay: %v)은 재시도 대기 시간(retry_delay: %v)보다 작을 수 없습니다", c.HTTPRetry.MaxRetryDelay, c.HTTPRetry.RetryDelay))
	}

	if err := checkStruct(v, c.Rakuten, "Rakuten 설정(rakuten)"); err != nil {
		return err
	}

	if err := c.Amazon.validate(v); err != nil {
		return err
	}

	if err := checkStruct(v, c.Matcher, "매칭 설정(matcher)"); err != nil {
		return err
	}

	if err := checkStruct(v, c.Cache, "캐시 설정(cache)"); err != nil {
		return err
	}

	if err := c.HoplinkAPI.validate(v); err != nil {
		return err
	}

	return nil
}

// VerifyRecommendations 서비스 운영의 안정성과 보안을 위해 권장되는 설정 준수 여부를 진단합니다.
// 강제적인 에러를 발생시키지는 않으나, 잠재적 위험 요소에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if !c.Rakuten.Configured() {
		warnings = append(warnings, "Rakuten 애플리케이션 ID(rakuten.application_id)가 설정되지 않았습니다. Rakuten 조회 결과는 not_configured로 보고됩니다")
	}
	if !c.Amazon.Configured() {
		warnings = append(warnings, "Amazon PA-API 자격증명 또는 파트너 태그가 설정되지 않았습니다. Amazon 매칭 결과는 not_configured로 보고됩니다")
	}
	if c.Cache.Backend == "memory" && !c.Debug {
		warnings = append(warnings, "운영 모드에서 메모리 캐시를 사용하도록 설정되었습니다. 재시작 시 캐시가 모두 사라집니다")
	}

	warnings = append(warnings, c.HoplinkAPI.VerifyRecommendations()...)

	return warnings
}

// HTTPRetryConfig 외부 API 호출의 타임아웃과 재시도 정책을 정의하는 설정 구조체
type HTTPRetryConfig struct {
	MaxRetries    int           `json:"max_retries" validate:"min=0,max=10"`
	RetryDelay    time.Duration `json:"retry_delay" validate:"gt=0"`
	MaxRetryDelay time.Duration `json:"max_retry_delay" validate:"gte=0"`
	Timeout       time.Duration `json:"timeout" validate:"gte=0"`
	ProxyURL      string        `json:"proxy_url" validate:"omitempty,url"`
	MaxBytes      int64         `json:"max_bytes" validate:"gte=0"`
}

// RakutenConfig Rakuten Ichiba API 설정 구조체
type RakutenConfig struct {
	ApplicationID string `json:"application_id"`
	AffiliateID   string `json:"affiliate_id"`
	Endpoint      string `json:"endpoint" validate:"omitempty,url"`
	Hits          int    `json:"hits" validate:"gte=0,max=30"`

	// PageJANDiscovery API 응답에 JAN 코드가 없을 때 상품 페이지에서 찾습니다.
	PageJANDiscovery bool `json:"page_jan_discovery"`
}

// Configured 애플리케이션 ID가 설정되어 있는지 여부를 반환합니다.
func (c *RakutenConfig) Configured() bool {
	return strings.TrimSpace(c.ApplicationID) != ""
}

// AmazonConfig Amazon PA-API 5.0 설정 구조체
type AmazonConfig struct {
	AccessKey  string `json:"access_key"`
	SecretKey  string `json:"secret_key"`
	PartnerTag string `json:"partner_tag"`

	// Profile 액세스 키가 비어 있을 때 AWS 공유 설정에서 자격증명을 읽을 프로필 이름
	Profile string `json:"profile"`

	Endpoint    string        `json:"endpoint" validate:"omitempty,url"`
	Region      string        `json:"region"`
	Marketplace string        `json:"marketplace"`
	MinInterval time.Duration `json:"min_interval"`

	// EnrichLimit 상품 페이지로 가격/리뷰를 보강할 최대 후보 수 (음수이면 보강하지 않음)
	EnrichLimit int `json:"enrich_limit"`

	DefaultSearch AmazonSearchConfig `json:"default_search"`
}

// AmazonSearchConfig 키워드 검색의 기본 조건입니다.
type AmazonSearchConfig struct {
	SearchIndex string `json:"search_index"`
	ItemCount   int    `json:"item_count" validate:"gte=0,max=10"`
}

func (c *AmazonConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "Amazon 설정(amazon)"); err != nil {
		return err
	}

	// 키 한쪽만 입력된 경우는 설정 실수로 본다.
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return apperrors.New(apperrors.InvalidInput, "Amazon 액세스 키(access_key)와 시크릿 키(secret_key)는 함께 설정해야 합니다")
	}

	return nil
}

// Configured PA-API 호출에 필요한 파트너 태그와 자격증명 정보가 있는지 여부를 반환합니다.
func (c *AmazonConfig) Configured() bool {
	if strings.TrimSpace(c.PartnerTag) == "" {
		return false
	}
	return (c.AccessKey != "" && c.SecretKey != "") || c.Profile != ""
}

// MatcherConfig 매칭 동작 설정 구조체
type MatcherConfig struct {
	DefaultMode  string `json:"default_mode" validate:"match_mode"`
	MaxBatchSize int    `json:"max_batch_size" validate:"min=1,max=100"`
}

// CacheConfig 조회 결과 캐시 설정 구조체
type CacheConfig struct {
	Backend string `json:"backend" validate:"oneof=memory file postgres"`
	Dir     string `json:"dir" validate:"required_if=Backend file"`
	DSN     string `json:"dsn" validate:"required_if=Backend postgres"`
	Table   string `json:"table"`

	TTL time.Duration `json:"ttl" validate:"gt=0"`

	// NegativeTTL 매칭 없음/상품 없음 결과의 보관 시간 (음수이면 캐시하지 않음)
	NegativeTTL time.Duration `json:"negative_ttl"`

	// PurgeSchedule 만료된 캐시 항목을 정리하는 Cron 표현식 (비어 있으면 정리하지 않음)
	PurgeSchedule string `json:"purge_schedule" validate:"omitempty,cron_spec"`
}

// HoplinkAPIConfig 조회 REST API 서버 설정 구조체
type HoplinkAPIConfig struct {
	WS           WSConfig            `json:"ws"`
	CORS         CORSConfig          `json:"cors"`
	RateLimit    RateLimitConfig     `json:"rate_limit"`
	Applications []ApplicationConfig `json:"applications" validate:"unique=ID"`
}

func (c *HoplinkAPIConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c.WS, "웹 서버 설정(ws)"); err != nil {
		return err
	}

	if err := c.CORS.validate(v); err != nil {
		return err
	}

	if err := checkStruct(v, c.RateLimit, "요청 제한 설정(rate_limit)"); err != nil {
		return err
	}

	// Applications 중복 ID 검사
	if err := checkUniqueField(v, c.Applications, "ID", "Application"); err != nil {
		return err
	}

	for _, app := range c.Applications {
		if err := checkStruct(v, app, fmt.Sprintf("Application['%s']", app.ID)); err != nil {
			return err
		}
	}

	return nil
}

func (c *HoplinkAPIConfig) VerifyRecommendations() []string {
	var warnings []string

	warnings = append(warnings, c.WS.VerifyRecommendations()...)

	if len(c.Applications) == 0 {
		warnings = append(warnings, "등록된 애플리케이션(applications)이 없습니다. 모든 API 요청이 인증에 실패합니다")
	}
	if !c.RateLimit.Enabled {
		warnings = append(warnings, "요청 제한(rate_limit)이 비활성화되어 있습니다. 외부 API 호출 한도를 빠르게 소진할 수 있습니다")
	}

	return warnings
}

// WSConfig 웹 서버의 포트 및 TLS(HTTPS) 보안 설정을 정의하는 구조체
type WSConfig struct {
	TLSServer   bool   `json:"tls_server"`
	TLSCertFile string `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	ListenPort  int    `json:"listen_port" validate:"min=1,max=65535"`
}

func (c *WSConfig) VerifyRecommendations() []string {
	var warnings []string

	// 시스템 예약 포트(1024 미만) 사용 경고
	if c.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.ListenPort))
	}

	return warnings
}

// CORSConfig 웹 브라우저의 교차 출처 리소스 공유(CORS) 정책을 설정하는 구조체
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"dive,cors_origin"`
}

func (c *CORSConfig) validate(v *validator.Validate) error {
	if len(c.AllowOrigins) == 0 {
		return apperrors.New(apperrors.InvalidInput, "CORS 허용 도메인(allow_origins) 목록이 비어있습니다")
	}

	for _, origin := range c.AllowOrigins {
		if origin == "*" && len(c.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
		}
	}

	return checkStruct(v, c, "CORS 설정(cors)")
}

// RateLimitConfig 클라이언트 IP별 요청 제한 설정 구조체
type RateLimitConfig struct {
	Enabled           bool    `json:"enabled"`
	RequestsPerSecond float64 `json:"requests_per_second" validate:"required_if=Enabled true,gte=0"`
	Burst             int     `json:"burst" validate:"required_if=Enabled true,gte=0"`
}

// ApplicationConfig 조회 API를 사용할 수 있는 클라이언트 애플리케이션의 인증 정보를 정의하는 구조체
type ApplicationConfig struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AppKey      string `json:"app_key" validate:"required"`
}
