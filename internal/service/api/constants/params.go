package constants

// URL 쿼리 파라미터 키 상수입니다.
const (
	// QueryParamAppKey 애플리케이션 인증용 쿼리 파라미터 키 (헤더를 쓸 수 없는 클라이언트용)
	QueryParamAppKey = "app_key"

	// QueryParamApplicationID 애플리케이션 식별용 쿼리 파라미터 키
	QueryParamApplicationID = "application_id"
)

// HTTP 헤더 키 상수입니다.
const (
	// HeaderXAppKey 애플리케이션 인증용 HTTP 헤더 키 (권장 방식)
	HeaderXAppKey = "X-App-Key"

	// HeaderXApplicationID 애플리케이션 식별용 HTTP 헤더 키
	// 이 헤더가 존재하면 Body 파싱을 건너뛰고 헤더 값으로 인증합니다.
	HeaderXApplicationID = "X-Application-Id"

	// HeaderRetryAfter 속도 제한 시 재시도 대기 시간(초)을 알리는 헤더 (RFC 7231)
	HeaderRetryAfter = "Retry-After"
)

// SensitiveQueryParams 로그 기록 시 값을 마스킹해야 하는 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	QueryParamAppKey,
	"api_key",
	"password",
	"token",
	"secret",
}

// Context 키 상수입니다.
const (
	// ContextKeyApplication 인증된 Application 객체 저장용 Context 키
	ContextKeyApplication = "hoplink/api/auth/authenticated_application"
)
