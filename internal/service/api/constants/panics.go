package constants

// 시스템 시작/구동 시 발생할 수 있는 크리티컬한 패닉 메시지 상수입니다.
const (
	PanicMsgAppConfigRequired     = "AppConfig는 필수입니다"
	PanicMsgLookupServiceRequired = "LookupService는 필수입니다"
	PanicMsgHealthCheckerRequired = "HealthChecker는 필수입니다"
	PanicMsgAuthenticatorRequired = "Authenticator는 필수입니다"

	// PanicMsgAuthContextApplicationNotFound Context에서 Application 가져오기 실패
	PanicMsgAuthContextApplicationNotFound = "Auth: Context에서 애플리케이션 정보를 가져올 수 없습니다. 인증 미들웨어가 적용되었는지 확인해주세요. (원인: %v)"

	PanicMsgRateLimitRequestsPerSecondInvalid = "RateLimit: requestsPerSecond는 양수여야 합니다 (현재값: %v)"
	PanicMsgRateLimitBurstInvalid             = "RateLimit: burst는 양수여야 합니다 (현재값: %d)"
)
