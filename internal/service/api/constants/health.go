package constants

// 헬스체크 상태 값입니다.
const (
	HealthStatusHealthy       = "healthy"
	HealthStatusUnhealthy     = "unhealthy"
	HealthStatusNotConfigured = "not_configured"

	MsgDepStatusHealthy = "정상 작동 중"
)
