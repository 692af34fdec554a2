package log

// callerPathPrefix 호출 위치 출력 시 생략할 모듈 경로 접두사입니다.
const callerPathPrefix = "github.com/darkkaiser/hoplink"

// NewProductionOptions 운영 환경에 맞춘 로그 설정을 반환합니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: InfoLevel,

		MaxAge:     30,
		MaxSizeMB:  100,
		MaxBackups: 20,

		EnableCriticalLog: true,
		EnableVerboseLog:  true,
		EnableConsoleLog:  false,

		ReportCaller:     true,
		CallerPathPrefix: callerPathPrefix,
	}
}

// NewDevelopmentOptions 개발 환경에 맞춘 로그 설정을 반환합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: TraceLevel,

		MaxAge:     1,
		MaxSizeMB:  50,
		MaxBackups: 5,

		EnableCriticalLog: false,
		EnableVerboseLog:  false,
		EnableConsoleLog:  true,

		ReportCaller:     true,
		CallerPathPrefix: callerPathPrefix,
	}
}

// NewCLIOptions 관리 도구(CLI)용 로그 설정을 반환합니다.
// 표준 출력은 조회 결과(JSON)에 쓰이므로 로그는 파일로만 남깁니다.
func NewCLIOptions(appName string) Options {
	return Options{
		Name:  appName + "-cli",
		Level: InfoLevel,

		MaxAge:     7,
		MaxSizeMB:  20,
		MaxBackups: 3,

		ReportCaller:     false,
		CallerPathPrefix: callerPathPrefix,
	}
}
