package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/darkkaiser/hoplink/internal/config"
	"github.com/darkkaiser/hoplink/internal/pkg/version"
	"github.com/darkkaiser/hoplink/internal/service"
	"github.com/darkkaiser/hoplink/internal/service/api"
	"github.com/darkkaiser/hoplink/internal/service/lookup"
	"github.com/darkkaiser/hoplink/internal/service/scheduler"
	applog "github.com/darkkaiser/hoplink/pkg/log"
)

// @title Hoplink API
// @version 1.0.0
// @description Rakuten 상품과 Amazon 상품을 매칭하는 조회 서버의 REST API입니다.
// @description
// @description ## 주요 기능
// @description - Rakuten 상품 URL, JAN 코드, 키워드로 원본 상품 조회
// @description - Amazon 후보 검색 및 이름/브랜드/JAN 기반 매칭
// @description - 조회 결과 캐시 (memory, file, postgres)
// @description
// @description ## 인증 방법
// @description 설정 파일(hoplink.json)의 hoplink_api.applications에 애플리케이션을 등록한 후,
// @description X-Application-Id, X-App-Key 헤더로 전달하세요.

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser
// @contact.email darkkaiser@gmail.com

// @license.name MIT

// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-App-Key
// @description Application Key for authentication

// 빌드 정보 변수 (ldflags로 주입됨)
var (
	Version     = "dev"
	Commit      = ""
	BuildDate   = "unknown"
	BuildNumber = "0"
)

const (
	banner = `
  _   _                _  _         _
 | | | |  ___   _ __  | |(_) _ __  | | __
 | |_| | / _ \ | '_ \ | || || '_ \ | |/ /
 |  _  || (_) || |_) || || || | | ||   <
 |_| |_| \___/ | .__/ |_||_||_| |_||_|\_\
               |_|                        %s
                                     developed by DarkKaiser
--------------------------------------------------------------------------------
`
)

// component main 패키지의 로깅용 컴포넌트 이름
const component = "main"

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	fmt.Printf(banner, Version)

	buildInfo := newBuildInfo()
	version.Set(buildInfo)

	applog.WithComponentAndFields(component, applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent(component).Warn(warning)
	}

	if err := run(appConfig, buildInfo); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("서버 실행 실패")

		appLogCloser.Close()
		os.Exit(1)
	}
}

// newBuildInfo ldflags로 주입된 값으로 빌드 정보를 구성합니다.
func newBuildInfo() version.Info {
	return version.Info{
		Version:     Version,
		Commit:      Commit,
		BuildDate:   BuildDate,
		BuildNumber: BuildNumber,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
	}
}

// run 서비스를 생성하여 시작하고 종료 시그널을 받을 때까지 대기합니다.
func run(appConfig *config.AppConfig, buildInfo version.Info) error {
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lookupService, err := lookup.NewFromConfig(serviceStopCtx, appConfig)
	if err != nil {
		return err
	}

	services := []service.Service{
		lookupService,
		scheduler.NewService(appConfig.Cache.PurgeSchedule, lookupService),
		api.NewService(appConfig, lookupService, buildInfo),
	}

	serviceStopWG := &sync.WaitGroup{}
	if err := startServices(serviceStopCtx, serviceStopWG, services); err != nil {
		cancel()
		serviceStopWG.Wait()

		return err
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent(component).Info("서버 가동 완료")

	<-termC

	applog.WithComponent(component).Info("종료 시그널을 수신했습니다")
	cancel()
	serviceStopWG.Wait()

	return nil
}

// startServices 서비스를 순서대로 시작합니다. 하나라도 실패하면 즉시 에러를 반환합니다.
func startServices(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, services []service.Service) error {
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			return err
		}
	}

	return nil
}
