// hoplink-cli 조회 파이프라인을 서버 없이 실행하는 관리 도구입니다.
//
// 사용법:
//
//	hoplink-cli lookup "https://item.rakuten.co.jp/shop/item-123/"
//	hoplink-cli lookup --kind keyword --option search_index=Beauty "化粧水"
//	hoplink-cli match --file sources.json --mode strict
//	hoplink-cli cache clear
//	hoplink-cli version
package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/darkkaiser/hoplink/internal/config"
	"github.com/darkkaiser/hoplink/internal/service/lookup"
	applog "github.com/darkkaiser/hoplink/pkg/log"
)

// 빌드 정보 변수 (ldflags로 주입됨)
var (
	Version     = "dev"
	Commit      = ""
	BuildDate   = "unknown"
	BuildNumber = "0"
)

func main() {
	logCloser, err := applog.Setup(applog.NewCLIOptions(config.AppName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패 (Cause: %v)\n", err)
		os.Exit(1)
	}

	app := newApp(os.Stdout, openLookupService)

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logCloser.Close()
		os.Exit(1)
	}

	logCloser.Close()
}

// openLookupService 설정 파일을 읽어 조회 서비스를 생성하고 시작합니다.
// 반환된 close 함수는 서비스를 종료하고 캐시 저장소를 닫습니다.
func openLookupService(ctx context.Context, configFile string, debug bool) (lookupRunner, func(), error) {
	appConfig, err := config.LoadWithFile(configFile)
	if err != nil {
		return nil, nil, err
	}

	applog.SetDebugMode(debug || appConfig.Debug)

	svc, err := lookup.NewFromConfig(ctx, appConfig)
	if err != nil {
		return nil, nil, err
	}

	serviceStopCtx, cancel := context.WithCancel(ctx)
	serviceStopWG := &sync.WaitGroup{}

	serviceStopWG.Add(1)
	if err := svc.Start(serviceStopCtx, serviceStopWG); err != nil {
		cancel()
		return nil, nil, err
	}

	return svc, func() {
		cancel()
		serviceStopWG.Wait()
	}, nil
}
