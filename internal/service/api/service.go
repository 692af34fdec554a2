// Package api 조회 API 서버(Echo)의 구성과 생명주기를 관리합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	_ "github.com/darkkaiser/hoplink/docs"
	"github.com/darkkaiser/hoplink/internal/config"
	"github.com/darkkaiser/hoplink/internal/pkg/version"
	apiauth "github.com/darkkaiser/hoplink/internal/service/api/auth"
	"github.com/darkkaiser/hoplink/internal/service/api/constants"
	"github.com/darkkaiser/hoplink/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/hoplink/internal/service/api/v1"
	v1handler "github.com/darkkaiser/hoplink/internal/service/api/v1/handler"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/labstack/echo/v4"
)

// LookupService API 서버가 사용하는 조회 서비스입니다. 요청 처리와 헬스체크를 함께 제공합니다.
type LookupService interface {
	v1handler.LookupService
	system.HealthChecker
}

// Service 조회 API 서버의 생명주기를 관리하는 서비스입니다.
//
// Start로 시작하면 별도 고루틴에서 HTTP(S) 서버를 실행하고,
// serviceStopCtx가 취소되면 Graceful Shutdown을 수행한 뒤 serviceStopWG를 완료 처리합니다.
type Service struct {
	appConfig *config.AppConfig

	lookupService LookupService

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다.
func NewService(appConfig *config.AppConfig, lookupService LookupService, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if lookupService == nil {
		panic(constants.PanicMsgLookupServiceRequired)
	}

	return &Service{
		appConfig: appConfig,

		lookupService: lookupService,

		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다. 실제 서버는 고루틴에서 실행되며 이 함수는 즉시 반환됩니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer 미들웨어, 인증, 핸들러, 라우트가 모두 구성된 Echo 인스턴스를 생성합니다.
func (s *Service) setupServer() *echo.Echo {
	apiConfig := s.appConfig.HoplinkAPI

	authenticator := apiauth.NewAuthenticator(s.appConfig)

	systemHandler := system.New(s.lookupService, s.buildInfo)
	v1Handler := v1handler.New(s.lookupService)

	e := NewHTTPServer(HTTPServerConfig{
		Debug:        s.appConfig.Debug,
		EnableHSTS:   apiConfig.WS.TLSServer,
		AllowOrigins: apiConfig.CORS.AllowOrigins,

		RateLimitEnabled:           apiConfig.RateLimit.Enabled,
		RateLimitRequestsPerSecond: apiConfig.RateLimit.RequestsPerSecond,
		RateLimitBurst:             apiConfig.RateLimit.Burst,
	})

	RegisterRoutes(e, systemHandler)
	v1.RegisterRoutes(e, v1Handler, authenticator)

	return e
}

// startHTTPServer 설정에 따라 HTTP 또는 HTTPS 서버를 실행합니다. 서버가 종료될 때까지 반환되지 않습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	ws := s.appConfig.HoplinkAPI.WS
	address := fmt.Sprintf(":%d", ws.ListenPort)

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": ws.ListenPort,
		"tls":  ws.TLSServer,
	}).Debug(constants.LogMsgServiceHTTPServerStarting)

	var err error
	if ws.TLSServer {
		err = e.StartTLS(address, ws.TLSCertFile, ws.TLSKeyFile)
	} else {
		err = e.Start(address)
	}

	s.handleServerError(err)
}

// handleServerError 서버 종료 사유를 기록합니다. Graceful Shutdown(http.ErrServerClosed)은 정상 종료로 봅니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.HoplinkAPI.WS.ListenPort,
		"error": err,
	}).Error(constants.LogMsgServiceHTTPServerFatalError)
}

// waitForShutdown 종료 신호 또는 서버의 조기 종료를 기다린 뒤 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)

	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 서버가 먼저 종료됨
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
