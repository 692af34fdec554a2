// Package scheduler 캐시의 만료 항목을 Cron 스케줄에 맞춰 주기적으로 정리합니다.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/hoplink/pkg/cronx"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// purgeTimeout 만료 항목 정리 1회에 허용되는 최대 시간
const purgeTimeout = time.Minute

// CachePurger 만료된 캐시 항목을 정리하고 삭제한 개수를 반환합니다.
type CachePurger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

// Scheduler 설정된 Cron 스케줄마다 만료된 캐시 항목을 정리하는 서비스입니다.
type Scheduler struct {
	spec   string
	purger CachePurger

	cron *cron.Cron

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다. spec이 비어 있으면 정리 작업을 등록하지 않습니다.
func NewService(spec string, purger CachePurger) *Scheduler {
	if purger == nil {
		panic("CachePurger는 필수입니다")
	}

	return &Scheduler{
		spec:   spec,
		purger: purger,
	}
}

// Start 정리 작업을 Cron 엔진에 등록하고 스케줄러를 시작합니다.
//
// serviceStopCtx가 취소되면 실행 중인 정리 작업이 끝나기를 기다린 뒤 스케줄러를 중지하고 serviceStopWG를 완료 처리합니다.
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// - StandardParser: 초 단위 스케줄링 지원 (6개 필드: 초 분 시 일 월 요일)
	// - Recover: Panic 발생 시 복구
	// - SkipIfStillRunning: 이전 실행이 끝나지 않았으면 다음 실행을 건너뜀
	c := cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	if s.spec != "" {
		if _, err := c.AddFunc(s.spec, s.purge); err != nil {
			serviceStopWG.Done()
			return NewErrInvalidCronSpec(s.spec, err)
		}
	} else {
		applog.WithComponent(component).Info("캐시 정리 스케줄(purge_schedule)이 비어 있어 만료 항목 정리를 등록하지 않습니다")
	}

	s.cron = c
	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"purge_schedule":       s.spec,
		"registered_schedules": len(s.cron.Entries()),
	}).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 실행 중인 스케줄러를 중지합니다. 실행 중인 정리 작업이 있으면 완료될 때까지 기다립니다.
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료")
}

// purge 만료 항목 정리를 1회 수행합니다.
//
// 정리 작업은 서비스 종료 신호와 분리된 컨텍스트로 실행하며, 종료 시에는 cron.Stop()이 완료를 기다린다.
func (s *Scheduler) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	start := time.Now()

	n, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("만료된 캐시 항목 정리에 실패했습니다")
		return
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"purged":      n,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("만료된 캐시 항목 정리 완료")
}
