// Package service 애플리케이션을 구성하는 서비스의 공통 생명주기 규약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 백그라운드에서 실행되는 서비스의 생명주기 인터페이스입니다.
//
// Start는 serviceStopWG에 대해 정확히 한 번 Done을 호출해야 합니다. 시작에 실패한 경우에도 마찬가지이며,
// 성공한 경우에는 serviceStopCtx가 취소되어 리소스 정리가 끝난 뒤에 호출합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
