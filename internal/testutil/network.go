// Package testutil 서버 생명주기 테스트에서 공통으로 사용하는 헬퍼를 제공합니다.
package testutil

import (
	"context"
	"fmt"
	"net"
	"time"
)

// waitPollInterval 서버 리스닝 여부를 확인하는 주기
const waitPollInterval = 10 * time.Millisecond

// GetFreePort 현재 사용 가능한 로컬 TCP 포트를 반환합니다.
// 포트를 잠시 열었다 닫는 방식이므로 반환 직후 다른 프로세스가 선점할 수 있습니다.
func GetFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port, nil
}

// WaitForServer 로컬 포트가 연결을 받을 때까지 timeout 동안 대기합니다.
func WaitForServer(port int, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return WaitForServerContext(ctx, port)
}

// WaitForServerContext ctx가 끝나기 전까지 로컬 포트가 연결을 받는지 반복 확인합니다.
func WaitForServerContext(ctx context.Context, port int) error {
	address := fmt.Sprintf("localhost:%d", port)
	dialer := &net.Dialer{Timeout: 100 * time.Millisecond}

	ticker := time.NewTicker(waitPollInterval)
	defer ticker.Stop()

	for {
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err == nil {
			conn.Close()
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s 에서 서버가 시작되지 않았습니다: %w", address, ctx.Err())
		case <-ticker.C:
		}
	}
}
