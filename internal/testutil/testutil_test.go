package testutil

import (
	"crypto/tls"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFreePort(t *testing.T) {
	t.Parallel()

	port, err := GetFreePort()
	require.NoError(t, err)
	assert.Greater(t, port, 0)
}

func TestWaitForServer(t *testing.T) {
	t.Parallel()

	t.Run("리스닝 중인 포트", func(t *testing.T) {
		t.Parallel()

		l, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer l.Close()

		assert.NoError(t, WaitForServer(l.Addr().(*net.TCPAddr).Port, time.Second))
	})

	t.Run("닫힌 포트는 타임아웃", func(t *testing.T) {
		t.Parallel()

		port, err := GetFreePort()
		require.NoError(t, err)

		assert.Error(t, WaitForServer(port, 50*time.Millisecond))
	})
}

func TestGenerateSelfSignedCert(t *testing.T) {
	t.Parallel()

	certFile, keyFile := GenerateSelfSignedCert(t)

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	require.NoError(t, err, "생성된 인증서와 키는 짝이 맞아야 함")
	assert.NotEmpty(t, cert.Certificate)
}
