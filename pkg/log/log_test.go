package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Options
// =============================================================================

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"정상", Options{Name: "hoplink"}, ""},
		{"이름 누락", Options{}, "Name"},
		{"디렉토리 위치에 파일 존재", Options{Name: "hoplink", Dir: file}, "이미 파일로 존재"},
		{"음수 MaxAge", Options{Name: "hoplink", MaxAge: -1}, "MaxAge"},
		{"음수 MaxSizeMB", Options{Name: "hoplink", MaxSizeMB: -1}, "MaxSizeMB"},
		{"음수 MaxBackups", Options{Name: "hoplink", MaxBackups: -1}, "MaxBackups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProfiles(t *testing.T) {
	t.Parallel()

	prod := NewProductionOptions("hoplink")
	assert.Equal(t, InfoLevel, prod.Level)
	assert.True(t, prod.EnableCriticalLog)
	assert.False(t, prod.EnableConsoleLog)

	dev := NewDevelopmentOptions("hoplink")
	assert.Equal(t, TraceLevel, dev.Level)
	assert.True(t, dev.EnableConsoleLog)

	cli := NewCLIOptions("hoplink")
	assert.Equal(t, "hoplink-cli", cli.Name)
	assert.False(t, cli.EnableConsoleLog)
}

// =============================================================================
// Hook Routing
// =============================================================================

func newTestHook() (*hook, *bytes.Buffer, *bytes.Buffer, *bytes.Buffer) {
	main, critical, verbose := &bytes.Buffer{}, &bytes.Buffer{}, &bytes.Buffer{}
	return &hook{
		mainWriter:     main,
		criticalWriter: critical,
		verboseWriter:  verbose,
		formatter:      &logrus.TextFormatter{DisableTimestamp: true},
	}, main, critical, verbose
}

func TestHook_Fire_Routing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                           string
		level                          Level
		inMain, inCritical, inVerbose bool
	}{
		{"Error는 Main과 Critical", ErrorLevel, true, true, false},
		{"Warn은 Main만", WarnLevel, true, false, false},
		{"Info는 Main만", InfoLevel, true, false, false},
		{"Debug는 Verbose만", DebugLevel, false, false, true},
		{"Trace는 Verbose만", TraceLevel, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, main, critical, verbose := newTestHook()

			entry := logrus.NewEntry(logrus.New())
			entry.Level = tt.level
			entry.Message = "후보 검색 완료"

			require.NoError(t, h.Fire(entry))
			assert.Equal(t, tt.inMain, main.Len() > 0)
			assert.Equal(t, tt.inCritical, critical.Len() > 0)
			assert.Equal(t, tt.inVerbose, verbose.Len() > 0)
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestHook_Fire_WriteFailure(t *testing.T) {
	t.Parallel()

	main := &bytes.Buffer{}
	h := &hook{
		mainWriter:     main,
		criticalWriter: failingWriter{},
		formatter:      &logrus.TextFormatter{DisableTimestamp: true},
	}

	entry := logrus.NewEntry(logrus.New())
	entry.Level = ErrorLevel
	entry.Message = "PA-API 호출 실패"

	err := h.Fire(entry)
	assert.EqualError(t, err, "disk full")
	assert.Contains(t, main.String(), "PA-API 호출 실패", "Critical 실패와 관계없이 Main에는 기록되어야 합니다")
}

func TestHook_Close(t *testing.T) {
	t.Parallel()

	h, main, _, _ := newTestHook()
	require.NoError(t, h.Close())

	entry := logrus.NewEntry(logrus.New())
	entry.Level = InfoLevel
	entry.Message = "무시됨"

	assert.NoError(t, h.Fire(entry))
	assert.Zero(t, main.Len())
}

// =============================================================================
// Setup
// =============================================================================

func TestSetup_WritesRotatingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	l := logrus.New()

	c, err := setup(l, Options{
		Name:              "hoplink",
		Dir:               dir,
		Level:             DebugLevel,
		EnableCriticalLog: true,
		EnableVerboseLog:  true,
	})
	require.NoError(t, err)

	l.WithField("component", "lookup.matcher").Info("매칭 성공")
	l.WithField("component", "lookup.amazon").Error("PA-API 호출 실패")
	l.Debug("후보 상세")

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "Close는 여러 번 호출해도 안전해야 합니다")

	mainLog, err := os.ReadFile(filepath.Join(dir, "hoplink.log"))
	require.NoError(t, err)
	assert.Contains(t, string(mainLog), "매칭 성공")
	assert.Contains(t, string(mainLog), "PA-API 호출 실패")
	assert.NotContains(t, string(mainLog), "후보 상세")

	criticalLog, err := os.ReadFile(filepath.Join(dir, "hoplink.critical.log"))
	require.NoError(t, err)
	assert.Contains(t, string(criticalLog), "PA-API 호출 실패")
	assert.NotContains(t, string(criticalLog), "매칭 성공")

	verboseLog, err := os.ReadFile(filepath.Join(dir, "hoplink.verbose.log"))
	require.NoError(t, err)
	assert.Contains(t, string(verboseLog), "후보 상세")
}

func TestSetup_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := setup(logrus.New(), Options{})
	assert.Error(t, err)
}

func TestWithComponentAndFields(t *testing.T) {
	entry := WithComponentAndFields("lookup.cache", Fields{"key": "rakuten_item:abc"})

	assert.Equal(t, "lookup.cache", entry.Data["component"])
	assert.Equal(t, "rakuten_item:abc", entry.Data["key"])
}
