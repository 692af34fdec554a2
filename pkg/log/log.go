// Package log logrus 기반의 전역 구조화 로깅을 제공합니다.
//
// 모든 로그는 발생 위치를 나타내는 component 필드를 가지며,
// 파일 출력은 lumberjack을 통해 크기 기준으로 로테이션됩니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// StandardLogger 전역 Logger 인스턴스를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetDebugMode 디버그 모드에 따라 전역 로그 레벨을 조정합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

// WithComponent component 필드가 설정된 로그 엔트리를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드가 설정된 로그 엔트리를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	return logrus.WithField("component", component).WithFields(fields)
}

// Debug, Info, Warn, Error, Fatal component 없이 전역 로거로 바로 기록합니다.
// 애플리케이션 시작/종료 단계처럼 특정 컴포넌트에 속하지 않는 로그에 사용합니다.
func Debug(args ...any) { logrus.Debug(args...) }
func Info(args ...any)  { logrus.Info(args...) }
func Warn(args ...any)  { logrus.Warn(args...) }
func Error(args ...any) { logrus.Error(args...) }
func Fatal(args ...any) { logrus.Fatal(args...) }

func Infof(format string, args ...any)  { logrus.Infof(format, args...) }
func Warnf(format string, args ...any)  { logrus.Warnf(format, args...) }
func Errorf(format string, args ...any) { logrus.Errorf(format, args...) }
func Fatalf(format string, args ...any) { logrus.Fatalf(format, args...) }
