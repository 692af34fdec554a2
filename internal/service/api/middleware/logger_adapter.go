package middleware

import (
	"io"

	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/labstack/gommon/log"
)

// Logger Echo 내부 로그(서버 시작 배너 제외, 라우터 경고 등)를 애플리케이션 로거로 전달하는 어댑터입니다.
//
// Echo가 요구하는 gommon log.Logger 인터페이스를 구현합니다.
type Logger struct {
	*applog.Logger
}

// Output 현재 출력 Writer를 반환합니다.
func (l Logger) Output() io.Writer {
	return l.Logger.Out
}

func (l Logger) SetOutput(w io.Writer) {
	l.Logger.SetOutput(w)
}

func (l Logger) Prefix() string {
	return ""
}

func (l Logger) SetPrefix(string) {}

// Level Logger의 로그 레벨을 Echo의 로그 레벨로 변환합니다.
func (l Logger) Level() log.Lvl {
	switch l.Logger.Level {
	case applog.DebugLevel:
		return log.DEBUG
	case applog.WarnLevel:
		return log.WARN
	case applog.ErrorLevel:
		return log.ERROR
	case applog.InfoLevel:
		return log.INFO
	case applog.TraceLevel:
		return log.DEBUG
	}

	// Panic, Fatal 레벨은 Echo에 대응하는 레벨이 없음

	return log.OFF
}

// SetLevel Echo의 로그 레벨을 Logger의 로그 레벨로 변환하여 설정합니다.
func (l Logger) SetLevel(lvl log.Lvl) {
	switch lvl {
	case log.DEBUG:
		l.Logger.SetLevel(applog.DebugLevel)
	case log.WARN:
		l.Logger.SetLevel(applog.WarnLevel)
	case log.ERROR:
		l.Logger.SetLevel(applog.ErrorLevel)
	case log.INFO:
		l.Logger.SetLevel(applog.InfoLevel)
	case log.OFF:
		l.Logger.SetLevel(applog.PanicLevel)
	}
}

func (l Logger) SetHeader(string) {}

// 이하 출력 메서드는 logrus로 그대로 위임합니다.

func (l Logger) Print(i ...any) {
	l.Logger.Print(i...)
}

func (l Logger) Printf(format string, args ...any) {
	l.Logger.Printf(format, args...)
}

func (l Logger) Printj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Print()
}

func (l Logger) Debug(i ...any) {
	l.Logger.Debug(i...)
}

func (l Logger) Debugf(format string, args ...any) {
	l.Logger.Debugf(format, args...)
}

func (l Logger) Debugj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Debug()
}

func (l Logger) Info(i ...any) {
	l.Logger.Info(i...)
}

func (l Logger) Infof(format string, args ...any) {
	l.Logger.Infof(format, args...)
}

func (l Logger) Infoj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Info()
}

func (l Logger) Warn(i ...any) {
	l.Logger.Warn(i...)
}

func (l Logger) Warnf(format string, args ...any) {
	l.Logger.Warnf(format, args...)
}

func (l Logger) Warnj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Warn()
}

func (l Logger) Error(i ...any) {
	l.Logger.Error(i...)
}

func (l Logger) Errorf(format string, args ...any) {
	l.Logger.Errorf(format, args...)
}

func (l Logger) Errorj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Error()
}

func (l Logger) Fatal(i ...any) {
	l.Logger.Fatal(i...)
}

func (l Logger) Fatalf(format string, args ...any) {
	l.Logger.Fatalf(format, args...)
}

func (l Logger) Fatalj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Fatal()
}

func (l Logger) Panic(i ...any) {
	l.Logger.Panic(i...)
}

func (l Logger) Panicf(format string, args ...any) {
	l.Logger.Panicf(format, args...)
}

func (l Logger) Panicj(j log.JSON) {
	l.Logger.WithFields(applog.Fields(j)).Panic()
}
