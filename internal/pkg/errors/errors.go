// Package errors 애플리케이션 전용 에러 처리 시스템을 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되며 Wrap을 통해 컨텍스트를 누적합니다.
// 상위 계층(API 핸들러, 조회 파이프라인)은 ErrorType을 보고 응답 코드나
// 조회 상태(not_configured, lookup_failed 등)를 결정합니다.
//
// 새 에러 생성:
//
//	err := errors.New(errors.NotConfigured, "Rakuten 애플리케이션 ID가 설정되지 않았습니다")
//
// 에러 래핑:
//
//	if err != nil {
//	    return errors.Wrap(err, errors.Unavailable, "PA-API 호출에 실패했습니다")
//	}
//
// 에러 타입 검사:
//
//	if errors.Is(err, errors.NotConfigured) {
//	    // 자격증명 미설정 상태로 보고
//	}
//
// # Wrap 시 타입 선택 원칙
//
//   - 원인 에러가 AppError인 경우: 컨텍스트만 추가하고 동일한 타입을 유지합니다.
//   - 외부 라이브러리 에러인 경우: 성격에 맞는 타입을 선택합니다.
//     (context.DeadlineExceeded → Timeout, sql.ErrConnDone → System, gjson 파싱 실패 → ParsingFailed)
//   - 벤더 API가 일시적으로 응답하지 않는 경우: Unavailable
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError 타입으로 분류된 애플리케이션 에러입니다. 생성 시점의 호출 스택을 함께 보관합니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   []StackFrame
}

// build 모든 생성 함수가 거치는 단일 경로입니다. 스택은 build를 호출한 함수의 호출자부터 수집됩니다.
func build(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		errType: errType,
		message: message,
		cause:   cause,
		stack:   captureStack(defaultCallerSkip),
	}
}

// New 새로운 에러를 생성합니다.
func New(errType ErrorType, message string) error {
	return build(errType, message, nil)
}

// Newf 포맷 문자열로 메시지를 만들어 새로운 에러를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return build(errType, fmt.Sprintf(format, args...), nil)
}

// Wrap err에 타입과 메시지를 덧붙입니다. err가 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return build(errType, message, err)
}

// Wrapf Wrap의 포맷 문자열 버전입니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return build(errType, fmt.Sprintf(format, args...), err)
}

func (e *AppError) Type() ErrorType { return e.errType }
func (e *AppError) Message() string { return e.message }
func (e *AppError) Stack() []StackFrame { return e.stack }
func (e *AppError) Unwrap() error { return e.cause }

func (e *AppError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("[%s] %s", e.errType, e.message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
}

// Format %+v는 에러 체인과 스택을 함께 출력합니다. 그 외 동사는 Error()와 같습니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch {
	case verb == 'v' && s.Flag('+'):
		e.writeVerbose(s)
	case verb == 'q':
		fmt.Fprintf(s, "%q", e.Error())
	default:
		io.WriteString(s, e.Error())
	}
}

func (e *AppError) writeVerbose(s fmt.State) {
	fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

	// 스택은 체인 안쪽에 더 이상 AppError가 없을 때만 출력한다.
	var inner *AppError
	if !errors.As(e.cause, &inner) {
		writeStack(s, e.stack)
	}

	if e.cause == nil {
		return
	}
	io.WriteString(s, "\nCaused by:\n")
	if f, ok := e.cause.(fmt.Formatter); ok {
		f.Format(s, 'v')
		return
	}
	fmt.Fprintf(s, "\t%v", e.cause)
}

func writeStack(w io.Writer, stack []StackFrame) {
	if len(stack) == 0 {
		return
	}

	io.WriteString(w, "\nStack trace:")
	for _, f := range stack {
		fn := f.Function
		if i := strings.LastIndexByte(fn, '/'); i >= 0 {
			fn = fn[i+1:]
		}
		fmt.Fprintf(w, "\n\t%s:%d %s", f.File, f.Line, fn)
	}
}

// Is 에러 체인 중 errType 타입의 AppError가 하나라도 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	found := false
	walk(err, func(e *AppError) bool {
		found = e.errType == errType
		return !found
	})
	return found
}

// As errors.As와 같습니다. 패키지 하나만 임포트해도 되도록 제공합니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 체인의 가장 안쪽 에러를 반환합니다.
func RootCause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// UnderlyingType 체인에서 가장 안쪽에 있는 AppError의 타입을 반환합니다. 없으면 Unknown입니다.
//
//	err := Wrap(New(NotConfigured, "키 없음"), Internal, "후보 검색 실패")
//	UnderlyingType(err) // NotConfigured
func UnderlyingType(err error) ErrorType {
	t := Unknown
	walk(err, func(e *AppError) bool {
		t = e.errType
		return true
	})
	return t
}

// walk 체인을 바깥쪽부터 따라가며 AppError마다 fn을 호출합니다. fn이 false를 반환하면 멈춥니다.
func walk(err error, fn func(*AppError) bool) {
	for ; err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*AppError); ok && !fn(e) {
			return
		}
	}
}
