package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStd = errors.New("standard error")

// =============================================================================
// Creation
// =============================================================================

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		errType ErrorType
		message string
	}{
		{"자격증명 미설정", NotConfigured, "PA-API 액세스 키가 없습니다"},
		{"벤더 장애", Unavailable, "Rakuten API 응답 없음"},
		{"빈 메시지", NotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.errType, tt.message)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.Contains(t, err.Error(), tt.errType.String())
			assert.True(t, Is(err, tt.errType))
		})
	}
}

func TestNewf(t *testing.T) {
	t.Parallel()

	err := Newf(InvalidInput, "지원하지 않는 매칭 모드입니다: %q", "fuzzy")

	assert.Contains(t, err.Error(), `"fuzzy"`)
	assert.True(t, Is(err, InvalidInput))
}

func TestErrorType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "ParsingFailed", ParsingFailed.String())
	assert.Equal(t, "NotConfigured", NotConfigured.String())
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
	assert.Equal(t, "ErrorType(-1)", ErrorType(-1).String())
}

// =============================================================================
// Wrapping
// =============================================================================

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("표준 에러 래핑", func(t *testing.T) {
		wrapped := Wrap(errStd, Unavailable, "후보 검색 실패")

		assert.Contains(t, wrapped.Error(), "후보 검색 실패")
		assert.Contains(t, wrapped.Error(), "standard error")
		assert.True(t, Is(wrapped, Unavailable))
		assert.Same(t, errStd, RootCause(wrapped))
	})

	t.Run("nil 래핑", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, Internal, "무시"))
		assert.Nil(t, Wrapf(nil, Internal, "무시 %d", 1))
	})

	t.Run("중첩 래핑", func(t *testing.T) {
		err := Wrap(Wrap(New(NotConfigured, "키 없음"), Internal, "finder"), System, "lookup")

		assert.True(t, Is(err, System))
		assert.True(t, Is(err, Internal))
		assert.True(t, Is(err, NotConfigured))
		assert.False(t, Is(err, Timeout))
		assert.Equal(t, NotConfigured, UnderlyingType(err))
	})

	t.Run("표준 errors 호환", func(t *testing.T) {
		err := Wrap(context.DeadlineExceeded, Timeout, "요청 시간 초과")

		assert.True(t, errors.Is(err, context.DeadlineExceeded))

		var appErr *AppError
		require.True(t, As(err, &appErr))
		assert.Equal(t, Timeout, appErr.Type())
		assert.Equal(t, "요청 시간 초과", appErr.Message())
	})
}

func TestUnderlyingType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Unknown, UnderlyingType(nil))
	assert.Equal(t, Unknown, UnderlyingType(errStd))
	assert.Equal(t, ParsingFailed, UnderlyingType(fmt.Errorf("ctx: %w", New(ParsingFailed, "json"))))
}

// =============================================================================
// Formatting
// =============================================================================

func TestAppError_Format(t *testing.T) {
	t.Parallel()

	err := Wrap(errStd, ExecutionFailed, "페이지 파싱 실패")

	assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
	assert.Equal(t, fmt.Sprintf("%q", err.Error()), fmt.Sprintf("%q", err))

	verbose := fmt.Sprintf("%+v", err)
	assert.Contains(t, verbose, "Stack trace:")
	assert.Contains(t, verbose, "Caused by:")
	assert.Contains(t, verbose, "errors_test.go")
}

func TestCaptureStack(t *testing.T) {
	t.Parallel()

	var appErr *AppError
	require.True(t, As(New(Internal, "x"), &appErr))

	stack := appErr.Stack()
	require.NotEmpty(t, stack)
	assert.LessOrEqual(t, len(stack), maxStackFrames)
	assert.Equal(t, "errors_test.go", stack[0].File)
}
