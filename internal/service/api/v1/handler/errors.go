package handler

import (
	"fmt"

	"github.com/darkkaiser/hoplink/internal/service/api/constants"
	"github.com/darkkaiser/hoplink/internal/service/api/httputil"
)

// NewErrInvalidBody 요청 본문을 파싱하지 못했을 때의 400 에러를 생성합니다.
func NewErrInvalidBody() error {
	return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
}

// NewErrValidationFailed 요청 검증에 실패했을 때의 400 에러를 생성합니다.
func NewErrValidationFailed(msg string) error {
	return httputil.NewBadRequestError(msg)
}

// NewErrInvalidSource 일괄 매칭 요청의 원본 상품이 올바르지 않을 때의 400 에러를 생성합니다.
func NewErrInvalidSource(index int, cause error) error {
	return httputil.NewBadRequestError(fmt.Sprintf("sources[%d]: %s", index, messageOf(cause)))
}
