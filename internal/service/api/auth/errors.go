package auth

import (
	"errors"
	"fmt"

	"github.com/darkkaiser/hoplink/internal/service/api/constants"
	"github.com/darkkaiser/hoplink/internal/service/api/httputil"
)

var (
	// ErrApplicationMissingInContext Context에 애플리케이션 정보가 없습니다.
	ErrApplicationMissingInContext = errors.New(constants.ErrMsgAuthApplicationMissingInContext)

	// ErrApplicationTypeMismatch Context에 저장된 값이 *domain.Application이 아닙니다.
	ErrApplicationTypeMismatch = errors.New(constants.ErrMsgAuthApplicationTypeMismatch)
)

// NewErrInvalidApplicationID 등록되지 않은 Application ID에 대한 401 에러를 생성합니다.
func NewErrInvalidApplicationID(id string) error {
	return httputil.NewUnauthorizedError(fmt.Sprintf(constants.ErrMsgUnauthorizedNotFoundApplicationID, id))
}

// NewErrInvalidAppKey App Key 불일치에 대한 401 에러를 생성합니다.
func NewErrInvalidAppKey(id string) error {
	return httputil.NewUnauthorizedError(fmt.Sprintf(constants.ErrMsgUnauthorizedInvalidAppKey, id))
}
