package lookup

import (
	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
)

var (
	// ErrEmptyQuery 조회 입력이 비어 있습니다.
	ErrEmptyQuery = apperrors.New(apperrors.InvalidInput, "조회할 URL, JAN 코드 또는 키워드가 비어 있습니다")

	// ErrEmptyBatch 일괄 요청에 항목이 없습니다.
	ErrEmptyBatch = apperrors.New(apperrors.InvalidInput, "일괄 요청 항목이 비어 있습니다")
)

func newErrBatchTooLarge(size, max int) error {
	return apperrors.Newf(apperrors.InvalidInput, "일괄 요청 항목이 너무 많습니다 (요청: %d, 최대: %d)", size, max)
}
