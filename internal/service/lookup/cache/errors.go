package cache

import (
	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
)

var (
	// ErrPathTraversalDetected 캐시 파일 경로가 저장 디렉토리를 벗어났습니다.
	ErrPathTraversalDetected = apperrors.New(apperrors.Internal, "캐시 파일 경로가 저장 디렉토리를 벗어나 요청을 차단했습니다")

	// ErrDSNRequired postgres 백엔드의 접속 문자열이 비어 있습니다.
	ErrDSNRequired = apperrors.New(apperrors.NotConfigured, "postgres 캐시 접속 문자열(DSN)이 설정되지 않았습니다")
)

func newErrDirectoryAccessFailed(err error, dir string) error {
	return apperrors.Wrapf(err, apperrors.System, "캐시 디렉토리에 접근할 수 없습니다 (%s)", dir)
}

func newErrReadFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "캐시 항목을 읽는 중 오류가 발생했습니다")
}

func newErrWriteFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "캐시 항목을 기록하는 중 오류가 발생했습니다")
}

func newErrCorruptEntry(err error) error {
	return apperrors.Wrap(err, apperrors.ParsingFailed, "캐시 항목이 손상되어 해석할 수 없습니다")
}

func newErrDatabase(err error, op string) error {
	return apperrors.Wrapf(err, apperrors.System, "캐시 데이터베이스 작업(%s)에 실패했습니다", op)
}

func newErrInvalidTableName(table string) error {
	return apperrors.Newf(apperrors.InvalidInput, "캐시 테이블 이름이 올바르지 않습니다: %q", table)
}
