package matcher

import (
	"context"
	"fmt"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	applog "github.com/darkkaiser/hoplink/pkg/log"
)

// CandidateFinder 원본 상품에 대한 매칭 후보 목록을 찾습니다.
type CandidateFinder interface {
	FindCandidates(ctx context.Context, source *product.Record) ([]*product.Record, error)
}

// BatchResult 일괄 매칭에서 원본 상품 하나에 대한 결과입니다.
type BatchResult struct {
	Source  *product.Record `json:"source"`
	Match   *Result         `json:"match"`
	Matched bool            `json:"matched"`
	Error   string          `json:"error,omitempty"`
}

// BatchMatch 원본 상품마다 후보를 찾아 매칭합니다.
//
// 한 원본의 후보 검색이 실패(에러 또는 패닉)해도 나머지 원본의 매칭은 계속되며,
// 결과는 항상 sources와 같은 길이와 순서를 가집니다.
func BatchMatch(ctx context.Context, finder CandidateFinder, sources []*product.Record, mode Mode) []BatchResult {
	results := make([]BatchResult, len(sources))

	for i, source := range sources {
		results[i] = BatchResult{Source: source}

		if source == nil {
			results[i].Error = "원본 상품 정보가 없습니다"
			continue
		}
		if err := ctx.Err(); err != nil {
			results[i].Error = err.Error()
			continue
		}

		candidates, err := findSafely(ctx, finder, source)
		if err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"source": source.ID,
				"error":  err,
			}).Warn("일괄 매칭: 후보 검색 실패, 다음 상품으로 진행합니다")

			results[i].Error = err.Error()
			continue
		}

		if m := Match(source, candidates, mode); m != nil {
			results[i].Match = m
			results[i].Matched = true
		}
	}

	return results
}

func findSafely(ctx context.Context, finder CandidateFinder, source *product.Record) (candidates []*product.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			candidates = nil
			err = apperrors.New(apperrors.Internal, fmt.Sprintf("후보 검색 중 패닉이 발생했습니다: %v", r))
		}
	}()

	return finder.FindCandidates(ctx, source)
}
