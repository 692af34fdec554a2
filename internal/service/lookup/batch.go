package lookup

import (
	"context"

	"github.com/darkkaiser/hoplink/internal/service/lookup/matcher"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
)

// BatchItem 일괄 조회의 항목 하나입니다. 요청이 잘못되었으면 Error만 채워집니다.
type BatchItem struct {
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Batch 요청을 순서대로 하나씩 조회합니다. 잘못된 요청은 해당 항목에만 에러로 기록됩니다.
func (s *Service) Batch(ctx context.Context, reqs []Request) ([]BatchItem, error) {
	if err := s.checkBatchSize(len(reqs)); err != nil {
		return nil, err
	}

	items := make([]BatchItem, len(reqs))
	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			items[i].Error = err.Error()
			continue
		}

		res, err := s.Lookup(ctx, req)
		if err != nil {
			items[i].Error = err.Error()
			continue
		}
		items[i].Result = res
	}

	return items, nil
}

// MatchOutcome 일괄 매칭의 항목 하나입니다.
type MatchOutcome struct {
	matcher.BatchResult
	Status Status `json:"status"`
}

// BatchMatch 이미 해석된 원본 상품들을 Amazon 후보와 매칭합니다. 캐시는 사용하지 않습니다.
//
// 한 원본의 후보 검색이 실패해도 나머지는 계속 처리되며, 결과는 sources와 같은 순서입니다.
// 매칭되었더라도 유효성 검사를 통과하지 못하면 invalid_match로 기록됩니다.
func (s *Service) BatchMatch(ctx context.Context, sources []*product.Record, mode string) ([]MatchOutcome, error) {
	if err := s.checkBatchSize(len(sources)); err != nil {
		return nil, err
	}

	m := s.cfg.DefaultMode
	if mode != "" {
		parsed, err := matcher.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		m = parsed
	}

	outcomes := make([]MatchOutcome, len(sources))

	if !s.amazon.Configured() {
		for i, src := range sources {
			outcomes[i] = MatchOutcome{
				BatchResult: matcher.BatchResult{Source: src},
				Status:      StatusNotConfigured,
			}
		}
		return outcomes, nil
	}

	for i, r := range matcher.BatchMatch(ctx, s.amazon, sources, m) {
		outcomes[i] = MatchOutcome{BatchResult: r}

		switch {
		case r.Error != "":
			outcomes[i].Status = StatusLookupFailed
		case !r.Matched:
			outcomes[i].Status = StatusNoMatch
		case !matcher.IsValid(r.Match):
			outcomes[i].Matched = false
			outcomes[i].Status = StatusInvalidMatch
		default:
			outcomes[i].Status = StatusMatched
		}
	}

	return outcomes, nil
}

func (s *Service) checkBatchSize(n int) error {
	if n == 0 {
		return ErrEmptyBatch
	}
	if n > s.cfg.MaxBatchSize {
		return newErrBatchTooLarge(n, s.cfg.MaxBatchSize)
	}
	return nil
}
