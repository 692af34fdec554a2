package lookup

import (
	"context"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup/matcher"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	applog "github.com/darkkaiser/hoplink/pkg/log"
)

// Lookup 요청 하나를 캐시 → Rakuten → Amazon → 매칭 순서로 처리합니다.
//
// 에러는 요청 자체가 잘못된 경우(InvalidInput)에만 반환합니다. 외부 API 실패는
// Result의 상태로 기록되며, 실패가 포함된 결과는 캐시하지 않습니다.
func (s *Service) Lookup(ctx context.Context, req Request) (*Result, error) {
	q, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	if cached := s.readCache(ctx, q.key); cached != nil {
		return cached, nil
	}

	res := s.run(ctx, q)
	s.writeCache(ctx, q.key, res)

	applog.WithComponentAndFields(component, applog.Fields{
		"kind":           q.kind,
		"mode":           q.mode,
		"status":         res.Status,
		"rakuten_status": res.RakutenStatus,
		"amazon_status":  res.AmazonStatus,
		"candidates":     res.Candidates,
	}).Info("조회 완료")

	return res, nil
}

func (s *Service) run(ctx context.Context, q *query) *Result {
	res := &Result{
		Query: q.raw,
		Kind:  q.kind,
		Mode:  q.mode,
	}

	source, rakutenStatus := s.resolveSource(ctx, q)
	res.RakutenStatus = rakutenStatus
	if rakutenStatus == StatusFound {
		res.Rakuten = source
	}

	// URL 조회는 원본 상품 없이 Amazon을 검색할 수 없다.
	if source == nil {
		source = q.queryRecord()
	}

	if source == nil {
		res.AmazonStatus = StatusSkipped
	} else {
		s.matchAmazon(ctx, q, source, res)
	}

	res.Status = overallStatus(res.RakutenStatus, res.AmazonStatus)

	return res
}

// resolveSource 입력 종류에 따라 Rakuten 원본 상품을 찾습니다.
func (s *Service) resolveSource(ctx context.Context, q *query) (*product.Record, Status) {
	if !s.rakuten.Configured() {
		return nil, StatusNotConfigured
	}

	var (
		rec *product.Record
		err error
	)

	switch q.kind {
	case KindURL:
		rec, err = s.rakuten.Resolve(ctx, q.input)

	case KindJAN, KindKeyword:
		var records []*product.Record
		if q.kind == KindJAN {
			records, err = s.rakuten.SearchByJAN(ctx, q.input)
		} else {
			records, err = s.rakuten.SearchByKeyword(ctx, q.input)
		}
		if len(records) > 0 {
			rec = records[0]
		}
	}

	if err != nil {
		return nil, s.failureStatus("rakuten", q, err)
	}
	if rec == nil {
		return nil, StatusNotFound
	}

	return rec, StatusFound
}

// matchAmazon Amazon 후보를 찾아 매칭하고 결과를 res에 기록합니다.
func (s *Service) matchAmazon(ctx context.Context, q *query, source *product.Record, res *Result) {
	if !s.amazon.Configured() {
		res.AmazonStatus = StatusNotConfigured
		return
	}

	candidates, err := s.amazon.FindCandidatesWithOptions(ctx, source, q.options)
	if err != nil {
		res.AmazonStatus = s.failureStatus("amazon", q, err)
		return
	}
	res.Candidates = len(candidates)

	m := matcher.Match(source, candidates, q.mode)
	switch {
	case m == nil:
		res.AmazonStatus = StatusNoMatch

	case !matcher.IsValid(m):
		res.AmazonStatus = StatusInvalidMatch

		applog.WithComponentAndFields(component, applog.Fields{
			"source":    source.ID,
			"candidate": m.Candidate.ID,
			"score":     m.Score,
		}).Info("매칭 거부: JAN 코드가 서로 다른 후보의 점수가 충분하지 않습니다")

	default:
		res.AmazonStatus = StatusMatched
		res.Amazon = &AmazonMatch{Record: m.Candidate, Match: m}
	}
}

// failureStatus 협력 객체의 에러를 상태로 바꾸고 경계에서 기록합니다.
func (s *Service) failureStatus(side string, q *query, err error) Status {
	if apperrors.Is(err, apperrors.NotConfigured) {
		return StatusNotConfigured
	}

	// 지원하지 않는 상품 URL, 상품 페이지가 아닌 단축 URL
	if apperrors.Is(err, apperrors.InvalidInput) {
		applog.WithComponentAndFields(component, applog.Fields{
			"side":  side,
			"kind":  q.kind,
			"error": err,
		}).Info("조회 대상 상품을 찾을 수 없습니다")

		return StatusNotFound
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"side":  side,
		"kind":  q.kind,
		"error": err,
	}).Warn("외부 API 조회 실패: 해당 쪽 결과 없이 계속 진행합니다")

	return StatusLookupFailed
}
