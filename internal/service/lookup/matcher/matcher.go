// Package matcher Rakuten 상품과 Amazon 후보 상품 간의 유사도를 계산하고
// 모드별 임계값을 넘는 최적의 후보를 선택합니다.
//
// 유사도는 JAN 코드, 상품명, 브랜드, 가격 네 가지 신호의 가중 평균이며,
// 양쪽 모두 값이 있는 신호만 계산에 참여합니다. 매칭 요인(Factor)과
// 신뢰도(Confidence)는 표시용 정보이며 임계값 판정에는 쓰이지 않습니다.
package matcher

import (
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	applog "github.com/darkkaiser/hoplink/pkg/log"
)

const component = "lookup.matcher"

// Factor 매칭 결과에 기여한 요인입니다.
type Factor string

const (
	FactorJAN   Factor = "jan_code"
	FactorName  Factor = "product_name"
	FactorPrice Factor = "price"
)

// Confidence 매칭 결과의 신뢰도입니다.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

const (
	// factorThreshold 상품명/가격 요인을 기록하기 위한 최소 유사도
	factorThreshold = 0.8

	// validityFloor 어떤 모드로도 매칭으로 볼 수 없는 최소 점수
	validityFloor = 0.3

	// janMismatchOverride JAN 코드가 서로 다를 때 매칭을 인정하기 위한 최소 점수
	janMismatchOverride = 0.9
)

// Result 임계값을 통과한 후보와 그 점수 정보입니다.
type Result struct {
	Source    *product.Record `json:"-"`
	Candidate *product.Record `json:"candidate"`

	Score      float64            `json:"score"`
	Factors    []Factor           `json:"match_factors"`
	Confidence Confidence         `json:"confidence"`
	Signals    map[Signal]float64 `json:"signals"`
}

// HasFactor 특정 요인이 기록되었는지 확인합니다.
func (r *Result) HasFactor(f Factor) bool {
	for _, factor := range r.Factors {
		if factor == f {
			return true
		}
	}
	return false
}

// Match 후보 중 모드 임계값 이상이면서 점수가 가장 높은 후보를 반환합니다.
// 조건을 만족하는 후보가 없으면 nil을 반환합니다. nil 후보는 건너뜁니다.
func Match(source *product.Record, candidates []*product.Record, mode Mode) *Result {
	if source == nil || len(candidates) == 0 {
		return nil
	}

	threshold := mode.Threshold()

	var best *product.Record
	var bestScore float64
	var bestSignals map[Signal]float64

	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}

		score, signals := similarity(source, candidate)
		if score >= threshold && score > bestScore {
			best, bestScore, bestSignals = candidate, score, signals
		}
	}

	if best == nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"source":     source.ID,
			"candidates": len(candidates),
			"mode":       mode,
			"threshold":  threshold,
		}).Debug("임계값을 넘는 후보가 없습니다")

		return nil
	}

	result := newResult(source, best, bestScore, bestSignals)

	applog.WithComponentAndFields(component, applog.Fields{
		"source":     source.ID,
		"candidate":  best.ID,
		"score":      bestScore,
		"confidence": result.Confidence,
		"mode":       mode,
	}).Debug("최적 후보 선택 완료")

	return result
}

func newResult(source, candidate *product.Record, score float64, signals map[Signal]float64) *Result {
	r := &Result{
		Source:     source,
		Candidate:  candidate,
		Score:      score,
		Factors:    []Factor{},
		Confidence: ConfidenceLow,
		Signals:    signals,
	}

	if source.HasJAN() && candidate.HasJAN() && source.JANCode == candidate.JANCode {
		r.Factors = append(r.Factors, FactorJAN)
		r.Confidence = ConfidenceHigh
	}

	if s, ok := signals[SignalName]; ok && s >= factorThreshold {
		r.Factors = append(r.Factors, FactorName)
		if r.Confidence != ConfidenceHigh {
			r.Confidence = ConfidenceMedium
		}
	}

	if s, ok := signals[SignalPrice]; ok && s >= factorThreshold {
		r.Factors = append(r.Factors, FactorPrice)
	}

	return r
}

// IsValid 매칭 결과의 최종 유효성을 판정합니다.
//
// 점수가 0.3 미만이면 거부합니다. 양쪽 모두 JAN 코드가 있는데 서로 다르면
// 점수가 0.9 이상인 경우에만 인정합니다.
func IsValid(r *Result) bool {
	if r == nil || r.Candidate == nil {
		return false
	}
	if r.Score < validityFloor {
		return false
	}

	if r.Source != nil && r.Source.HasJAN() && r.Candidate.HasJAN() && r.Source.JANCode != r.Candidate.JANCode {
		return r.Score >= janMismatchOverride
	}

	return true
}
