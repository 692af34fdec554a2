package matcher

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
)

// Signal 유사도 계산에 참여하는 개별 신호입니다.
type Signal string

const (
	SignalJAN   Signal = "jan_code"
	SignalName  Signal = "name"
	SignalBrand Signal = "brand"
	SignalPrice Signal = "price"
)

// 신호별 가중치. 식별자(JAN) > 텍스트 > 가격 순으로 신뢰한다.
const (
	weightJAN   = 5.0
	weightName  = 3.0
	weightBrand = 2.0
	weightPrice = 1.0
)

// Similarity 두 상품의 유사도를 [0, 1] 범위로 반환합니다.
//
// 양쪽 모두 값이 있는 신호만 가중 평균에 포함하며, 공통 신호가 하나도 없으면 0을 반환합니다.
func Similarity(a, b *product.Record) float64 {
	score, _ := similarity(a, b)
	return score
}

// similarity 가중 평균 점수와 신호별 점수를 함께 계산합니다.
func similarity(a, b *product.Record) (float64, map[Signal]float64) {
	if a == nil || b == nil {
		return 0, nil
	}

	signals := make(map[Signal]float64, 4)
	var weighted, weights float64

	add := func(s Signal, weight, score float64) {
		signals[s] = score
		weighted += weight * score
		weights += weight
	}

	if a.HasJAN() && b.HasJAN() {
		janScore := 0.0
		if a.JANCode == b.JANCode {
			janScore = 1.0
		}
		add(SignalJAN, weightJAN, janScore)
	}
	// 정규화 후 비어 버린 이름(수식어만 있는 경우)은 정보가 없으므로 신호에서 제외한다.
	if na, nb := NormalizeName(a.Name), NormalizeName(b.Name); na != "" && nb != "" {
		add(SignalName, weightName, TextSimilarity(na, nb))
	}
	if ba, bb := NormalizeBrand(a.Brand), NormalizeBrand(b.Brand); ba != "" && bb != "" {
		add(SignalBrand, weightBrand, TextSimilarity(ba, bb))
	}
	if a.HasPrice() && b.HasPrice() {
		add(SignalPrice, weightPrice, PriceSimilarity(a.Price, b.Price))
	}

	if weights == 0 {
		return 0, signals
	}
	return weighted / weights, signals
}

// NameSimilarity 정규화된 상품명 간의 유사도를 반환합니다.
func NameSimilarity(a, b string) float64 {
	return TextSimilarity(NormalizeName(a), NormalizeName(b))
}

// BrandSimilarity 정규화된 브랜드명 간의 유사도를 반환합니다.
func BrandSimilarity(a, b string) float64 {
	return TextSimilarity(NormalizeBrand(a), NormalizeBrand(b))
}

// TextSimilarity 이미 정규화된 두 문자열에 대해 Levenshtein 유사도와
// 바이그램 Jaccard 유사도의 평균을 반환합니다.
// 한쪽이라도 비어 있으면 0입니다.
func TextSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	return (LevenshteinSimilarity(a, b) + BigramSimilarity(a, b)) / 2
}

// LevenshteinSimilarity 1 - (편집 거리 / 긴 문자열의 길이)를 반환합니다. 길이는 rune 단위입니다.
func LevenshteinSimilarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// BigramSimilarity 공백을 제외한 연속 2문자 집합의 Jaccard 지수를 반환합니다.
// 한 글자짜리 문자열은 그 글자 자체를 원소로 사용합니다.
func BigramSimilarity(a, b string) float64 {
	setA, setB := bigrams(a), bigrams(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	intersection := 0
	for g := range setA {
		if _, ok := setB[g]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func bigrams(s string) map[string]struct{} {
	runes := []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))

	set := make(map[string]struct{}, len(runes))
	if len(runes) == 1 {
		set[string(runes)] = struct{}{}
		return set
	}
	for i := 0; i+1 < len(runes); i++ {
		set[string(runes[i:i+2])] = struct{}{}
	}
	return set
}

// PriceSimilarity 두 가격의 상대 차이 d = |p1-p2| / max(p1, p2)에 따라 유사도를 반환합니다.
//
//	d <= 0.10 → 1.0
//	d <= 0.20 → 0.8
//	d <= 0.30 → 0.5
//	그 외     → max(0, 1-d)
func PriceSimilarity(p1, p2 int) float64 {
	if p1 == p2 {
		return 1.0
	}

	hi := max(p1, p2)
	if hi <= 0 || min(p1, p2) < 0 {
		return 0
	}

	d := math.Abs(float64(p1-p2)) / float64(hi)
	switch {
	case d <= 0.10:
		return 1.0
	case d <= 0.20:
		return 0.8
	case d <= 0.30:
		return 0.5
	default:
		return math.Max(0, 1-d)
	}
}
