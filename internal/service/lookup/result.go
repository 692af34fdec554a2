package lookup

import (
	"github.com/darkkaiser/hoplink/internal/service/lookup/matcher"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
)

// Status 조회 결과의 상태입니다.
type Status string

const (
	StatusMatched       Status = "matched"
	StatusNoMatch       Status = "no_match"
	StatusNotFound      Status = "not_found"
	StatusNotConfigured Status = "not_configured"
	StatusLookupFailed  Status = "lookup_failed"
	StatusInvalidMatch  Status = "invalid_match"

	// StatusFound Rakuten 쪽에서 원본 상품을 찾은 상태
	StatusFound Status = "found"

	// StatusSkipped 원본 상품이 없어 Amazon 검색을 하지 않은 상태
	StatusSkipped Status = "skipped"
)

// cacheable 다시 조회해도 같은 결과가 나오는 상태인지 여부입니다.
func (s Status) cacheable() bool {
	return s != StatusLookupFailed && s != StatusNotConfigured
}

// AmazonMatch 매칭된 Amazon 상품과 매칭 점수 정보입니다.
type AmazonMatch struct {
	Record *product.Record `json:"record"`
	Match  *matcher.Result `json:"match"`
}

// Result 조회 결과입니다. 매칭에 실패한 쪽은 null입니다.
type Result struct {
	Query string       `json:"query"`
	Kind  InputKind    `json:"kind"`
	Mode  matcher.Mode `json:"mode"`

	Status Status `json:"status"`

	Rakuten       *product.Record `json:"rakuten"`
	RakutenStatus Status          `json:"rakuten_status"`

	Amazon       *AmazonMatch `json:"amazon"`
	AmazonStatus Status       `json:"amazon_status"`

	// Candidates 매칭에 사용된 Amazon 후보 수
	Candidates int `json:"candidates"`

	Cached bool `json:"cached"`
}

// overallStatus 양쪽 상태를 합쳐 전체 상태를 정합니다.
//
// matched > invalid_match > not_configured > lookup_failed > not_found > no_match 순으로 우선합니다.
func overallStatus(rakutenStatus, amazonStatus Status) Status {
	switch {
	case amazonStatus == StatusMatched:
		return StatusMatched
	case amazonStatus == StatusInvalidMatch:
		return StatusInvalidMatch
	case rakutenStatus == StatusNotConfigured || amazonStatus == StatusNotConfigured:
		return StatusNotConfigured
	case rakutenStatus == StatusLookupFailed || amazonStatus == StatusLookupFailed:
		return StatusLookupFailed
	case rakutenStatus == StatusNotFound && amazonStatus != StatusNoMatch:
		return StatusNotFound
	default:
		return StatusNoMatch
	}
}
