package lookup

import (
	"strings"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup/cache"
	"github.com/darkkaiser/hoplink/internal/service/lookup/matcher"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	"github.com/darkkaiser/hoplink/internal/service/lookup/provider/amazon"
	"github.com/darkkaiser/hoplink/internal/service/lookup/provider/rakuten"
	"github.com/darkkaiser/hoplink/pkg/strutil"
)

// maxQueryRunes 검색어 최대 길이
const maxQueryRunes = 500

// InputKind 조회 입력의 종류입니다.
type InputKind string

const (
	KindURL     InputKind = "url"
	KindJAN     InputKind = "jan"
	KindKeyword InputKind = "keyword"
)

// Request 파이프라인 조회 요청입니다.
type Request struct {
	// Query Rakuten 상품 URL(또는 shop:item 상품 코드), JAN 코드, 검색 키워드 중 하나
	Query string `json:"query"`

	// Kind 비어 있으면 Query의 형태로 판단합니다.
	Kind InputKind `json:"kind,omitempty"`

	// Mode strict, normal, loose (비어 있으면 기본 모드)
	Mode string `json:"mode,omitempty"`

	// Options Amazon 키워드 검색 조건 (search_index, min_price, max_price, item_count)
	Options map[string]any `json:"options,omitempty"`
}

// query 검증과 정규화를 마친 요청입니다.
type query struct {
	raw     string
	kind    InputKind
	mode    matcher.Mode
	options amazon.SearchOptions

	// input Rakuten 조회에 넘길 값 (URL은 원문, JAN은 정규화된 숫자)
	input string

	key string
}

// DetectKind 입력 문자열의 형태로 조회 종류를 판단합니다.
func DetectKind(input string) InputKind {
	input = strings.TrimSpace(input)

	if rakuten.IsRakutenURL(input) || strings.Contains(input, "://") {
		return KindURL
	}
	if looksLikeJAN(input) {
		return KindJAN
	}
	return KindKeyword
}

// looksLikeJAN 숫자, 하이픈, 공백으로만 이루어진 8/13자리 코드인지 확인합니다.
func looksLikeJAN(input string) bool {
	for _, r := range input {
		switch {
		case r >= '0' && r <= '9', r >= '０' && r <= '９', r == '-', r == ' ':
		default:
			return false
		}
	}
	_, ok := product.NormalizeJAN(input)
	return ok
}

func (s *Service) prepare(req Request) (*query, error) {
	raw := strings.TrimSpace(req.Query)
	if raw == "" {
		return nil, ErrEmptyQuery
	}
	if len([]rune(raw)) > maxQueryRunes {
		return nil, apperrors.Newf(apperrors.InvalidInput, "검색어가 너무 깁니다 (최대 %d자)", maxQueryRunes)
	}

	mode := s.cfg.DefaultMode
	if strings.TrimSpace(req.Mode) != "" {
		m, err := matcher.ParseMode(req.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	// 요청 옵션은 설정된 기본 검색 조건 위에 덮어쓴다. 캐시 키도 합쳐진 값으로 만든다.
	options, err := amazon.ParseSearchOptions(s.amazon.DefaultSearchOptions(), req.Options)
	if err != nil {
		return nil, err
	}

	kind := req.Kind
	if kind == "" {
		kind = DetectKind(raw)
	}

	q := &query{raw: raw, kind: kind, mode: mode, options: options}
	optionsPart := cache.NormalizeKeyword("", options.CacheOptions())

	switch kind {
	case KindURL:
		ref, err := rakuten.ParseInput(raw)
		if err != nil {
			return nil, err
		}
		q.input = raw

		// 어필리에이트 링크는 쿼리에 상품 URL이 들어 있으므로 해석된 상품 URL을 키로 쓴다.
		target := ref.ShortURL
		if !ref.IsShortLink() {
			target = ref.CanonicalURL()
		}
		q.key = cache.Key(cache.NamespaceURL, cache.NormalizeURL(target), string(mode), optionsPart)

	case KindJAN:
		jan, ok := product.NormalizeJAN(raw)
		if !ok {
			return nil, apperrors.Newf(apperrors.InvalidInput, "JAN 코드 형식이 올바르지 않습니다: %s", strutil.TruncateRunes(raw, 50))
		}
		q.input = jan
		q.key = cache.Key(cache.NamespaceJAN, cache.NormalizeJAN(jan), string(mode), optionsPart)

	case KindKeyword:
		q.input = strutil.NormalizeSpaces(raw)
		q.key = cache.Key(cache.NamespaceKeyword, cache.NormalizeKeyword(q.input, options.CacheOptions()), string(mode))

	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 조회 종류입니다: '%s' (url, jan, keyword 중 하나)", kind)
	}

	return q, nil
}

// queryRecord Rakuten 상품을 찾지 못한 JAN/키워드 조회에서 Amazon 검색에 사용할 임시 원본입니다.
func (q *query) queryRecord() *product.Record {
	var rec *product.Record
	var err error

	switch q.kind {
	case KindJAN:
		rec, err = product.New(product.PlatformRakuten, "jan:"+q.input, "", product.WithJANCode(q.input))
	case KindKeyword:
		rec, err = product.New(product.PlatformRakuten, "keyword:"+q.input, q.input)
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return rec
}
