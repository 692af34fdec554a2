// Package scraper fetcher 체인 위에서 HTML 문서와 JSON API 응답을 가져와 파싱합니다.
//
// HTML은 응답 헤더와 문서 앞부분을 근거로 인코딩(EUC-JP, Shift_JIS 등)을 감지해 UTF-8로 변환한 뒤
// goquery 문서로, JSON은 유효성을 검사한 뒤 gjson 결과로 돌려줍니다.
package scraper

import (
	"context"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/hoplink/internal/service/lookup/fetcher"
	"github.com/tidwall/gjson"
)

const component = "lookup.scraper"

// defaultMaxBodySize 응답 본문의 기본 최대 크기 (10MB)
const defaultMaxBodySize = 10 * 1024 * 1024

// Scraper 상품 페이지와 상점 API를 읽어오는 인터페이스입니다.
type Scraper interface {
	// FetchHTML GET 요청으로 HTML 문서를 가져와 파싱합니다.
	FetchHTML(ctx context.Context, url string, header http.Header) (*goquery.Document, error)

	// ParseHTML 이미 확보한 HTML 데이터를 파싱합니다. contentType은 인코딩 감지의 힌트로 사용됩니다.
	ParseHTML(ctx context.Context, r io.Reader, url, contentType string) (*goquery.Document, error)

	// FetchJSON 요청을 보내고 응답 본문을 JSON으로 검증해 반환합니다. body가 nil이면 본문 없이 요청합니다.
	FetchJSON(ctx context.Context, method, url string, body []byte, header http.Header) (gjson.Result, error)

	// ResolveURL 리다이렉트를 따라간 최종 URL을 반환합니다. 단축 URL 확장에 사용합니다.
	ResolveURL(ctx context.Context, url string) (string, error)
}

type scraper struct {
	fetcher fetcher.Fetcher

	maxResponseBodySize int64
}

// Option scraper 설정 옵션입니다.
type Option func(*scraper)

// WithMaxResponseBodySize 응답 본문의 최대 크기를 설정합니다. 0 이하면 무시합니다.
func WithMaxResponseBodySize(size int64) Option {
	return func(s *scraper) {
		if size > 0 {
			s.maxResponseBodySize = size
		}
	}
}

// New 새로운 Scraper를 생성합니다. f가 nil이면 패닉이 발생합니다.
func New(f fetcher.Fetcher, opts ...Option) Scraper {
	if f == nil {
		panic("Fetcher는 필수입니다")
	}

	s := &scraper{
		fetcher:             f,
		maxResponseBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// contextAwareReader 매 Read 호출 전에 컨텍스트 취소 여부를 확인하는 io.Reader입니다.
type contextAwareReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *contextAwareReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
