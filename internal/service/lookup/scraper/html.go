package scraper

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"golang.org/x/net/html/charset"
)

const acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

func (s *scraper) FetchHTML(ctx context.Context, rawURL string, header http.Header) (*goquery.Document, error) {
	resp, body, err := s.do(ctx, http.MethodGet, rawURL, nil, header, acceptHTML)
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !isHTMLContentType(contentType) {
		applog.WithComponentAndFields(component, applog.Fields{
			"url":          rawURL,
			"content_type": contentType,
		}).Warn("HTML 응답을 기대했으나 비표준 Content-Type이 수신되었습니다 (파싱 계속 진행)")
	}

	// 리다이렉트 후 최종 URL을 문서 기준 URL로 사용
	baseURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		baseURL = resp.Request.URL.String()
	}

	doc, err := s.parseHTML(ctx, bytes.NewReader(body), baseURL, contentType)
	if err != nil {
		return nil, newErrHTMLParseFailed(rawURL, err)
	}
	return doc, nil
}

func (s *scraper) ParseHTML(ctx context.Context, r io.Reader, rawURL, contentType string) (*goquery.Document, error) {
	if r == nil {
		return nil, ErrInputReaderNil
	}
	if err := ctx.Err(); err != nil {
		return nil, newErrRequestFailed(rawURL, err)
	}

	doc, err := s.parseHTML(ctx, io.LimitReader(r, s.maxResponseBodySize), rawURL, contentType)
	if err != nil {
		return nil, newErrHTMLParseFailed(rawURL, err)
	}
	return doc, nil
}

// parseHTML 앞부분 1KB와 Content-Type으로 인코딩을 결정한 뒤 UTF-8로 변환하여 파싱합니다.
func (s *scraper) parseHTML(ctx context.Context, r io.Reader, rawURL, contentType string) (*goquery.Document, error) {
	br := bufio.NewReader(&contextAwareReader{ctx: ctx, r: r})

	peek, _ := br.Peek(1024)
	enc, _, _ := charset.DetermineEncoding(peek, contentType)

	var utf8Reader io.Reader = br
	if enc != nil {
		utf8Reader = enc.NewDecoder().Reader(br)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, err
	}

	if rawURL != "" {
		if u, err := url.Parse(rawURL); err == nil {
			doc.Url = u
		}
	}

	return doc, nil
}

func isHTMLContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
