package scraper

import (
	"bytes"
	"context"
	"io"
	"net/http"

	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/darkkaiser/hoplink/pkg/strutil"
	"github.com/tidwall/gjson"
)

// maxPreviewRunes 에러 메시지에 포함할 응답 본문 미리보기 길이
const maxPreviewRunes = 256

func (s *scraper) FetchJSON(ctx context.Context, method, rawURL string, body []byte, header http.Header) (gjson.Result, error) {
	if body != nil {
		if header == nil {
			header = make(http.Header)
		} else {
			header = header.Clone()
		}
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", "application/json")
		}
	}

	resp, respBody, err := s.do(ctx, method, rawURL, body, header, "application/json")
	if err != nil {
		return gjson.Result{}, err
	}

	contentType := resp.Header.Get("Content-Type")
	if isHTMLContentType(contentType) {
		return gjson.Result{}, newErrUnexpectedHTMLResponse(rawURL, contentType)
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 {
		return gjson.Result{}, nil
	}

	if !gjson.ValidBytes(respBody) {
		return gjson.Result{}, newErrInvalidJSON(rawURL, strutil.TruncateRunes(string(respBody), maxPreviewRunes))
	}

	return gjson.ParseBytes(respBody), nil
}

func (s *scraper) ResolveURL(ctx context.Context, rawURL string) (string, error) {
	resp, _, err := s.do(ctx, http.MethodGet, rawURL, nil, nil, acceptHTML)
	if err != nil {
		return "", err
	}

	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String(), nil
	}
	return rawURL, nil
}

// do 요청을 보내고 크기 제한 안에서 응답 본문 전체를 읽습니다.
func (s *scraper) do(ctx context.Context, method, rawURL string, body []byte, header http.Header, accept string) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, nil, newErrCreateHTTPRequest(rawURL, err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := s.fetcher.Do(req)
	if err != nil {
		return nil, nil, newErrRequestFailed(rawURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(&contextAwareReader{ctx: ctx, r: resp.Body}, s.maxResponseBodySize+1))
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, newErrRequestFailed(rawURL, ctx.Err())
		}
		return nil, nil, newErrReadResponseBody(err)
	}
	if int64(len(data)) > s.maxResponseBodySize {
		return nil, nil, newErrResponseBodyTooLarge(s.maxResponseBodySize, rawURL)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"method":      method,
		"status_code": resp.StatusCode,
		"body_size":   len(data),
	}).WithContext(ctx).Debug("응답 수신 완료")

	return resp, data, nil
}
