// Package mocks fetcher 패키지를 사용하는 코드의 테스트를 위한 Mock 구현체를 제공합니다.
//
//   - MockFetcher: testify/mock 기반. 호출 인자와 횟수를 검증할 때 사용합니다.
//   - MockHTTPFetcher: URL별 응답/에러를 미리 등록해 두는 스크립트형 구현체입니다.
package mocks

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/darkkaiser/hoplink/internal/service/lookup/fetcher"
	"github.com/stretchr/testify/mock"
)

var _ fetcher.Fetcher = (*MockFetcher)(nil)
var _ fetcher.Fetcher = (*MockHTTPFetcher)(nil)

// ----------------------------------------------------------------------------
// MockFetcher
// ----------------------------------------------------------------------------

// MockFetcher Fetcher 인터페이스의 testify Mock 구현체입니다.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

// NewMockResponse 주어진 본문과 상태 코드를 가진 http.Response를 생성합니다.
func NewMockResponse(body string, statusCode int) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

// ----------------------------------------------------------------------------
// MockHTTPFetcher
// ----------------------------------------------------------------------------

type mockResponse struct {
	body       []byte
	statusCode int
	header     http.Header
}

// RequestRecord MockHTTPFetcher가 받은 요청 정보입니다.
type RequestRecord struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// MockHTTPFetcher URL별로 등록된 응답을 돌려주는 Fetcher입니다.
//
// 요청 URL과 정확히 일치하는 항목을 먼저 찾고, 없으면 쿼리 문자열을 제외한 URL로 찾습니다.
// 등록되지 않은 URL은 404 응답을 반환합니다.
type MockHTTPFetcher struct {
	mu        sync.Mutex
	responses map[string]mockResponse
	errors    map[string]error
	requests  []RequestRecord
}

// NewMockHTTPFetcher 새로운 MockHTTPFetcher를 생성합니다.
func NewMockHTTPFetcher() *MockHTTPFetcher {
	return &MockHTTPFetcher{
		responses: make(map[string]mockResponse),
		errors:    make(map[string]error),
	}
}

// SetResponse URL에 대한 200 OK 응답을 등록합니다.
func (m *MockHTTPFetcher) SetResponse(url string, body []byte) {
	m.SetResponseWithStatus(url, body, http.StatusOK)
}

// SetResponseWithStatus URL에 대한 응답 본문과 상태 코드를 등록합니다.
func (m *MockHTTPFetcher) SetResponseWithStatus(url string, body []byte, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	resp := m.responses[url]
	resp.body = body
	resp.statusCode = statusCode
	if resp.header == nil {
		resp.header = make(http.Header)
	}
	m.responses[url] = resp
}

// SetHeader URL 응답에 헤더를 추가합니다. 응답이 없으면 빈 200 OK 응답으로 초기화합니다.
func (m *MockHTTPFetcher) SetHeader(url, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	resp, exists := m.responses[url]
	if !exists {
		resp = mockResponse{statusCode: http.StatusOK}
	}
	if resp.header == nil {
		resp.header = make(http.Header)
	}
	resp.header.Set(key, value)
	m.responses[url] = resp
}

// SetError URL 요청 시 반환할 에러를 등록합니다.
func (m *MockHTTPFetcher) SetError(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errors[url] = err
}

func (m *MockHTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	var body []byte
	if req.Body != nil {
		var err error
		if body, err = io.ReadAll(req.Body); err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	fullURL := req.URL.String()
	u := *req.URL
	u.RawQuery = ""
	baseURL := u.String()

	m.mu.Lock()
	m.requests = append(m.requests, RequestRecord{
		Method: req.Method,
		URL:    fullURL,
		Header: req.Header.Clone(),
		Body:   body,
	})

	err, hasErr := m.errors[fullURL]
	if !hasErr {
		err, hasErr = m.errors[baseURL]
	}
	resp, hasResp := m.responses[fullURL]
	if !hasResp {
		resp, hasResp = m.responses[baseURL]
	}
	m.mu.Unlock()

	if hasErr {
		return nil, err
	}

	if !hasResp {
		resp = mockResponse{statusCode: http.StatusNotFound}
	}

	header := make(http.Header)
	if resp.header != nil {
		header = resp.header.Clone()
	}

	return &http.Response{
		StatusCode:    resp.statusCode,
		Status:        http.StatusText(resp.statusCode),
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(resp.body)),
		ContentLength: int64(len(resp.body)),
		Request:       req,
	}, nil
}

// GetRequests 기록된 요청 목록의 복사본을 반환합니다.
func (m *MockHTTPFetcher) GetRequests() []RequestRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]RequestRecord, len(m.requests))
	copy(records, m.requests)
	return records
}

// GetCallCount 쿼리 문자열을 제외한 URL이 일치하는 요청 횟수를 반환합니다.
func (m *MockHTTPFetcher) GetCallCount(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, r := range m.requests {
		if r.URL == url || strings.SplitN(r.URL, "?", 2)[0] == url {
			count++
		}
	}
	return count
}
