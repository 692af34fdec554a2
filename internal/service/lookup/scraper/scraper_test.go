package scraper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup/fetcher"
	"github.com/darkkaiser/hoplink/internal/service/lookup/fetcher/mocks"
	"github.com/darkkaiser/hoplink/internal/service/lookup/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

const itemURL = "https://item.rakuten.co.jp/beershop/craft-gift/"

// =============================================================================
// FetchHTML
// =============================================================================

func TestFetchHTML_DecodesJapaneseEncodings(t *testing.T) {
	t.Parallel()

	const page = `<html><head><title>クラフトビール</title></head><body><p class="jan">JANコード：4901234567890</p></body></html>`

	tests := []struct {
		name        string
		contentType string
		encode      func(string) string
	}{
		{"UTF-8", "text/html; charset=UTF-8", func(s string) string { return s }},
		{"EUC-JP", "text/html; charset=EUC-JP", func(s string) string {
			out, _ := japanese.EUCJP.NewEncoder().String(s)
			return out
		}},
		{"Shift_JIS", "text/html; charset=Shift_JIS", func(s string) string {
			out, _ := japanese.ShiftJIS.NewEncoder().String(s)
			return out
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mocks.NewMockHTTPFetcher()
			m.SetResponse(itemURL, []byte(tt.encode(page)))
			m.SetHeader(itemURL, "Content-Type", tt.contentType)

			doc, err := scraper.New(m).FetchHTML(context.Background(), itemURL, nil)
			require.NoError(t, err)

			assert.Equal(t, "クラフトビール", doc.Find("title").Text())
			assert.Equal(t, "JANコード：4901234567890", doc.Find("p.jan").Text())
			assert.Equal(t, itemURL, doc.Url.String())
		})
	}
}

func TestFetchHTML_Errors(t *testing.T) {
	t.Parallel()

	t.Run("404", func(t *testing.T) {
		m := mocks.NewMockHTTPFetcher()
		s := scraper.New(fetcher.NewStatusCodeFetcher(m))

		_, err := s.FetchHTML(context.Background(), "https://item.rakuten.co.jp/missing/", nil)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})

	t.Run("크기 초과", func(t *testing.T) {
		m := mocks.NewMockHTTPFetcher()
		m.SetResponse(itemURL, []byte(strings.Repeat("a", 2048)))

		_, err := scraper.New(m, scraper.WithMaxResponseBodySize(1024)).FetchHTML(context.Background(), itemURL, nil)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
	})

	t.Run("취소된 컨텍스트", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := scraper.New(mocks.NewMockHTTPFetcher()).FetchHTML(ctx, itemURL, nil)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Timeout))
	})
}

func TestParseHTML(t *testing.T) {
	t.Parallel()

	s := scraper.New(mocks.NewMockHTTPFetcher())

	doc, err := s.ParseHTML(context.Background(), strings.NewReader(`<div id="x">IPA</div>`), "", "")
	require.NoError(t, err)
	assert.Equal(t, "IPA", doc.Find("#x").Text())

	_, err = s.ParseHTML(context.Background(), nil, "", "")
	assert.ErrorIs(t, err, scraper.ErrInputReaderNil)
}

// =============================================================================
// FetchJSON
// =============================================================================

func TestFetchJSON(t *testing.T) {
	t.Parallel()

	const apiURL = "https://app.rakuten.co.jp/services/api/IchibaItem/Search/20220601"

	t.Run("정상 응답", func(t *testing.T) {
		m := mocks.NewMockHTTPFetcher()
		m.SetResponse(apiURL, []byte(`{"Items":[{"Item":{"itemName":"IPA","itemPrice":1000}}],"count":1}`))
		m.SetHeader(apiURL, "Content-Type", "application/json;charset=UTF-8")

		result, err := scraper.New(m).FetchJSON(context.Background(), http.MethodGet, apiURL+"?itemCode=shop%3Aitem", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "IPA", result.Get("Items.0.Item.itemName").String())
		assert.Equal(t, int64(1000), result.Get("Items.0.Item.itemPrice").Int())

		requests := m.GetRequests()
		require.Len(t, requests, 1)
		assert.Equal(t, "application/json", requests[0].Header.Get("Accept"))
	})

	t.Run("본문이 있으면 Content-Type 설정", func(t *testing.T) {
		m := mocks.NewMockHTTPFetcher()
		m.SetResponse(apiURL, []byte(`{}`))

		_, err := scraper.New(m).FetchJSON(context.Background(), http.MethodPost, apiURL, []byte(`{"q":1}`), nil)
		require.NoError(t, err)

		requests := m.GetRequests()
		require.Len(t, requests, 1)
		assert.Equal(t, "application/json", requests[0].Header.Get("Content-Type"))
		assert.Equal(t, `{"q":1}`, string(requests[0].Body))
	})

	t.Run("HTML 응답", func(t *testing.T) {
		m := mocks.NewMockHTTPFetcher()
		m.SetResponse(apiURL, []byte(`<html>login</html>`))
		m.SetHeader(apiURL, "Content-Type", "text/html")

		_, err := scraper.New(m).FetchJSON(context.Background(), http.MethodGet, apiURL, nil, nil)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
	})

	t.Run("깨진 JSON", func(t *testing.T) {
		m := mocks.NewMockHTTPFetcher()
		m.SetResponse(apiURL, []byte(`{"Items":[`))

		_, err := scraper.New(m).FetchJSON(context.Background(), http.MethodGet, apiURL, nil, nil)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
	})
}

// =============================================================================
// ResolveURL
// =============================================================================

func TestResolveURL_FollowsRedirects(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/short", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/beershop/craft-gift/", http.StatusFound)
	})
	mux.HandleFunc("/beershop/craft-gift/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	s := scraper.New(fetcher.NewHTTPFetcher())

	resolved, err := s.ResolveURL(context.Background(), ts.URL+"/short")
	require.NoError(t, err)
	assert.Equal(t, ts.URL+"/beershop/craft-gift/", resolved)
}
