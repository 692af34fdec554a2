package lookup_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup"
	"github.com/darkkaiser/hoplink/internal/service/lookup/cache"
	"github.com/darkkaiser/hoplink/internal/service/lookup/matcher"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	"github.com/darkkaiser/hoplink/internal/service/lookup/provider/amazon"
	"github.com/darkkaiser/hoplink/internal/service/lookup/provider/rakuten"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// =============================================================================
// Test Helpers & Stubs
// =============================================================================

const (
	testJAN   = "4901234567890"
	otherJAN  = "4909876543210"
	itemURL   = "https://item.rakuten.co.jp/beershop/craft-gift/"
	affURL    = "https://hb.afl.rakuten.co.jp/hgc/abc/?pc=https%3A%2F%2Fitem.rakuten.co.jp%2Fbeershop%2Fcraft-gift%2F%3Fscid%3Daf"
	craftName = "クラフトビールギフトセット"
)

type fakeRakuten struct {
	mu sync.Mutex

	configured bool
	record     *product.Record
	err        error

	calls     int
	lastInput string
}

func (f *fakeRakuten) Configured() bool { return f.configured }

func (f *fakeRakuten) Resolve(_ context.Context, input string) (*product.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.lastInput = input
	return f.record, f.err
}

func (f *fakeRakuten) SearchByJAN(ctx context.Context, jan string) ([]*product.Record, error) {
	return f.search(ctx, jan)
}

func (f *fakeRakuten) SearchByKeyword(ctx context.Context, keyword string) ([]*product.Record, error) {
	return f.search(ctx, keyword)
}

func (f *fakeRakuten) search(_ context.Context, input string) ([]*product.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.lastInput = input
	if f.err != nil || f.record == nil {
		return nil, f.err
	}
	return []*product.Record{f.record}, nil
}

func (f *fakeRakuten) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeAmazon struct {
	mu sync.Mutex

	configured bool
	candidates []*product.Record
	err        error

	// failFor 이 ID의 원본에 대해서는 에러(또는 panic)를 반환합니다.
	failFor  string
	panicFor string

	// defaults 설정 파일의 기본 키워드 검색 조건
	defaults amazon.SearchOptions

	calls      int
	lastSource *product.Record
	lastOpts   amazon.SearchOptions
}

func (f *fakeAmazon) Configured() bool { return f.configured }

func (f *fakeAmazon) DefaultSearchOptions() amazon.SearchOptions { return f.defaults }

func (f *fakeAmazon) FindCandidates(ctx context.Context, source *product.Record) ([]*product.Record, error) {
	return f.FindCandidatesWithOptions(ctx, source, f.defaults)
}

func (f *fakeAmazon) FindCandidatesWithOptions(_ context.Context, source *product.Record, opts amazon.SearchOptions) ([]*product.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.lastSource = source
	f.lastOpts = opts

	if source.ID == f.panicFor {
		panic("simulated vendor outage")
	}
	if source.ID == f.failFor {
		return nil, apperrors.New(apperrors.Unavailable, "PA-API 503")
	}
	return f.candidates, f.err
}

func (f *fakeAmazon) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func rakutenRecord(t *testing.T, opts ...product.Option) *product.Record {
	t.Helper()

	opts = append([]product.Option{product.WithPrice(3000), product.WithURL(itemURL)}, opts...)
	rec, err := product.New(product.PlatformRakuten, "beershop:craft-gift", craftName, opts...)
	require.NoError(t, err)
	return rec
}

func amazonRecord(t *testing.T, asin, name string, opts ...product.Option) *product.Record {
	t.Helper()

	rec, err := product.New(product.PlatformAmazon, asin, name, opts...)
	require.NoError(t, err)
	return rec
}

type fixture struct {
	svc     *lookup.Service
	rakuten *fakeRakuten
	amazon  *fakeAmazon
	store   cache.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	r := &fakeRakuten{configured: true, record: rakutenRecord(t, product.WithJANCode(testJAN))}
	a := &fakeAmazon{configured: true, candidates: []*product.Record{
		amazonRecord(t, "B000UNREL1", "スタウト 12本", product.WithPrice(9000)),
		amazonRecord(t, "B000CRAFT1", "クラフトビール ギフト セット", product.WithPrice(3100), product.WithJANCode(testJAN)),
	}}
	store := cache.NewMemoryStore()

	return &fixture{
		svc:     lookup.NewService(lookup.Config{MaxBatchSize: 5}, r, a, store),
		rakuten: r,
		amazon:  a,
		store:   store,
	}
}

// =============================================================================
// DetectKind
// =============================================================================

func TestDetectKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  lookup.InputKind
	}{
		{itemURL, lookup.KindURL},
		{affURL, lookup.KindURL},
		{"beershop:craft-gift", lookup.KindURL},
		{"https://r10.to/hAbCdE", lookup.KindURL},
		{"https://www.amazon.co.jp/dp/B000CRAFT1", lookup.KindURL},
		{testJAN, lookup.KindJAN},
		{"4901-2345-67890", lookup.KindJAN},
		{"４９０１２３４５６７８９０", lookup.KindJAN},
		{"49012345", lookup.KindJAN},
		{"123456789", lookup.KindKeyword},
		{"IPA 6本セット", lookup.KindKeyword},
		{craftName, lookup.KindKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lookup.DetectKind(tt.input))
		})
	}
}

// =============================================================================
// Lookup
// =============================================================================

func TestLookup_Matched(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	res, err := f.svc.Lookup(context.Background(), lookup.Request{Query: itemURL, Mode: "normal"})
	require.NoError(t, err)

	assert.Equal(t, lookup.StatusMatched, res.Status)
	assert.Equal(t, lookup.StatusFound, res.RakutenStatus)
	assert.Equal(t, lookup.StatusMatched, res.AmazonStatus)
	assert.Equal(t, lookup.KindURL, res.Kind)
	assert.Equal(t, 2, res.Candidates)
	assert.False(t, res.Cached)

	require.NotNil(t, res.Rakuten)
	assert.Equal(t, "beershop:craft-gift", res.Rakuten.ID)

	require.NotNil(t, res.Amazon)
	assert.Equal(t, "B000CRAFT1", res.Amazon.Record.ID)
	assert.True(t, res.Amazon.Match.HasFactor(matcher.FactorJAN))
	assert.Equal(t, matcher.ConfidenceHigh, res.Amazon.Match.Confidence)

	assert.Equal(t, itemURL, f.rakuten.lastInput)
}

func TestLookup_Cache(t *testing.T) {
	t.Parallel()

	t.Run("두 번째 조회는 캐시에서 반환", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		ctx := context.Background()

		first, err := f.svc.Lookup(ctx, lookup.Request{Query: itemURL})
		require.NoError(t, err)

		second, err := f.svc.Lookup(ctx, lookup.Request{Query: itemURL + "?scid=af_pc_etc#reviews"})
		require.NoError(t, err)

		assert.True(t, second.Cached)
		assert.Equal(t, first.Status, second.Status)
		assert.Equal(t, first.Amazon.Record.ID, second.Amazon.Record.ID)
		assert.Equal(t, 1, f.rakuten.callCount())
		assert.Equal(t, 1, f.amazon.callCount())
	})

	t.Run("어필리에이트 링크는 상품 URL과 같은 키를 사용", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		ctx := context.Background()

		_, err := f.svc.Lookup(ctx, lookup.Request{Query: itemURL})
		require.NoError(t, err)

		res, err := f.svc.Lookup(ctx, lookup.Request{Query: affURL})
		require.NoError(t, err)
		assert.True(t, res.Cached)
		assert.Equal(t, 1, f.rakuten.callCount())
	})

	t.Run("모드와 검색 옵션은 키에 포함", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		ctx := context.Background()

		_, err := f.svc.Lookup(ctx, lookup.Request{Query: itemURL, Mode: "strict"})
		require.NoError(t, err)
		res, err := f.svc.Lookup(ctx, lookup.Request{Query: itemURL, Mode: "loose"})
		require.NoError(t, err)
		assert.False(t, res.Cached)

		res, err = f.svc.Lookup(ctx, lookup.Request{Query: itemURL, Mode: "loose", Options: map[string]any{"min_price": 1000}})
		require.NoError(t, err)
		assert.False(t, res.Cached)
		assert.Equal(t, 1000, f.amazon.lastOpts.MinPrice)

		assert.Equal(t, 3, f.amazon.callCount())
	})

	t.Run("설정된 기본 검색 조건 위에 요청 옵션을 덮어씀", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.amazon.defaults = amazon.SearchOptions{SearchIndex: "Grocery", ItemCount: 3}
		ctx := context.Background()

		_, err := f.svc.Lookup(ctx, lookup.Request{Query: itemURL})
		require.NoError(t, err)
		assert.Equal(t, amazon.SearchOptions{SearchIndex: "Grocery", ItemCount: 3}, f.amazon.lastOpts)

		_, err = f.svc.Lookup(ctx, lookup.Request{Query: itemURL, Options: map[string]any{"min_price": 1000}})
		require.NoError(t, err)
		assert.Equal(t, amazon.SearchOptions{SearchIndex: "Grocery", MinPrice: 1000, ItemCount: 3}, f.amazon.lastOpts)

		assert.Equal(t, 2, f.amazon.callCount())
	})

	t.Run("기본 검색 조건이 다르면 다른 키", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		ctx := context.Background()

		_, err := f.svc.Lookup(ctx, lookup.Request{Query: itemURL})
		require.NoError(t, err)

		grocery := &fakeAmazon{configured: true, candidates: f.amazon.candidates, defaults: amazon.SearchOptions{SearchIndex: "Grocery"}}
		other := lookup.NewService(lookup.Config{}, f.rakuten, grocery, f.store)

		res, err := other.Lookup(ctx, lookup.Request{Query: itemURL})
		require.NoError(t, err)
		assert.False(t, res.Cached)
		assert.Equal(t, "Grocery", grocery.lastOpts.SearchIndex)
	})

	t.Run("실패한 결과는 캐시하지 않음", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.amazon.err = apperrors.New(apperrors.Unavailable, "PA-API 429")
		ctx := context.Background()

		res, err := f.svc.Lookup(ctx, lookup.Request{Query: itemURL})
		require.NoError(t, err)
		assert.Equal(t, lookup.StatusLookupFailed, res.Status)

		res, err = f.svc.Lookup(ctx, lookup.Request{Query: itemURL})
		require.NoError(t, err)
		assert.False(t, res.Cached)
		assert.Equal(t, 2, f.amazon.callCount())
	})

	t.Run("손상된 캐시 항목은 무시하고 다시 조회", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		ctx := context.Background()

		_, err := f.svc.Lookup(ctx, lookup.Request{Query: testJAN})
		require.NoError(t, err)

		key := cache.Key(cache.NamespaceJAN, testJAN, "normal")
		require.NoError(t, f.store.Set(ctx, key, []byte("{broken"), time.Hour))

		res, err := f.svc.Lookup(ctx, lookup.Request{Query: testJAN})
		require.NoError(t, err)
		assert.False(t, res.Cached)
		assert.Equal(t, 2, f.amazon.callCount())
	})

	t.Run("PurgeCache 이후 다시 조회", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		ctx := context.Background()

		_, err := f.svc.Lookup(ctx, lookup.Request{Query: itemURL})
		require.NoError(t, err)
		require.NoError(t, f.svc.PurgeCache(ctx))

		res, err := f.svc.Lookup(ctx, lookup.Request{Query: itemURL})
		require.NoError(t, err)
		assert.False(t, res.Cached)
		assert.Equal(t, 2, f.rakuten.callCount())
	})
}

func TestLookup_Degradation(t *testing.T) {
	t.Parallel()

	t.Run("Amazon 실패 시 Rakuten 결과는 유지", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.amazon.err = apperrors.New(apperrors.Unavailable, "PA-API 503")

		res, err := f.svc.Lookup(context.Background(), lookup.Request{Query: itemURL})
		require.NoError(t, err)

		assert.Equal(t, lookup.StatusLookupFailed, res.Status)
		assert.Equal(t, lookup.StatusFound, res.RakutenStatus)
		assert.Equal(t, lookup.StatusLookupFailed, res.AmazonStatus)
		assert.NotNil(t, res.Rakuten)
		assert.Nil(t, res.Amazon)
	})

	t.Run("Amazon 미설정은 not_configured", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.amazon.configured = false

		res, err := f.svc.Lookup(context.Background(), lookup.Request{Query: itemURL})
		require.NoError(t, err)

		assert.Equal(t, lookup.StatusNotConfigured, res.Status)
		assert.Equal(t, lookup.StatusNotConfigured, res.AmazonStatus)
		assert.NotNil(t, res.Rakuten)
		assert.Zero(t, f.amazon.callCount())
	})

	t.Run("Rakuten 미설정이어도 JAN 조회는 Amazon에서 매칭", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.rakuten.configured = false

		res, err := f.svc.Lookup(context.Background(), lookup.Request{Query: "4901-2345-67890"})
		require.NoError(t, err)

		assert.Equal(t, lookup.StatusMatched, res.Status)
		assert.Equal(t, lookup.StatusNotConfigured, res.RakutenStatus)
		assert.Nil(t, res.Rakuten)
		require.NotNil(t, res.Amazon)
		assert.Equal(t, "B000CRAFT1", res.Amazon.Record.ID)
		assert.Equal(t, testJAN, f.amazon.lastSource.JANCode)
	})

	t.Run("Rakuten 실패 시 URL 조회는 Amazon 검색 생략", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.rakuten.err = apperrors.New(apperrors.Unavailable, "Ichiba 503")

		res, err := f.svc.Lookup(context.Background(), lookup.Request{Query: itemURL})
		require.NoError(t, err)

		assert.Equal(t, lookup.StatusLookupFailed, res.Status)
		assert.Equal(t, lookup.StatusSkipped, res.AmazonStatus)
		assert.Zero(t, f.amazon.callCount())
	})

	t.Run("Amazon의 NotConfigured 에러도 not_configured", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.amazon.err = amazon.ErrNotConfigured

		res, err := f.svc.Lookup(context.Background(), lookup.Request{Query: itemURL})
		require.NoError(t, err)
		assert.Equal(t, lookup.StatusNotConfigured, res.AmazonStatus)
	})
}

func TestLookup_TerminalStates(t *testing.T) {
	t.Parallel()

	t.Run("상품 없음", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.rakuten.record = nil

		res, err := f.svc.Lookup(context.Background(), lookup.Request{Query: itemURL})
		require.NoError(t, err)

		assert.Equal(t, lookup.StatusNotFound, res.Status)
		assert.Equal(t, lookup.StatusNotFound, res.RakutenStatus)
		assert.Equal(t, lookup.StatusSkipped, res.AmazonStatus)

		res, err = f.svc.Lookup(context.Background(), lookup.Request{Query: itemURL})
		require.NoError(t, err)
		assert.True(t, res.Cached, "상품 없음도 캐시되어야 합니다")
	})

	t.Run("단축 URL이 상품 페이지가 아니면 not_found", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.rakuten.err = apperrors.New(apperrors.InvalidInput, "단축 URL이 상품 페이지로 연결되지 않습니다")

		res, err := f.svc.Lookup(context.Background(), lookup.Request{Query: "https://r10.to/hAbCdE"})
		require.NoError(t, err)
		assert.Equal(t, lookup.StatusNotFound, res.Status)
	})

	t.Run("관련 없는 후보만 있으면 no_match", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.rakuten.record = rakutenRecord(t)
		f.amazon.candidates = []*product.Record{amazonRecord(t, "B000UNREL1", "スタウト 12本", product.WithPrice(9000))}

		res, err := f.svc.Lookup(context.Background(), lookup.Request{Query: "IPA 6本セット", Mode: "loose"})
		require.NoError(t, err)

		assert.Equal(t, lookup.StatusNoMatch, res.Status)
		assert.Equal(t, lookup.KindKeyword, res.Kind)
		assert.Nil(t, res.Amazon)
		assert.Equal(t, "IPA 6本セット", f.rakuten.lastInput)
	})

	t.Run("JAN이 다른 후보는 invalid_match", func(t *testing.T) {
		t.Parallel()

		// JAN 불일치(0) + 상품명(1) + 브랜드(1) + 가격(1) = 6/11
		f := newFixture(t)
		f.rakuten.record = rakutenRecord(t, product.WithJANCode(testJAN), product.WithBrand("CraftWorks"))
		f.amazon.candidates = []*product.Record{
			amazonRecord(t, "B000OTHER1", craftName, product.WithPrice(3000), product.WithJANCode(otherJAN), product.WithBrand("CraftWorks")),
		}

		res, err := f.svc.Lookup(context.Background(), lookup.Request{Query: itemURL, Mode: "loose"})
		require.NoError(t, err)

		assert.Equal(t, lookup.StatusInvalidMatch, res.Status)
		assert.Nil(t, res.Amazon)
		assert.NotNil(t, res.Rakuten)
	})
}

func TestLookup_InvalidRequests(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	tests := []struct {
		name string
		req  lookup.Request
	}{
		{"빈 검색어", lookup.Request{Query: "  "}},
		{"알 수 없는 모드", lookup.Request{Query: itemURL, Mode: "fuzzy"}},
		{"Rakuten이 아닌 URL", lookup.Request{Query: "https://www.amazon.co.jp/dp/B000CRAFT1"}},
		{"잘못된 검색 옵션", lookup.Request{Query: itemURL, Options: map[string]any{"color": "red"}}},
		{"형식이 맞지 않는 JAN", lookup.Request{Query: "12345", Kind: lookup.KindJAN}},
		{"알 수 없는 조회 종류", lookup.Request{Query: itemURL, Kind: "asin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := f.svc.Lookup(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput), err.Error())
		})
	}

	assert.Zero(t, f.rakuten.callCount())
}

func TestResult_JSON(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	res, err := f.svc.Lookup(context.Background(), lookup.Request{Query: itemURL})
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "matched", decoded["status"])
	assert.Contains(t, decoded, "rakuten")
	amazonPart, ok := decoded["amazon"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, amazonPart, "record")
	assert.Contains(t, amazonPart, "match")
}

// =============================================================================
// Batch / BatchMatch
// =============================================================================

func TestBatch(t *testing.T) {
	t.Parallel()

	t.Run("잘못된 항목은 해당 항목에만 기록", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		items, err := f.svc.Batch(context.Background(), []lookup.Request{
			{Query: itemURL},
			{Query: ""},
			{Query: testJAN},
		})
		require.NoError(t, err)
		require.Len(t, items, 3)

		assert.Equal(t, lookup.StatusMatched, items[0].Result.Status)
		assert.Nil(t, items[1].Result)
		assert.NotEmpty(t, items[1].Error)
		assert.Equal(t, lookup.StatusMatched, items[2].Result.Status)
	})

	t.Run("항목 수 제한", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, err := f.svc.Batch(context.Background(), make([]lookup.Request, 6))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))

		_, err = f.svc.Batch(context.Background(), nil)
		assert.ErrorIs(t, err, lookup.ErrEmptyBatch)
	})
}

func TestBatchMatch(t *testing.T) {
	t.Parallel()

	newSource := func(t *testing.T, id string) *product.Record {
		rec, err := product.New(product.PlatformRakuten, id, craftName,
			product.WithPrice(3000), product.WithJANCode(testJAN), product.WithBrand("CraftWorks"))
		require.NoError(t, err)
		return rec
	}

	t.Run("한 원본의 실패가 나머지에 영향을 주지 않음", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.amazon.panicFor = "shop:b"

		outcomes, err := f.svc.BatchMatch(context.Background(), []*product.Record{
			newSource(t, "shop:a"),
			newSource(t, "shop:b"),
			newSource(t, "shop:c"),
		}, "normal")
		require.NoError(t, err)
		require.Len(t, outcomes, 3)

		assert.Equal(t, lookup.StatusMatched, outcomes[0].Status)
		assert.True(t, outcomes[0].Matched)

		assert.Equal(t, lookup.StatusLookupFailed, outcomes[1].Status)
		assert.False(t, outcomes[1].Matched)
		assert.NotEmpty(t, outcomes[1].Error)

		assert.Equal(t, lookup.StatusMatched, outcomes[2].Status)
	})

	t.Run("유효성 검사에 실패한 매칭", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.amazon.candidates = []*product.Record{
			amazonRecord(t, "B000OTHER1", craftName, product.WithPrice(3000), product.WithJANCode(otherJAN), product.WithBrand("CraftWorks")),
		}

		outcomes, err := f.svc.BatchMatch(context.Background(), []*product.Record{newSource(t, "shop:a")}, "loose")
		require.NoError(t, err)
		assert.Equal(t, lookup.StatusInvalidMatch, outcomes[0].Status)
		assert.False(t, outcomes[0].Matched)
	})

	t.Run("Amazon 미설정", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.amazon.configured = false

		outcomes, err := f.svc.BatchMatch(context.Background(), []*product.Record{newSource(t, "shop:a")}, "")
		require.NoError(t, err)
		assert.Equal(t, lookup.StatusNotConfigured, outcomes[0].Status)
		assert.Zero(t, f.amazon.callCount())
	})

	t.Run("알 수 없는 모드", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, err := f.svc.BatchMatch(context.Background(), []*product.Record{newSource(t, "shop:a")}, "exact")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})
}

// =============================================================================
// Lifecycle
// =============================================================================

type closeTrackingStore struct {
	cache.Store

	mu     sync.Mutex
	closed bool
}

func (s *closeTrackingStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func TestService_StartStop(t *testing.T) {
	store := &closeTrackingStore{Store: cache.NewMemoryStore()}
	svc := lookup.NewService(lookup.Config{}, &fakeRakuten{}, &fakeAmazon{}, store)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	wg.Add(1)
	require.NoError(t, svc.Start(ctx, wg))

	wg.Add(1)
	require.NoError(t, svc.Start(ctx, wg), "중복 시작은 에러 없이 무시되어야 합니다")

	cancel()
	wg.Wait()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.True(t, store.closed)
}

type failingStore struct {
	cache.Store
}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func TestService_Health(t *testing.T) {
	t.Parallel()

	t.Run("모든 의존성 정상", func(t *testing.T) {
		t.Parallel()

		deps := newFixture(t).svc.Health(context.Background())
		assert.Len(t, deps, 3)
		assert.NoError(t, deps[lookup.DependencyRakuten])
		assert.NoError(t, deps[lookup.DependencyAmazon])
		assert.NoError(t, deps[lookup.DependencyCache])
	})

	t.Run("자격증명 미설정과 캐시 장애", func(t *testing.T) {
		t.Parallel()

		svc := lookup.NewService(lookup.Config{}, &fakeRakuten{}, &fakeAmazon{}, failingStore{Store: cache.NewMemoryStore()})
		deps := svc.Health(context.Background())

		assert.ErrorIs(t, deps[lookup.DependencyRakuten], rakuten.ErrNotConfigured)
		assert.ErrorIs(t, deps[lookup.DependencyAmazon], amazon.ErrNotConfigured)
		assert.EqualError(t, deps[lookup.DependencyCache], "connection refused")
	})
}

func TestNewService_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { lookup.NewService(lookup.Config{}, nil, &fakeAmazon{}, cache.NewMemoryStore()) })
	assert.Panics(t, func() { lookup.NewService(lookup.Config{}, &fakeRakuten{}, nil, cache.NewMemoryStore()) })
	assert.Panics(t, func() { lookup.NewService(lookup.Config{}, &fakeRakuten{}, &fakeAmazon{}, nil) })
}

var _ lookup.RakutenResolver = (*rakuten.Client)(nil)
var _ lookup.AmazonFinder = (*amazon.Client)(nil)
