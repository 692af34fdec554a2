package amazon

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPageDetails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want pageDetails
	}{
		{
			name: "신형 가격 영역",
			html: `<div id="corePriceDisplay_desktop_feature_div"><span class="a-price"><span class="a-offscreen">￥12,800</span></span></div>
				<span id="acrPopover" title="5つ星のうち3.9"></span>
				<span id="acrCustomerReviewText">87個の評価</span>
				<a id="bylineInfo">Sonyのストアを表示</a>`,
			want: pageDetails{Price: 12800, ReviewCount: 87, ReviewAverage: 3.9, Brand: "Sony"},
		},
		{
			name: "구형 가격 영역",
			html: `<span id="priceblock_ourprice">￥ 980</span><a id="bylineInfo">Visit the Anker Store</a>`,
			want: pageDetails{Price: 980, Brand: "Anker"},
		},
		{
			name: "정보 없음",
			html: `<p>在庫切れ</p>`,
			want: pageDetails{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>" + tt.html + "</body></html>"))
			require.NoError(t, err)

			got := extractPageDetails(doc)
			assert.Equal(t, tt.want.Price, got.Price)
			assert.Equal(t, tt.want.ReviewCount, got.ReviewCount)
			assert.InDelta(t, tt.want.ReviewAverage, got.ReviewAverage, 1e-9)
			assert.Equal(t, tt.want.Brand, got.Brand)
		})
	}
}

func TestParseYen(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3100, parseYen("￥3,100"))
	assert.Equal(t, 3100, parseYen("¥ 3,100円"))
	assert.Equal(t, 1234568, parseYen("1,234,567.5"))
	assert.Zero(t, parseYen("価格なし"))
	assert.Zero(t, parseYen(""))
}

func TestApplyDetails(t *testing.T) {
	t.Parallel()

	orig, err := product.New(product.PlatformAmazon, "B0TEST0001", "テスト", product.WithBrand("Original"))
	require.NoError(t, err)

	got := applyDetails(orig, pageDetails{Price: 500, ReviewCount: 3, ReviewAverage: 4.1, Brand: "Other"})

	assert.Equal(t, 500, got.Price)
	assert.Equal(t, 3, got.ReviewCount)
	assert.Equal(t, "Original", got.Brand, "기존 브랜드는 덮어쓰지 않아야 합니다")

	assert.Zero(t, orig.Price, "원본 레코드는 변경되지 않아야 합니다")
	assert.Zero(t, orig.ReviewCount)
}
