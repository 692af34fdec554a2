package rakuten

import (
	"net/url"
	"testing"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	t.Parallel()

	affiliate := "https://hb.afl.rakuten.co.jp/hgc/1a2b3c4d.5e6f7a8b/?pc=" +
		url.QueryEscape("https://item.rakuten.co.jp/beershop/craft-gift/?scid=af_pc_etc") + "&m=" +
		url.QueryEscape("https://item.rakuten.co.jp/other/ignored/")

	tests := []struct {
		name      string
		input     string
		wantShop  string
		wantItem  string
		wantShort string
	}{
		{name: "상품 페이지 URL", input: "https://item.rakuten.co.jp/beershop/craft-gift/", wantShop: "beershop", wantItem: "craft-gift"},
		{name: "쿼리와 슬래시 없는 URL", input: "https://item.rakuten.co.jp/beershop/10000123?s-id=top", wantShop: "beershop", wantItem: "10000123"},
		{name: "스킴 없는 URL", input: "item.rakuten.co.jp/BeerShop/craft-gift/", wantShop: "beershop", wantItem: "craft-gift"},
		{name: "상품 코드", input: "beershop:10000123", wantShop: "beershop", wantItem: "10000123"},
		{name: "어필리에이트 링크", input: affiliate, wantShop: "beershop", wantItem: "craft-gift"},
		{name: "단축 URL", input: "https://r10.to/hXyZ12", wantShort: "https://r10.to/hXyZ12"},
		{name: "스킴 없는 단축 URL", input: "r10.to/hXyZ12", wantShort: "https://r10.to/hXyZ12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ref, err := ParseInput(tt.input)
			require.NoError(t, err)

			if tt.wantShort != "" {
				assert.True(t, ref.IsShortLink())
				assert.Equal(t, tt.wantShort, ref.ShortURL)
				return
			}

			assert.False(t, ref.IsShortLink())
			assert.Equal(t, tt.wantShop, ref.ShopCode)
			assert.Equal(t, tt.wantItem, ref.ItemID)
			assert.Equal(t, tt.wantShop+":"+tt.wantItem, ref.ItemCode())
			assert.Equal(t, "https://item.rakuten.co.jp/"+tt.wantShop+"/"+tt.wantItem+"/", ref.CanonicalURL())
		})
	}
}

func TestParseInput_Unsupported(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"",
		"https://www.amazon.co.jp/dp/B0C1234567",
		"https://item.rakuten.co.jp/beershop/",
		"https://r10.to/",
		"https://hb.afl.rakuten.co.jp/hgc/1a2b/",
		"https://search.rakuten.co.jp/search/mall/ビール/",
		"クラフトビール",
	} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			_, err := ParseInput(input)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
			assert.False(t, IsRakutenURL(input))
		})
	}
}
