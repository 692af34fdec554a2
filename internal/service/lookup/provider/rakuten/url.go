package rakuten

import (
	"net/url"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
)

const (
	itemHost      = "item.rakuten.co.jp"
	affiliateHost = "hb.afl.rakuten.co.jp"
	shortLinkHost = "r10.to"

	// maxAffiliateUnwrapDepth 어필리에이트 링크 안에 어필리에이트 링크가 중첩된 경우의 최대 해제 깊이
	maxAffiliateUnwrapDepth = 3
)

var (
	itemCodeRegexp = regexp.MustCompile(`^([a-zA-Z0-9_\-]+):([a-zA-Z0-9_\-.]+)$`)
	pathSegmentOK  = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
)

// ItemRef URL이나 상품 코드에서 추출한 Rakuten 상품 참조입니다.
// 단축 URL은 리다이렉트를 따라가기 전까지 상점/상품 코드를 알 수 없으므로 ShortURL만 채워집니다.
type ItemRef struct {
	ShopCode string
	ItemID   string

	ShortURL string
}

// IsShortLink 리다이렉트 확장이 필요한 단축 URL인지 여부를 반환합니다.
func (r ItemRef) IsShortLink() bool {
	return r.ShortURL != ""
}

// ItemCode Ichiba API의 itemCode 형식(shop:item)을 반환합니다.
func (r ItemRef) ItemCode() string {
	return r.ShopCode + ":" + r.ItemID
}

// CanonicalURL 쿼리 없는 상품 페이지 URL을 반환합니다.
func (r ItemRef) CanonicalURL() string {
	return "https://" + itemHost + "/" + r.ShopCode + "/" + r.ItemID + "/"
}

// ParseInput Rakuten 상품 URL 또는 상품 코드(shop:item)를 해석합니다.
//
// 지원 형식:
//   - https://item.rakuten.co.jp/{shop}/{item}/
//   - {shop}:{item}
//   - https://hb.afl.rakuten.co.jp/...?pc={인코딩된 상품 URL}
//   - https://r10.to/{id} (단축 URL)
func ParseInput(input string) (ItemRef, error) {
	return parseInput(strings.TrimSpace(input), 0)
}

func parseInput(input string, depth int) (ItemRef, error) {
	if input == "" {
		return ItemRef{}, apperrors.New(apperrors.InvalidInput, "Rakuten 상품 URL 또는 상품 코드가 비어 있습니다")
	}

	if m := itemCodeRegexp.FindStringSubmatch(input); m != nil && !strings.Contains(input, "/") {
		return ItemRef{ShopCode: strings.ToLower(m[1]), ItemID: m[2]}, nil
	}

	raw := input
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ItemRef{}, newErrUnsupportedURL(input)
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == itemHost:
		return parseItemPath(u.Path, input)

	case host == affiliateHost:
		if depth >= maxAffiliateUnwrapDepth {
			return ItemRef{}, newErrUnsupportedURL(input)
		}
		for _, param := range []string{"pc", "m"} {
			if target := u.Query().Get(param); target != "" {
				return parseInput(target, depth+1)
			}
		}
		return ItemRef{}, newErrUnsupportedURL(input)

	case host == shortLinkHost || strings.HasSuffix(host, "."+shortLinkHost):
		if strings.Trim(u.Path, "/") == "" {
			return ItemRef{}, newErrUnsupportedURL(input)
		}
		u.Scheme = "https"
		u.Fragment = ""
		return ItemRef{ShortURL: u.String()}, nil
	}

	return ItemRef{}, newErrUnsupportedURL(input)
}

func parseItemPath(path, input string) (ItemRef, error) {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	if len(segments) < 2 || !pathSegmentOK.MatchString(segments[0]) || !pathSegmentOK.MatchString(segments[1]) {
		return ItemRef{}, newErrUnsupportedURL(input)
	}

	return ItemRef{ShopCode: strings.ToLower(segments[0]), ItemID: segments[1]}, nil
}

// IsRakutenURL 입력이 이 패키지가 해석할 수 있는 Rakuten URL 또는 상품 코드인지 확인합니다.
func IsRakutenURL(input string) bool {
	_, err := ParseInput(input)
	return err == nil
}
