package cache

import (
	"net/url"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
)

// Namespace 캐시 키의 종류를 구분하는 접두어입니다.
type Namespace string

const (
	NamespaceURL     Namespace = "url"
	NamespaceJAN     Namespace = "jan"
	NamespaceKeyword Namespace = "keyword"
)

const keySeparator = "|"

// Key 네임스페이스와 정규화된 구성 요소로 캐시 키를 만듭니다. 빈 구성 요소는 생략됩니다.
//
//	Key(NamespaceURL, NormalizeURL(u), "normal") // "url|https://item.rakuten.co.jp/shop/item/|normal"
func Key(ns Namespace, parts ...string) string {
	var sb strings.Builder
	sb.WriteString(string(ns))
	for _, p := range parts {
		if p == "" {
			continue
		}
		sb.WriteString(keySeparator)
		sb.WriteString(p)
	}
	return sb.String()
}

// NamespaceOf 캐시 키의 네임스페이스를 반환합니다.
func NamespaceOf(key string) Namespace {
	ns, _, _ := strings.Cut(key, keySeparator)
	return Namespace(ns)
}

// NormalizeURL 쿼리 문자열과 프래그먼트를 제거하고 스킴과 호스트를 소문자로 맞춥니다.
// URL로 해석할 수 없으면 앞뒤 공백만 제거한 원문을 반환합니다.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		if i := strings.IndexAny(raw, "?#"); i >= 0 {
			return raw[:i]
		}
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""

	return u.String()
}

// NormalizeJAN 숫자만 남깁니다.
func NormalizeJAN(jan string) string {
	var sb strings.Builder
	for _, r := range jan {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// NormalizeKeyword 키워드를 소문자로 바꾸고 공백을 정리한 뒤, 정렬된 옵션을 덧붙입니다.
// 옵션 이름은 snake_case로 통일되므로 SearchIndex와 search_index는 같은 키가 됩니다.
func NormalizeKeyword(keyword string, options map[string]string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(keyword)), " ")
	if len(options) == 0 {
		return normalized
	}

	folded := make(map[string]string, len(options))
	for k, v := range options {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		folded[strcase.ToSnake(k)] = v
	}

	names := make([]string, 0, len(folded))
	for k := range folded {
		names = append(names, k)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(normalized)
	for _, k := range names {
		sb.WriteString(";")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(folded[k])
	}
	return sb.String()
}
