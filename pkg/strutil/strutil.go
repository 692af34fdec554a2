// Package strutil 문자열 처리를 위한 유틸리티 함수들을 제공합니다.
package strutil

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// htmlTagRegexp < 다음에 영문자가 오는 경우만 태그로 인식한다. ("3 < 5"는 유지)
var htmlTagRegexp = regexp.MustCompile(`</?([a-zA-Z]+)[^>]*>`)

// NormalizeSpaces 앞뒤 공백을 제거하고 연속된 공백을 하나로 축약합니다.
// 예: "  クラフト   ビール  " -> "クラフト ビール"
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateRunes 문자열을 최대 n개의 문자(rune)로 자릅니다.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// MaskSensitiveData 토큰, 키 등의 민감 정보를 로그에 남기기 위해 마스킹합니다.
func MaskSensitiveData(data string) string {
	switch {
	case data == "":
		return ""
	case len(data) <= 3:
		return "***"
	case len(data) <= 12:
		return data[:4] + "***"
	default:
		return data[:4] + "***" + data[len(data)-4:]
	}
}

// StripHTMLTags HTML 태그를 제거하고 엔티티를 디코딩한 순수 텍스트를 반환합니다.
// 예: "<b>ギフト</b> &amp; セット" -> "ギフト & セット"
func StripHTMLTags(s string) string {
	return html.UnescapeString(htmlTagRegexp.ReplaceAllString(s, " "))
}
