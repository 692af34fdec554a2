package product

import (
	"regexp"
	"strings"
)

var janRegexp = regexp.MustCompile(`^\d{8}$|^\d{13}$`)

// IsValidJAN 8자리 또는 13자리 숫자 문자열인지 확인합니다.
func IsValidJAN(code string) bool {
	return janRegexp.MatchString(code)
}

// NormalizeJAN 하이픈, 공백 등 숫자가 아닌 문자를 제거한 뒤 JAN 코드 형식인지 확인합니다.
// 전각 숫자(０-９)는 반각으로 변환합니다.
func NormalizeJAN(code string) (string, bool) {
	var b strings.Builder
	b.Grow(len(code))

	for _, r := range code {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '０' && r <= '９':
			b.WriteRune('0' + (r - '０'))
		}
	}

	jan := b.String()
	if !IsValidJAN(jan) {
		return "", false
	}
	return jan, true
}
