package fetcher

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

const redacted = "xxxxx"

var (
	// sensitiveExactKeys 값을 마스킹할 쿼리 파라미터 이름 (소문자 비교)
	sensitiveExactKeys = []string{
		"token", "auth", "key", "secret", "pass", "password", "signature", "credential",
		"access_token", "api_key", "client_secret", "access_key", "secret_key", "app_key",
		"applicationid", "application_id", "affiliateid", "affiliate_id", "partnertag",
		"x-amz-signature", "x-amz-credential", "x-amz-security-token",
	}

	sensitiveSuffixes = []string{
		"_token", "_secret", "_key", "_password",
	}

	sensitiveHeaders = []string{
		"Authorization", "Proxy-Authorization", "Cookie", "Set-Cookie", "X-Amz-Security-Token",
	}
)

// redactHeaders 민감한 헤더 값을 마스킹한 복사본을 반환합니다.
func redactHeaders(h http.Header) http.Header {
	if h == nil {
		return nil
	}

	masked := h.Clone()
	for _, key := range sensitiveHeaders {
		if masked.Get(key) != "" {
			masked.Set(key, "***")
		}
	}
	return masked
}

// redactURL 사용자 정보와 민감한 쿼리 파라미터를 마스킹한 URL 문자열을 반환합니다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	ru := *u
	if u.User != nil {
		if _, has := u.User.Password(); has {
			ru.User = url.UserPassword(u.User.Username(), redacted)
		} else if u.User.Username() != "" {
			ru.User = url.User(redacted)
		}
	}

	if u.RawQuery != "" {
		query := ru.Query()
		for key := range query {
			if isSensitiveKey(key) {
				query.Set(key, redacted)
			}
		}
		ru.RawQuery = query.Encode()
	}

	return ru.String()
}

// RedactRawURL 문자열 URL의 민감 정보를 마스킹합니다. 파싱할 수 없으면 원본을 반환합니다.
func RedactRawURL(rawURL string) string {
	return redactRawURL(rawURL)
}

func redactRawURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if i := strings.LastIndex(rawURL, "@"); i != -1 {
			if j := strings.Index(rawURL[:i], "://"); j != -1 {
				return rawURL[:j+3] + redacted + rawURL[i:]
			}
		}
		return rawURL
	}
	return redactURL(u)
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	if slices.Contains(sensitiveExactKeys, lower) {
		return true
	}
	for _, suffix := range sensitiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
