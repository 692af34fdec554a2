// Package validation 설정 파일과 API 요청의 문자열 값을 검증하는 함수를 제공합니다.
package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/darkkaiser/hoplink/pkg/cronx"
	"github.com/go-playground/validator/v10"
)

var (
	hostValidator     *validator.Validate
	hostValidatorOnce sync.Once
)

func getHostValidator() *validator.Validate {
	hostValidatorOnce.Do(func() {
		hostValidator = validator.New()
	})
	return hostValidator
}

// ValidateCORSOrigin 'Scheme://Host[:Port]' 형식의 CORS Origin인지 검증합니다. 와일드카드('*')는 허용됩니다.
//
// 스킴은 http, https만 허용하며 경로, 쿼리, 프래그먼트, 사용자 정보는 포함할 수 없습니다.
func ValidateCORSOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	if origin == "*" {
		return nil
	}
	if origin == "" {
		return fmt.Errorf("CORS Origin은 비어있을 수 없습니다")
	}
	if strings.HasSuffix(origin, "/") {
		return fmt.Errorf("CORS Origin은 경로 구분자('/')로 끝날 수 없습니다 (input=%q)", origin)
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS Origin이 유효한 URL 형식이 아닙니다 (input=%q): %w", origin, err)
	}

	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("CORS Origin은 'http' 또는 'https' 스킴만 허용됩니다 (input=%q)", origin)
	case u.Path != "" || u.RawQuery != "" || u.Fragment != "":
		return fmt.Errorf("CORS Origin은 경로, 쿼리, 프래그먼트를 포함할 수 없습니다 (input=%q)", origin)
	case u.User != nil:
		return fmt.Errorf("CORS Origin은 사용자 자격 증명을 포함할 수 없습니다 (input=%q)", origin)
	}

	if port := u.Port(); port != "" {
		if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
			return fmt.Errorf("CORS Origin의 포트 번호가 유효하지 않습니다 (input=%q, port=%s)", origin, port)
		}
	}

	if err := ValidateHostname(u.Hostname()); err != nil {
		return fmt.Errorf("CORS Origin 호스트 검증 실패: %w", err)
	}

	return nil
}

// ValidateHostname RFC 1123 호스트명, IP 주소, localhost 중 하나인지 검증합니다.
func ValidateHostname(host string) error {
	if host == "" {
		return fmt.Errorf("호스트(Host) 정보가 누락되었습니다")
	}
	if err := getHostValidator().Var(host, "hostname_rfc1123|ip"); err != nil {
		return fmt.Errorf("유효한 호스트명이 아닙니다 (host=%q)", host)
	}
	return nil
}

// ValidateCronExpression 초 단위를 포함하는 6필드 Cron 표현식 또는 Descriptor(@hourly, @every 5m)인지 검증합니다.
func ValidateCronExpression(spec string) error {
	if _, err := cronx.StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("Cron 표현식 파싱 실패(spec=%q): %w", spec, err)
	}
	return nil
}
