package config

import (
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup/matcher"
	"github.com/darkkaiser/hoplink/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// newValidator 새로운 Validator 인스턴스를 생성하고 커스텀 유효성 검사 함수를 등록합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 Go 구조체 필드명 대신 JSON 이름(예: listen_port)을 보여준다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"cors_origin": validateCORSOrigin,
		"cron_spec":   validateCronSpec,
		"match_mode":  validateMatchMode,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("초기화 치명적 오류: '%s' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", tag, err))
		}
	}

	return v
}

// validateCORSOrigin 실제 검증은 validation.ValidateCORSOrigin에 위임합니다.
func validateCORSOrigin(fl validator.FieldLevel) bool {
	return validation.ValidateCORSOrigin(fl.Field().String()) == nil
}

// validateCronSpec 초 단위를 포함하는 6필드 Cron 표현식 또는 @daily 같은 Descriptor인지 검증합니다.
func validateCronSpec(fl validator.FieldLevel) bool {
	return validation.ValidateCronExpression(fl.Field().String()) == nil
}

// validateMatchMode strict, normal, loose 중 하나인지 검증합니다. 빈 값은 기본 모드로 간주합니다.
func validateMatchMode(fl validator.FieldLevel) bool {
	_, err := matcher.ParseMode(fl.Field().String())
	return err == nil
}

// checkStruct 구조체의 유효성을 검사하고, 첫 번째 오류를 사용자 친화적인 메시지로 변환합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", contextName))
	}

	firstErr := validationErrors[0]

	// 필드별 메시지
	switch firstErr.StructField() {
	case "MaxRetries":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("HTTP 최대 재시도 횟수(max_retries)는 0에서 10 사이의 값이어야 합니다: '%v'", firstErr.Value()))
	case "RetryDelay":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("HTTP 재시도 대기 시간(retry_delay)은 0보다 커야 합니다: '%v'", firstErr.Value()))
	case "ListenPort":
		return apperrors.New(apperrors.InvalidInput, "웹 서버 포트(listen_port)는 1에서 65535 사이의 값이어야 합니다")
	case "TLSCertFile":
		switch firstErr.Tag() {
		case "required_if":
			return apperrors.New(apperrors.InvalidInput, "TLS 서버 활성화 시 인증서 파일 경로(tls_cert_file)는 필수입니다")
		case "file":
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 인증서 파일(tls_cert_file)을 찾을 수 없습니다: '%v'", firstErr.Value()))
		}
	case "TLSKeyFile":
		switch firstErr.Tag() {
		case "required_if":
			return apperrors.New(apperrors.InvalidInput, "TLS 서버 활성화 시 키 파일 경로(tls_key_file)는 필수입니다")
		case "file":
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 키 파일(tls_key_file)을 찾을 수 없습니다: '%v'", firstErr.Value()))
		}
	case "Dir":
		return apperrors.New(apperrors.InvalidInput, "file 캐시 사용 시 저장 디렉토리(dir)는 필수입니다")
	case "DSN":
		return apperrors.New(apperrors.InvalidInput, "postgres 캐시 사용 시 접속 문자열(dsn)은 필수입니다")
	case "AppKey":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 API 키(app_key)가 설정되지 않았습니다", contextName))
	}

	// 태그별 메시지
	switch firstErr.Tag() {
	case "cors_origin":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", firstErr.Value()))
	case "cron_spec":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 Cron 표현식(%s)이 올바르지 않습니다: '%v' (예: 0 */10 * * * *, @hourly)", contextName, firstErr.Field(), firstErr.Value()))
	case "match_mode":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지원하지 않는 매칭 모드(%s)입니다: '%v' (strict, normal, loose 중 하나)", firstErr.Field(), firstErr.Value()))
	case "oneof":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 %s 값이 올바르지 않습니다: '%v' (허용 값: %s)", contextName, firstErr.Field(), firstErr.Value(), firstErr.Param()))
	case "url":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 %s는 올바른 URL이어야 합니다: '%v'", contextName, firstErr.Field(), firstErr.Value()))
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 설정이 올바르지 않습니다: %s (조건: %s)", contextName, firstErr.Field(), firstErr.Tag()))
}

// checkUniqueField 슬라이스 내의 특정 필드 값이 유일한지 검사합니다.
func checkUniqueField(v *validator.Validate, data any, fieldName, contextName string) error {
	if err := v.Var(data, "unique="+fieldName); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				if fieldErr.Tag() == "unique" {
					return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("중복된 %s ID가 존재합니다", contextName))
				}
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유일성 검증에 실패했습니다", contextName))
	}
	return nil
}
