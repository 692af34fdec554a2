// Package validator API 요청 구조체의 검증과 한국어 에러 메시지 변환을 제공합니다.
//
// 필드명은 korean 태그 값을 사용하며, 태그가 없으면 구조체 필드명을 그대로 사용합니다.
package validator

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Get 전역 validator 인스턴스를 반환합니다.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("korean"); name != "" {
				return name
			}
			return fld.Name
		})
	})

	return validate
}

// Struct 구조체의 validate 태그를 기준으로 검증합니다.
func Struct(s any) error {
	return Get().Struct(s)
}

// FormatValidationError 검증 에러를 한국어 메시지로 변환합니다. 에러가 여러 개이면 첫 번째만 사용합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return err.Error()
	}

	return formatFieldError(validationErrors[0])
}

func formatFieldError(fieldErr validator.FieldError) string {
	name := fieldErr.Field()
	param := fieldErr.Param()
	isString := fieldErr.Kind() == reflect.String

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s는 필수입니다", name)

	case "min", "gte":
		if isString {
			return fmt.Sprintf("%s는 최소 %s자 이상이어야 합니다", name, param)
		}
		if fieldErr.Tag() == "gte" {
			return fmt.Sprintf("%s는 %s 이상이어야 합니다", name, param)
		}
		return fmt.Sprintf("%s는 최소 %s 이상이어야 합니다", name, param)

	case "max", "lte":
		if isString {
			return fmt.Sprintf("%s는 최대 %s자까지 입력 가능합니다", name, param)
		}
		if fieldErr.Tag() == "lte" {
			return fmt.Sprintf("%s는 %s 이하이어야 합니다", name, param)
		}
		return fmt.Sprintf("%s는 최대 %s까지 입력 가능합니다", name, param)

	case "len":
		if isString {
			return fmt.Sprintf("%s는 %s자여야 합니다", name, param)
		}
		return fmt.Sprintf("%s는 갯수가 %s개여야 합니다", name, param)

	case "email":
		return fmt.Sprintf("%s는 올바른 이메일 형식이어야 합니다", name)
	case "url", "http_url":
		return fmt.Sprintf("%s는 올바른 URL 형식이어야 합니다", name)
	case "uuid":
		return fmt.Sprintf("%s는 올바른 UUID 형식이어야 합니다", name)
	case "alphanum":
		return fmt.Sprintf("%s는 영문자와 숫자만 입력 가능합니다", name)
	case "oneof", "oneofci":
		return fmt.Sprintf("%s는 허용된 값 중 하나여야 합니다 [%s]", name, param)
	case "boolean":
		return fmt.Sprintf("%s는 true 또는 false 값이어야 합니다", name)

	default:
		return fmt.Sprintf("%s 값 검증 실패 (%s)", name, fieldErr.Tag())
	}
}
