package maputil

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// amountReplacer 금액 문자열에서 통화 기호, 단위, 자릿수 구분자를 제거합니다.
var amountReplacer = strings.NewReplacer(
	"¥", "",
	"￥", "",
	"円", "",
	",", "",
	"，", "",
	" ", "",
)

// trimSpaceHookFunc 문자열 값의 앞뒤 공백을 제거합니다.
func trimSpaceHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, _ reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		return strings.TrimSpace(reflect.ValueOf(data).String()), nil
	}
}

// amountStringToIntHookFunc 정수 필드로 들어가는 금액 문자열("¥3,000", "3,000円")을 숫자 문자열로 정리합니다.
// 실제 숫자 변환은 WeaklyTypedInput이 처리합니다.
func amountStringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}

		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		default:
			return data, nil
		}

		// time.Duration도 Int64이므로 제외
		if t.PkgPath() == "time" {
			return data, nil
		}

		return amountReplacer.Replace(reflect.ValueOf(data).String()), nil
	}
}
