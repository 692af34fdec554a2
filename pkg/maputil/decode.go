// Package maputil JSON에서 디코딩된 맵을 구조체로 변환하는 유틸리티를 제공합니다.
package maputil

import (
	"errors"

	"github.com/mitchellh/mapstructure"
)

// Decode input을 새 T 구조체로 변환하여 반환합니다.
//
// 기본 동작:
//   - json 태그 기준으로 필드를 매핑합니다.
//   - "3000" -> 3000 처럼 타입을 느슨하게 보정합니다.
//   - "¥3,000", "3,000円" 같은 금액 문자열은 정수 필드에 숫자로 들어갑니다.
//   - 문자열 앞뒤 공백을 제거합니다.
//   - 구조체에 없는 키는 무시합니다. WithErrorUnused(true)로 에러를 낼 수 있습니다.
func Decode[T any](input any, opts ...Option) (*T, error) {
	output := new(T)
	if err := DecodeTo(input, output, opts...); err != nil {
		return nil, err
	}
	return output, nil
}

// DecodeTo input을 output이 가리키는 구조체에 채웁니다. 이미 설정된 필드 중 입력에 없는 값은 유지됩니다.
func DecodeTo[T any](input any, output *T, opts ...Option) error {
	if output == nil {
		return errors.New("maputil: output은 nil일 수 없습니다")
	}
	if input == nil {
		return nil
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          cfg.tagName,
		WeaklyTypedInput: true,
		ErrorUnused:      cfg.errorUnused,
		DecodeHook:       cfg.decodeHook(),
		Result:           output,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

type config struct {
	tagName     string
	errorUnused bool
	trimSpace   bool
	hooks       []mapstructure.DecodeHookFunc
}

func defaultConfig() config {
	return config{
		tagName:   "json",
		trimSpace: true,
	}
}

func (c *config) decodeHook() mapstructure.DecodeHookFunc {
	hooks := make([]mapstructure.DecodeHookFunc, 0, len(c.hooks)+3)
	if c.trimSpace {
		hooks = append(hooks, trimSpaceHookFunc())
	}
	hooks = append(hooks, amountStringToIntHookFunc(), mapstructure.StringToTimeDurationHookFunc())
	hooks = append(hooks, c.hooks...)

	return mapstructure.ComposeDecodeHookFunc(hooks...)
}

// Option 디코딩 동작을 조정합니다.
type Option func(*config)

// WithTagName 필드 매핑에 사용할 구조체 태그 이름을 지정합니다. (기본값: json)
func WithTagName(tagName string) Option {
	return func(c *config) {
		if tagName != "" {
			c.tagName = tagName
		}
	}
}

// WithErrorUnused 구조체에 없는 키가 입력에 있으면 에러를 반환할지 지정합니다. (기본값: false)
func WithErrorUnused(enable bool) Option {
	return func(c *config) {
		c.errorUnused = enable
	}
}

// WithTrimSpace 문자열 앞뒤 공백 제거 여부를 지정합니다. (기본값: true)
func WithTrimSpace(enable bool) Option {
	return func(c *config) {
		c.trimSpace = enable
	}
}

// WithDecodeHook 기본 훅 뒤에 실행할 훅을 추가합니다.
func WithDecodeHook(hooks ...mapstructure.DecodeHookFunc) Option {
	return func(c *config) {
		c.hooks = append(c.hooks, hooks...)
	}
}
