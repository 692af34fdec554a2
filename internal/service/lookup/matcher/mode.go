package matcher

import (
	"strings"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
)

// Mode 매칭 허용 임계값의 이름 있는 프리셋입니다.
type Mode string

const (
	ModeStrict Mode = "strict"
	ModeNormal Mode = "normal"
	ModeLoose  Mode = "loose"
)

// DefaultMode 모드가 지정되지 않았을 때 사용하는 기본 모드입니다.
const DefaultMode = ModeNormal

var thresholds = map[Mode]float64{
	ModeStrict: 0.9,
	ModeNormal: 0.7,
	ModeLoose:  0.5,
}

// Threshold 모드에 해당하는 최소 유사도 점수를 반환합니다.
// 알 수 없는 모드는 기본 모드의 임계값을 사용합니다.
func (m Mode) Threshold() float64 {
	if t, ok := thresholds[m]; ok {
		return t
	}
	return thresholds[DefaultMode]
}

// IsValid 정의된 모드인지 확인합니다.
func (m Mode) IsValid() bool {
	_, ok := thresholds[m]
	return ok
}

// ParseMode 문자열을 Mode로 변환합니다. 빈 문자열은 기본 모드로 해석합니다.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultMode, nil
	}

	m := Mode(s)
	if !m.IsValid() {
		return "", apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 매칭 모드입니다: '%s' (strict, normal, loose 중 하나)", s)
	}
	return m, nil
}
