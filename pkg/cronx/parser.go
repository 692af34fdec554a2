// Package cronx robfig/cron 파서 설정을 애플리케이션 전체에서 하나로 통일합니다.
package cronx

import "github.com/robfig/cron/v3"

// StandardParser 초 단위를 포함하는 6필드 Cron 파서를 반환합니다.
//
// 필드 순서는 [초] [분] [시] [일] [월] [요일]이며 @daily, @every 10m 같은 Descriptor도 허용합니다.
// 표준 5필드 형식은 지원하지 않습니다.
//
//	"0 */10 * * * *" // 매 10분 0초
//	"0 0 4 * * *"    // 매일 04:00:00
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}
