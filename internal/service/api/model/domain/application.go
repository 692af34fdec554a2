// Package domain API 서비스의 런타임 도메인 모델을 정의합니다.
package domain

// Application 조회 API를 사용하는 클라이언트 애플리케이션입니다.
//
// config.ApplicationConfig에서 App Key를 제외한 런타임 표현이며,
// App Key는 Authenticator 내부에 SHA-256 해시로만 보관됩니다.
type Application struct {
	ID          string
	Title       string
	Description string
}
