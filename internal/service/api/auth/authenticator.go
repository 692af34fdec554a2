// Package auth 등록된 애플리케이션의 App Key 인증을 제공합니다.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/darkkaiser/hoplink/internal/config"
	"github.com/darkkaiser/hoplink/internal/service/api/constants"
	"github.com/darkkaiser/hoplink/internal/service/api/model/domain"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/darkkaiser/hoplink/pkg/strutil"
)

// credential 인증에 필요한 애플리케이션 정보와 App Key의 해시입니다.
type credential struct {
	application *domain.Application
	appKeyHash  [sha256.Size]byte
}

// Authenticator 설정 파일에 등록된 애플리케이션을 Application ID와 App Key로 인증합니다.
//
// App Key 원문은 메모리에 보관하지 않고 SHA-256 해시만 보관하며,
// 비교는 상수 시간으로 수행합니다. 초기화 후 읽기 전용이므로 동시 호출에 안전합니다.
type Authenticator struct {
	credentials map[string]credential
}

// NewAuthenticator 설정에서 애플리케이션을 로드하여 Authenticator를 생성합니다.
func NewAuthenticator(appConfig *config.AppConfig) *Authenticator {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}

	credentials := make(map[string]credential, len(appConfig.HoplinkAPI.Applications))
	for _, app := range appConfig.HoplinkAPI.Applications {
		credentials[app.ID] = credential{
			application: &domain.Application{
				ID:          app.ID,
				Title:       app.Title,
				Description: app.Description,
			},
			appKeyHash: sha256.Sum256([]byte(app.AppKey)),
		}
	}

	return &Authenticator{
		credentials: credentials,
	}
}

// Authenticate 애플리케이션을 찾고 App Key를 검증합니다.
// 실패 시 401 Unauthorized HTTP 에러를 반환합니다.
func (a *Authenticator) Authenticate(applicationID, appKey string) (*domain.Application, error) {
	cred, ok := a.credentials[applicationID]
	if !ok {
		return nil, NewErrInvalidApplicationID(applicationID)
	}

	hash := sha256.Sum256([]byte(appKey))
	if subtle.ConstantTimeCompare(hash[:], cred.appKeyHash[:]) != 1 {
		applog.WithComponentAndFields(constants.ComponentMiddlewareAuthentication, applog.Fields{
			"application_id":   applicationID,
			"received_app_key": strutil.MaskSensitiveData(appKey),
		}).Warn(constants.LogMsgAppKeyMismatch)

		return nil, NewErrInvalidAppKey(applicationID)
	}

	return cred.application, nil
}
