package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/darkkaiser/hoplink/internal/service/api/auth"
	"github.com/darkkaiser/hoplink/internal/service/api/constants"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"
)

// credentials 요청에서 추출한 인증 정보입니다.
type credentials struct {
	appKey        string
	applicationID string
}

// RequireAuthentication 애플리케이션 인증을 수행하는 미들웨어를 반환합니다.
//
// App Key 추출 우선순위:
//  1. X-App-Key 헤더 (권장)
//  2. app_key 쿼리 파라미터 (경고 로그 기록)
//
// Application ID 추출 우선순위:
//  1. X-Application-Id 헤더 (권장, 본문을 읽지 않음)
//  2. 요청 본문의 application_id 필드 (본문이 있는 경우, 읽은 뒤 복원)
//  3. application_id 쿼리 파라미터
//
// 인증 실패 시:
//   - 400 Bad Request: App Key/Application ID 누락, 잘못된 JSON
//   - 401 Unauthorized: 미등록 Application ID 또는 잘못된 App Key
//   - 413 Request Entity Too Large: 요청 크기가 BodyLimit를 초과함
//
// Panics:
//   - authenticator가 nil인 경우
func RequireAuthentication(authenticator *auth.Authenticator) echo.MiddlewareFunc {
	if authenticator == nil {
		panic(constants.PanicMsgAuthenticatorRequired)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cred, err := readCredentials(c)
			if err != nil {
				return err
			}

			app, err := authenticator.Authenticate(cred.applicationID, cred.appKey)
			if err != nil {
				return err
			}
			auth.SetApplication(c, app)

			return next(c)
		}
	}
}

// readCredentials App Key를 먼저 확인한 뒤 Application ID를 찾습니다.
// App Key가 없으면 본문을 읽지 않습니다.
func readCredentials(c echo.Context) (credentials, error) {
	var cred credentials

	if cred.appKey = appKeyOf(c); cred.appKey == "" {
		return cred, ErrAppKeyRequired
	}

	id, err := applicationIDOf(c)
	switch {
	case err != nil:
		return cred, err
	case id == "":
		return cred, ErrApplicationIDRequired
	}
	cred.applicationID = id

	return cred, nil
}

func appKeyOf(c echo.Context) string {
	if key := c.Request().Header.Get(constants.HeaderXAppKey); key != "" {
		return key
	}

	key := c.QueryParam(constants.QueryParamAppKey)
	if key != "" {
		applog.WithComponentAndFields(constants.ComponentMiddlewareAuthentication, applog.Fields{
			"method":    c.Request().Method,
			"path":      c.Path(),
			"remote_ip": c.RealIP(),
		}).Warn(constants.LogMsgAppKeyInQuery)
	}
	return key
}

func applicationIDOf(c echo.Context) (string, error) {
	req := c.Request()
	if id := req.Header.Get(constants.HeaderXApplicationID); id != "" {
		return id, nil
	}

	if hasBody(req) {
		id, err := peekApplicationID(req)
		if err != nil || id != "" {
			return id, err
		}
	}

	return c.QueryParam(constants.QueryParamApplicationID), nil
}

func hasBody(req *http.Request) bool {
	return req.Body != nil && req.Body != http.NoBody && req.ContentLength != 0
}

// peekApplicationID 본문의 application_id 필드를 읽고, 다음 핸들러가 다시 읽을 수 있도록 본문을 되돌려 놓습니다.
func peekApplicationID(req *http.Request) (string, error) {
	body, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return "", classifyBodyReadError(err)
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	if len(bytes.TrimSpace(body)) == 0 {
		return "", nil
	}
	if !gjson.ValidBytes(body) {
		return "", ErrInvalidJSON
	}

	return gjson.GetBytes(body, "application_id").String(), nil
}

func classifyBodyReadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return ErrBodyTooLarge
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
		return ErrBodyTooLarge
	}

	return ErrBodyReadFailed
}
