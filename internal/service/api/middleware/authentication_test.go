package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/darkkaiser/hoplink/internal/config"
	"github.com/darkkaiser/hoplink/internal/service/api/auth"
	"github.com/darkkaiser/hoplink/internal/service/api/constants"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Setup Helpers
// =============================================================================

func setupTestContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func setupAuthenticator(t *testing.T) *auth.Authenticator {
	t.Helper()

	return auth.NewAuthenticator(&config.AppConfig{
		HoplinkAPI: config.HoplinkAPIConfig{
			Applications: []config.ApplicationConfig{
				{ID: "test-app", AppKey: "valid-app-key", Title: "Test App"},
			},
		},
	})
}

func httpStatusOf(t *testing.T, err error) int {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "에러는 *echo.HTTPError 타입이어야 합니다: %v", err)
	return he.Code
}

// =============================================================================
// RequireAuthentication
// =============================================================================

func TestRequireAuthentication_Table(t *testing.T) {
	t.Parallel()

	authenticator := setupAuthenticator(t)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		headers    map[string]string
		wrapBody   func(*http.Request, http.ResponseWriter)
		wantErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:    "성공: 헤더로 인증",
			method:  http.MethodPost,
			target:  "/api/v1/lookups",
			body:    `{"query":"4901234567894"}`,
			headers: map[string]string{constants.HeaderXAppKey: "valid-app-key", constants.HeaderXApplicationID: "test-app"},
		},
		{
			name:     "성공: 본문의 application_id로 인증하고 본문은 복원",
			method:   http.MethodPost,
			target:   "/api/v1/lookups",
			body:     `{"application_id":"test-app","query":"abc"}`,
			headers:  map[string]string{constants.HeaderXAppKey: "valid-app-key"},
			wantBody: `{"application_id":"test-app","query":"abc"}`,
		},
		{
			name:    "성공: 본문 없는 DELETE 요청은 쿼리 파라미터로 인증",
			method:  http.MethodDelete,
			target:  "/api/v1/cache?application_id=test-app",
			headers: map[string]string{constants.HeaderXAppKey: "valid-app-key"},
		},
		{
			name:     "성공: 본문에 application_id가 없으면 쿼리 파라미터 사용",
			method:   http.MethodPost,
			target:   "/api/v1/lookups?application_id=test-app",
			body:     `{"query":"abc"}`,
			headers:  map[string]string{constants.HeaderXAppKey: "valid-app-key"},
			wantBody: `{"query":"abc"}`,
		},
		{
			name:    "성공: 쿼리 파라미터 App Key",
			method:  http.MethodDelete,
			target:  "/api/v1/cache?application_id=test-app&app_key=valid-app-key",
			headers: map[string]string{},
		},
		{
			name:    "실패: App Key 누락",
			method:  http.MethodPost,
			target:  "/api/v1/lookups",
			body:    `{"application_id":"test-app"}`,
			headers: map[string]string{},
			wantErr: ErrAppKeyRequired,
		},
		{
			name:    "실패: Application ID 누락",
			method:  http.MethodDelete,
			target:  "/api/v1/cache",
			headers: map[string]string{constants.HeaderXAppKey: "valid-app-key"},
			wantErr: ErrApplicationIDRequired,
		},
		{
			name:    "실패: 잘못된 JSON 본문",
			method:  http.MethodPost,
			target:  "/api/v1/lookups",
			body:    `{invalid`,
			headers: map[string]string{constants.HeaderXAppKey: "valid-app-key"},
			wantErr: ErrInvalidJSON,
		},
		{
			name:       "실패: App Key 불일치",
			method:     http.MethodPost,
			target:     "/api/v1/lookups",
			body:       `{"query":"abc"}`,
			headers:    map[string]string{constants.HeaderXAppKey: "wrong-key", constants.HeaderXApplicationID: "test-app"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "실패: 등록되지 않은 Application ID",
			method:     http.MethodPost,
			target:     "/api/v1/lookups",
			body:       `{"query":"abc"}`,
			headers:    map[string]string{constants.HeaderXAppKey: "valid-app-key", constants.HeaderXApplicationID: "unknown"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "실패: 본문 크기 초과",
			method:  http.MethodPost,
			target:  "/api/v1/lookups",
			body:    `{"application_id":"test-app","query":"` + strings.Repeat("x", 64) + `"}`,
			headers: map[string]string{constants.HeaderXAppKey: "valid-app-key"},
			wrapBody: func(req *http.Request, w http.ResponseWriter) {
				req.Body = http.MaxBytesReader(w, req.Body, 16)
			},
			wantErr: ErrBodyTooLarge,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			c, rec := setupTestContext(tt.method, tt.target, body)
			for k, v := range tt.headers {
				c.Request().Header.Set(k, v)
			}
			if tt.wrapBody != nil {
				tt.wrapBody(c.Request(), rec)
			}

			var gotBody string
			handler := RequireAuthentication(authenticator)(func(c echo.Context) error {
				app := auth.MustGetApplication(c)
				assert.Equal(t, "test-app", app.ID)

				b, err := io.ReadAll(c.Request().Body)
				require.NoError(t, err)
				gotBody = string(b)

				return c.NoContent(http.StatusOK)
			})

			err := handler(c)

			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.wantStatus != 0:
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, httpStatusOf(t, err))
			default:
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				if tt.wantBody != "" {
					assert.Equal(t, tt.wantBody, gotBody, "다음 핸들러에서 본문을 다시 읽을 수 있어야 합니다")
				}
			}
		})
	}
}

func TestRequireAuthentication_NilAuthenticator(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, constants.PanicMsgAuthenticatorRequired, func() {
		RequireAuthentication(nil)
	})
}

// TestExtractAppKey_QueryWarning 쿼리 파라미터로 App Key가 전달되면 경고 로그를 남기는지 검증합니다.
// 전역 로거 훅을 사용하므로 병렬로 실행하지 않습니다.
func TestExtractAppKey_QueryWarning(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	t.Run("헤더 사용 시 경고 없음", func(t *testing.T) {
		hook.Reset()

		c, _ := setupTestContext(http.MethodGet, "/?app_key=query-key", nil)
		c.Request().Header.Set(constants.HeaderXAppKey, "header-key")

		assert.Equal(t, "header-key", extractAppKey(c))
		assert.Empty(t, hook.AllEntries())
	})

	t.Run("쿼리 파라미터 사용 시 경고", func(t *testing.T) {
		hook.Reset()

		c, _ := setupTestContext(http.MethodGet, "/?app_key=query-key", nil)

		assert.Equal(t, "query-key", extractAppKey(c))

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, constants.LogMsgAppKeyInQuery, entry.Message)
		assert.NotContains(t, entry.Data, "app_key")
	})
}
