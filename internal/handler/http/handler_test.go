package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/budget-keeper/internal/config"
	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/mock"
	"github.com/MKhiriev/budget-keeper/internal/service"
	"github.com/MKhiriev/budget-keeper/models"
)

const goodToken = "good-token"

var alice = models.Identity{UserID: "0190c3f4-1111-7000-8000-000000000001", Email: "alice@x.com"}

type mockedServices struct {
	auth      *mock.MockAuthService
	tokens    *mock.MockTokenService
	documents *mock.MockDocumentService
	appInfo   *mock.MockAppInfoService
}

// newMockedRouter returns the full router over gomock services.
func newMockedRouter(t *testing.T) (*mockedServices, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &mockedServices{
		auth:      mock.NewMockAuthService(ctrl),
		tokens:    mock.NewMockTokenService(ctrl),
		documents: mock.NewMockDocumentService(ctrl),
		appInfo:   mock.NewMockAppInfoService(ctrl),
	}

	services := &service.Services{
		AuthService:     m.auth,
		TokenService:    m.tokens,
		DocumentService: m.documents,
		AppInfoService:  m.appInfo,
	}
	h := NewHandler(services, config.Server{RequestTimeout: 5 * time.Second}, logger.Nop())

	return m, h.Init()
}

// expectAuthenticated lets goodToken through the auth middleware as alice.
func (m *mockedServices) expectAuthenticated() {
	m.tokens.EXPECT().ParseToken(gomock.Any(), goodToken).Return(alice, nil)
}

func doRequest(t *testing.T, router http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}
