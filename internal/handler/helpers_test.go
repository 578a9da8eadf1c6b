package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yanuaran892/perpusmpn1sedati/internal/mocks"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	"github.com/yanuaran892/perpusmpn1sedati/internal/session"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

const (
	studentToken = "student-token"
	adminToken   = "admin-token"
)

var (
	studentSession = &session.Session{ID: "s-1", Role: session.RoleStudent, Subject: "1001", Name: "Budi"}
	adminSession   = &session.Session{ID: "s-2", Role: session.RoleAdmin, Subject: "7", Name: "Bu Rina", Username: "pustakawan", AdminID: 7}
)

// newAuthMock knows the student and admin test tokens and refuses any other.
func newAuthMock() *mocks.MockAuthService {
	auth := &mocks.MockAuthService{}
	auth.On("Authenticate", mock.Anything, studentToken).Return(studentSession, nil).Maybe()
	auth.On("Authenticate", mock.Anything, adminToken).Return(adminSession, nil).Maybe()
	auth.On("Authenticate", mock.Anything, mock.Anything).Return(nil, customError.WrapUnauthorized("invalid token")).Maybe()
	return auth
}

func newTestRouter(handlers ...Registrar) (*mux.Router, *mocks.MockAuthService) {
	auth := newAuthMock()
	return NewRouter(nil, NewAuthMiddleware(auth), handlers...), auth
}

func do(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			reader.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&reader).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    pagination.Meta `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
