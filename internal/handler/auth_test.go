package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/mocks"
	"github.com/yanuaran892/perpusmpn1sedati/internal/session"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

func newAuthRouter() (http.Handler, *mocks.MockAuthService) {
	auth := newAuthMock()
	return NewRouter(nil, NewAuthMiddleware(auth), NewAuthHandler(auth)), auth
}

func TestAuthHandler_LoginStudent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, auth := newAuthRouter()
		auth.On("LoginStudent", mock.Anything, "1001", "rahasia").
			Return(&domain.LoginResponse{Token: "jwt"}, nil).Once()

		w := do(t, router, http.MethodPost, "/api/v1/login/student", "",
			domain.LoginRequest{Identifier: "1001", Password: "rahasia"})

		require.Equal(t, http.StatusOK, w.Code)
		var resp domain.LoginResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &resp))
		assert.Equal(t, "jwt", resp.Token)
	})

	t.Run("pending account", func(t *testing.T) {
		router, auth := newAuthRouter()
		auth.On("LoginStudent", mock.Anything, "1001", "rahasia").
			Return(nil, customError.WrapAccountInactive("pending")).Once()

		w := do(t, router, http.MethodPost, "/api/v1/login/student", "",
			domain.LoginRequest{Identifier: "1001", Password: "rahasia"})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, customError.ErrCodeAccountInactive, decodeEnvelope(t, w).Code)
	})

	t.Run("missing password", func(t *testing.T) {
		router, auth := newAuthRouter()

		w := do(t, router, http.MethodPost, "/api/v1/login/student", "", domain.LoginRequest{Identifier: "1001"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		auth.AssertNotCalled(t, "LoginStudent", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	router, auth := newAuthRouter()
	auth.On("Logout", mock.Anything, studentSession).Return(nil).Once()

	w := do(t, router, http.MethodPost, "/api/v1/session/logout", studentToken, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	auth.AssertExpectations(t)
}

func TestAuthHandler_Current(t *testing.T) {
	router, _ := newAuthRouter()

	w := do(t, router, http.MethodGet, "/api/v1/session/current", adminToken, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var sess session.Session
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &sess))
	assert.Equal(t, "pustakawan", sess.Username)
}
