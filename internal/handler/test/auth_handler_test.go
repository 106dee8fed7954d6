package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Mirap9615/owowclub-sub000/internal/config"
	handlers "github.com/Mirap9615/owowclub-sub000/internal/handler"
	"github.com/Mirap9615/owowclub-sub000/internal/models"
)

func createTestHandler() *handlers.Handlers {
	cfg := &config.Config{
		SessionSecret:   "test-secret-key",
		SessionDuration: time.Hour,
		BaseURL:         "http://localhost:8080",
	}

	return &handlers.Handlers{
		AuthService:       &MockAuthService{},
		MembershipService: &MockMembershipService{},
		Cfg:               cfg,
		Validate:          validator.New(),
	}
}

// assertJSONError checks the JSON response with an error
func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], expectedError)
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLoginHandler_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := createTestHandler()
	handler.AuthService = mockAuth

	mockAuth.On("Login", mock.Anything, "ana@example.com", "hunter22").
		Return(&models.User{UserID: "u1", Email: "ana@example.com", Name: "Ana"}, "signed-token", nil)

	req := jsonRequest(t, http.MethodPost, "/login", map[string]string{
		"email":    "ana@example.com",
		"password": "hunter22",
	})
	rr := httptest.NewRecorder()

	handler.Login(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, handlers.SessionCookieName, cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "ana@example.com", response["email"])
	mockAuth.AssertExpectations(t)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := createTestHandler()
	handler.AuthService = mockAuth

	mockAuth.On("Login", mock.Anything, "ana@example.com", "wrong").
		Return(nil, "", models.ErrInvalidCredentials)

	req := jsonRequest(t, http.MethodPost, "/login", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong",
	})
	rr := httptest.NewRecorder()

	handler.Login(rr, req)

	assertJSONError(t, rr, http.StatusUnauthorized, "")
	assert.Empty(t, rr.Result().Cookies())
}

func TestLoginHandler_InvalidBody(t *testing.T) {
	handler := createTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte("not json")))
	rr := httptest.NewRecorder()

	handler.Login(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "Invalid request body")
}

func TestForgotPasswordHandler_AlwaysOK(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := createTestHandler()
	handler.AuthService = mockAuth

	// the service reports success for unknown emails too
	mockAuth.On("ForgotPassword", mock.Anything, "ghost@example.com").Return(nil)

	req := jsonRequest(t, http.MethodPost, "/forgot-password", map[string]string{
		"email": "ghost@example.com",
	})
	rr := httptest.NewRecorder()

	handler.ForgotPassword(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestResetPasswordHandler_StaleToken(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := createTestHandler()
	handler.AuthService = mockAuth

	mockAuth.On("ResetPassword", mock.Anything, "stale", "newpassword").
		Return(models.ErrInvalidToken)

	req := jsonRequest(t, http.MethodPost, "/reset-password", map[string]string{
		"token":    "stale",
		"password": "newpassword",
	})
	rr := httptest.NewRecorder()

	handler.ResetPassword(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "")
}

func TestResetPasswordHandler_ShortPassword(t *testing.T) {
	handler := createTestHandler()

	req := jsonRequest(t, http.MethodPost, "/reset-password", map[string]string{
		"token":    "tok",
		"password": "abc",
	})
	rr := httptest.NewRecorder()

	handler.ResetPassword(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "Invalid reset data")
}

func TestLogoutHandler_ClearsCookie(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := createTestHandler()
	handler.AuthService = mockAuth

	mockAuth.On("Logout", mock.Anything, "signed-token").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: handlers.SessionCookieName, Value: "signed-token"})
	rr := httptest.NewRecorder()

	handler.Logout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
	mockAuth.AssertExpectations(t)
}

func TestValidateCodeHandler_UnknownToken(t *testing.T) {
	mockMembership := new(MockMembershipService)
	handler := createTestHandler()
	handler.MembershipService = mockMembership

	mockMembership.On("ValidateRegistrationToken", mock.Anything, "nope").
		Return(nil, models.ErrInvalidToken)

	req := jsonRequest(t, http.MethodPost, "/api/validate-code", map[string]string{"code": "nope"})
	rr := httptest.NewRecorder()

	handler.ValidateCode(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "")
}

func TestRedeemRegistrationHandler_Success(t *testing.T) {
	mockMembership := new(MockMembershipService)
	handler := createTestHandler()
	handler.MembershipService = mockMembership

	mockMembership.On("RedeemRegistration", mock.Anything, "tok", "hunter22", "Ana", "Travel Host").
		Return(&models.User{UserID: "u1", Email: "ana@example.com", Name: "Ana", MembershipType: models.TypeTravelHost}, nil)

	req := jsonRequest(t, http.MethodPost, "/api/register", map[string]string{
		"token":          "tok",
		"password":       "hunter22",
		"name":           "Ana",
		"membershipType": "Travel Host",
	})
	rr := httptest.NewRecorder()

	handler.RedeemRegistration(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "Travel Host", response["membershipType"])
	mockMembership.AssertExpectations(t)
}
