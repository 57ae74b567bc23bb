package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator is a test implementation of TokenValidator for unit tests.
type testTokenValidator struct {
	validTokens map[string]string
}

func newTestTokenValidator() *testTokenValidator {
	return &testTokenValidator{
		validTokens: make(map[string]string),
	}
}

func (v *testTokenValidator) addValidToken(token, subject string) {
	v.validTokens[token] = subject
}

func (v *testTokenValidator) ValidateToken(tokenString string) (SubjectGetter, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}
	subject, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims{subject: subject}, nil
}

type testClaims struct {
	subject string
}

func (c testClaims) GetSubject() (string, error) {
	return c.subject, nil
}

func serve(t *testing.T, validator TokenValidator, authHeader string) (*httptest.ResponseRecorder, bool, string) {
	t.Helper()
	called := false
	var subject string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		var err error
		subject, err = GetSubject(r)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/resumes/parse/123", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	AuthMiddleware(validator)(handler).ServeHTTP(w, req)
	return w, called, subject
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	validator := newTestTokenValidator()
	validator.addValidToken("valid-test-token-123", "user-42")

	w, called, subject := serve(t, validator, "Bearer valid-test-token-123")

	assert.True(t, called, "handler should be called")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", subject)
}

func TestAuthMiddleware_CaseInsensitiveScheme(t *testing.T) {
	validator := newTestTokenValidator()
	validator.addValidToken("tok", "user-1")

	for _, header := range []string{"bearer tok", "BeArEr tok", "Bearer   tok"} {
		t.Run(header, func(t *testing.T) {
			w, called, _ := serve(t, validator, header)
			assert.True(t, called)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestAuthMiddleware_Rejected(t *testing.T) {
	validator := newTestTokenValidator()
	validator.addValidToken("tok", "user-1")
	validator.addValidToken("no-subject", "")

	tests := []struct {
		name       string
		authHeader string
	}{
		{name: "missing header", authHeader: ""},
		{name: "missing Bearer prefix", authHeader: "tok"},
		{name: "only Bearer", authHeader: "Bearer"},
		{name: "basic scheme", authHeader: "Basic dXNlcjpwYXNz"},
		{name: "too many parts", authHeader: "Bearer tok extra"},
		{name: "unknown token", authHeader: "Bearer not.a.valid.jwt"},
		{name: "empty subject", authHeader: "Bearer no-subject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, called, _ := serve(t, validator, tt.authHeader)

			assert.False(t, called, "handler should not be called")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
		})
	}
}

func TestGetSubject_Success(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(WithSubject(req.Context(), "user-7"))

	subject, err := GetSubject(req)
	require.NoError(t, err)
	assert.Equal(t, "user-7", subject)
}

func TestGetSubject_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	subject, err := GetSubject(req)
	assert.Error(t, err)
	assert.Empty(t, subject)
	assert.Contains(t, err.Error(), "subject not found")
}

func TestGetSubject_InvalidType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(context.WithValue(req.Context(), subjectKey, 12345))

	_, err := GetSubject(req)
	assert.Error(t, err)
}
