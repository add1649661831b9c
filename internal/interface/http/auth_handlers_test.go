package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func registerBody() map[string]any {
	return map[string]any{
		"firstName": "Test",
		"lastName":  "User",
		"email":     "test@example.com",
		"password":  "secret123",
	}
}

func TestRegister_ReturnsTokenAndUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", registerBody())

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "Test User", resp.User["name"])
	require.Equal(t, "test@example.com", resp.User["email"])
}

func TestRegister_DuplicateEmailIs409(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/auth/register", registerBody())

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", registerBody())

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_ShortPasswordIs400(t *testing.T) {
	env := newTestEnv(t)
	body := registerBody()
	body["password"] = "abc"

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_GoodCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/auth/register", registerBody())

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]any{"email": "test@example.com", "password": "secret123"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPasswordIs401(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/auth/register", registerBody())

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]any{"email": "test@example.com", "password": "nope"})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownEmailIs401(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]any{"email": "nobody@example.com", "password": "secret123"})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
