package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domuser "example.com/trendy-store/internal/domain/user"
)

func TestJWT_Roundtrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	u := &domuser.User{ID: 7, FirstName: "Test", LastName: "User", Email: "test@example.com", IsAdmin: true}

	token, err := svc.GenerateToken(u)
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
	require.Equal(t, "test@example.com", claims.Email)
	require.Equal(t, "Test User", claims.Name)
	require.True(t, claims.IsAdmin)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, err := issuer.GenerateToken(&domuser.User{ID: 7})
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
}

func TestJWT_ExpiredRejected(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(&domuser.User{ID: 7})
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	require.Error(t, err)
}

func TestJWT_GarbageRejected(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	_, err := svc.ParseToken("not.a.token")
	require.Error(t, err)
}

func TestBcrypt_HashAndCompare(t *testing.T) {
	svc := NewBcryptService(bcrypt.MinCost)

	hash, err := svc.Hash("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	require.NoError(t, svc.Compare(hash, "secret123"))
	require.Error(t, svc.Compare(hash, "wrong"))
}
