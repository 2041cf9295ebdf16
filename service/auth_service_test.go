package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellora-backend/models"
)

const svcTestTTL = time.Hour

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := NewAuthService()

	hash, err := svc.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, svc.CheckPassword(hash, "correct horse"))
	assert.False(t, svc.CheckPassword(hash, "wrong horse"))
}

func TestHashPasswordTooShort(t *testing.T) {
	svc := NewAuthService()

	_, err := svc.HashPassword("abc")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService()

	user := &models.User{ID: 12, Email: "staff@example.com", IsStaff: true}
	customer := &models.Customer{ID: 34, UserID: 12, CustomerType: models.CustomerTypeWholesale}

	token, err := svc.IssueToken(user, customer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	auth, err := svc.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(12), auth.UserID)
	assert.Equal(t, int64(34), auth.CustomerID)
	assert.True(t, auth.IsStaff)
	assert.True(t, auth.IsWholesaler)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService()

	_, err := svc.VerifyToken("not.a.token")
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc := &AuthService{secret: []byte("test-secret"), ttl: -time.Minute}

	user := &models.User{ID: 5, Email: "late@example.com"}
	customer := &models.Customer{ID: 6, UserID: 5, CustomerType: models.CustomerTypeRetail}

	token, err := svc.IssueToken(user, customer)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsForeignSignature(t *testing.T) {
	issuer := &AuthService{secret: []byte("issuer-secret"), ttl: svcTestTTL}
	verifier := &AuthService{secret: []byte("other-secret"), ttl: svcTestTTL}

	user := &models.User{ID: 1, Email: "a@example.com"}
	customer := &models.Customer{ID: 2, UserID: 1, CustomerType: models.CustomerTypeRetail}

	token, err := issuer.IssueToken(user, customer)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}
