package service

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"sellora-backend/models"
)

// AuthService issues and verifies access tokens and hashes passwords
type AuthService struct {
	secret []byte
	ttl    time.Duration
}

// NewAuthService creates a new AuthService. The signing secret comes from
// JWT_SECRET; the token lifetime defaults to 24 hours.
func NewAuthService() *AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		log.Printf("⚠️  JWT_SECRET not set, using insecure development secret")
	}
	return &AuthService{
		secret: []byte(secret),
		ttl:    24 * time.Hour,
	}
}

type accessClaims struct {
	CustomerID   int64 `json:"cid"`
	IsStaff      bool  `json:"staff"`
	IsWholesaler bool  `json:"wholesale"`
	jwt.RegisteredClaims
}

// HashPassword hashes a plaintext password with bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", fmt.Errorf("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether a plaintext password matches a stored hash
func (s *AuthService) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs an HS256 access token for the given identity
func (s *AuthService) IssueToken(user *models.User, customer *models.Customer) (string, error) {
	now := time.Now()
	claims := accessClaims{
		CustomerID:   customer.ID,
		IsStaff:      user.IsStaff,
		IsWholesaler: customer.IsWholesaler(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates an access token, returning the identity
// it carries
func (s *AuthService) VerifyToken(tokenString string) (*models.AuthContext, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	var userID int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", err)
	}

	return &models.AuthContext{
		UserID:       userID,
		CustomerID:   claims.CustomerID,
		IsStaff:      claims.IsStaff,
		IsWholesaler: claims.IsWholesaler,
	}, nil
}
