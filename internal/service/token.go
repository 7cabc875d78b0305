package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/quantity-service/config"
)

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken is returned when a token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AdminClaims are the JWT claims carried by an admin token.
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the admin tokens protecting the
// profile management API. Credentials come from configuration: a single
// admin account whose password is stored as a bcrypt hash.
type TokenService interface {
	// Login verifies the admin credentials and returns a signed token with
	// its lifetime in seconds.
	Login(username, password string) (token string, expiresIn int64, err error)
	// Validate parses and verifies a token, returning its claims.
	Validate(tokenString string) (*AdminClaims, error)
}

// TokenServiceImpl implements TokenService.
type TokenServiceImpl struct {
	adminUsername     string
	adminPasswordHash string
	secretKey         []byte
	tokenTTL          time.Duration
}

// NewTokenService creates a new token service from the auth configuration.
func NewTokenService(cfg config.AuthConfig) TokenService {
	return &TokenServiceImpl{
		adminUsername:     cfg.AdminUsername,
		adminPasswordHash: cfg.AdminPasswordHash,
		secretKey:         []byte(cfg.JWTSecretKey),
		tokenTTL:          cfg.TokenTTL,
	}
}

// Login verifies the admin credentials and returns a signed token.
func (s *TokenServiceImpl) Login(username, password string) (string, int64, error) {
	if username != s.adminUsername || s.adminPasswordHash == "" {
		return "", 0, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		return "", 0, ErrInvalidCredentials
	}

	now := time.Now()
	claims := &AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.tokenTTL.Seconds()), nil
}

// Validate parses and verifies a token, returning its claims.
func (s *TokenServiceImpl) Validate(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
