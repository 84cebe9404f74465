package services

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kos3l/manageable-kanban-api/apperrors"
)

const accessTokenTTL = 10 * time.Minute
const refreshTokenTTL = 7 * 24 * time.Hour

// JWTService issues and validates the access/refresh token pair. The rest of
// the system only ever sees the user id extracted from a valid token.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewJWTService() *JWTService {
	return &JWTService{
		accessSecret:  []byte(os.Getenv("JWT_SECRET")),
		refreshSecret: []byte(os.Getenv("REFRESH_TOKEN_SECRET")),
	}
}

// GenerateTokenPair creates a short-lived access token and a long-lived
// refresh token for the user.
func (s *JWTService) GenerateTokenPair(name, userID string) (accessToken, refreshToken string, err error) {
	accessToken, err = s.sign(name, userID, s.accessSecret, accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = s.sign(name, userID, s.refreshSecret, refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// GenerateAccessToken creates a fresh access token only.
func (s *JWTService) GenerateAccessToken(name, userID string) (string, error) {
	return s.sign(name, userID, s.accessSecret, accessTokenTTL)
}

// ValidateAccessToken returns the user id carried by a valid access token.
func (s *JWTService) ValidateAccessToken(tokenStr string) (string, error) {
	return s.validate(tokenStr, s.accessSecret)
}

// ValidateRefreshToken returns the user id carried by a valid refresh token.
func (s *JWTService) ValidateRefreshToken(tokenStr string) (string, error) {
	return s.validate(tokenStr, s.refreshSecret)
}

func (s *JWTService) sign(name, userID string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"name": name,
		"id":   userID,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindInternal, "failed to sign token", err)
	}
	return signed, nil
}

func (s *JWTService) validate(tokenStr string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", apperrors.New(apperrors.KindForbidden, "invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperrors.New(apperrors.KindForbidden, "invalid token claims")
	}
	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", apperrors.New(apperrors.KindForbidden, "invalid token claims")
	}
	return userID, nil
}
