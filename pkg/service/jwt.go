package service

import (
	"time"

	apperrors "sdo-ticketing/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Claims is the session payload embedded in every access token. Role and
// school fields let handlers authorize without a database round-trip.
type Claims struct {
	UserID     uint64 `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	School     string `json:"school"`
	SchoolCode string `json:"schoolCode"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateToken(claims Claims) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetAccessTokenTTL() time.Duration
}

type jwtService struct {
	secretKey      string
	accessTokenTTL time.Duration
	logger         *zap.Logger
}

func NewJWTService(secretKey string, accessTokenTTL time.Duration, logger *zap.Logger) JWTService {
	return &jwtService{
		secretKey:      secretKey,
		accessTokenTTL: accessTokenTTL,
		logger:         logger,
	}
}

func (s *jwtService) GenerateToken(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &claims)
	return token.SignedString([]byte(s.secretKey))
}

func (s *jwtService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(s.secretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		s.logger.Warn("token parse or signature check failed", zap.Error(err))
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}

	return claims, nil
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.accessTokenTTL
}
