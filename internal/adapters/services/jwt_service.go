package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"notekeeper/internal/domain/entities"
	svc "notekeeper/internal/ports/services"
	"notekeeper/pkg/logger"
)

const (
	methodGenerateAccessToken = "GenerateAccessToken"
	methodValidateAccessToken = "ValidateAccessToken"

	msgGeneratingAccessToken = "generating access token"
	msgValidatingToken       = "validating token"
	msgTokenGenerated        = "token generated successfully"
	msgTokenValidated        = "token validated successfully"
	msgInvalidToken          = "invalid token format"
	msgTokenExpired          = "token has expired"

	errSigningToken       = "error signing token"
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxValidatingToken = "validating token"
)

// Token errors.
var (
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token expired")
	ErrEmptySecretKey   = errors.New("empty secret key")
)

// Claims adapts the principal to the JWT library claim set.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ServiceJWT implements the TokenService port with HS256 tokens.
type ServiceJWT struct {
	secretKey []byte
	tokenTTL  time.Duration
}

// NewJWT creates a new JWT token service.
func NewJWT(secretKey string, tokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

// GenerateAccessToken mints a signed token carrying the principal.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, principal entities.Principal) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateAccessToken),
		zap.String("email", principal.Email),
	)
	log.Debug(ctx, msgGeneratingAccessToken)

	if len(s.secretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", time.Time{}, fmt.Errorf("%s: %w", errCtxGeneratingToken, ErrEmptySecretKey)
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := Claims{
		Email: principal.Email,
		Role:  string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// ValidateAccessToken parses the token and returns the embedded principal.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (entities.Principal, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateAccessToken))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return entities.Principal{}, fmt.Errorf("%s: %w", errCtxValidatingToken, ErrExpiredToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return entities.Principal{}, fmt.Errorf("%s: %w: %w", errCtxValidatingToken, ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return entities.Principal{}, fmt.Errorf("%s: %w", errCtxValidatingToken, ErrInvalidToken)
	}

	if claims.Email == "" {
		log.Debug(ctx, "email claim is empty")
		return entities.Principal{}, fmt.Errorf("%s: %w: empty email", errCtxValidatingToken, ErrInvalidToken)
	}

	role, err := entities.ParseRole(claims.Role)
	if err != nil {
		log.Debug(ctx, "unknown role claim", zap.String("role", claims.Role))
		return entities.Principal{}, fmt.Errorf("%s: %w", errCtxValidatingToken, ErrInvalidToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("email", claims.Email))
	return entities.Principal{Email: claims.Email, Role: role}, nil
}
