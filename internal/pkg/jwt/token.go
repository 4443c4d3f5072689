package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/piresc/taxigo/internal/pkg/models"
)

// Token kinds carried in the kind claim. An access token can never be used
// where a refresh token is expected and vice versa.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"

	// TokenTypeBearer is the token_type reported to clients.
	TokenTypeBearer = "Bearer"
)

// Verification failures callers branch on for status mapping.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrWrongTokenKind = errors.New("wrong token kind")
)

// Claims represents standard JWT claims plus custom fields
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	Kind   string    `json:"kind"`
	jwt.RegisteredClaims
}

// IssueTokenPair generates an access and a refresh token for the given
// user. Both are signed with the shared secret; ExpiresIn reports the
// access token lifetime in seconds.
func IssueTokenPair(userID uuid.UUID, email, role string, cfg models.JWTConfig) (*models.AuthResponse, error) {
	now := time.Now()

	accessToken, err := signToken(userID, email, role, TokenKindAccess, now,
		time.Duration(cfg.AccessExpiration)*time.Minute, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := signToken(userID, email, role, TokenKindRefresh, now,
		time.Duration(cfg.RefreshExpiration)*time.Minute, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(time.Duration(cfg.AccessExpiration) * time.Minute / time.Second),
		TokenType:    TokenTypeBearer,
	}, nil
}

func signToken(userID uuid.UUID, email, role, kind string, now time.Time, ttl time.Duration, cfg models.JWTConfig) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// VerifyToken validates a token string against the secret and the expected
// kind. Expiry, kind mismatch and everything else are reported as distinct
// errors so callers can map them to the right status code.
func VerifyToken(tokenString, expectedKind, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.Kind != expectedKind {
		return nil, ErrWrongTokenKind
	}

	return claims, nil
}

// RefreshAccessToken verifies a refresh token and mints a new access token
// from its embedded subject claims. The refresh token itself is not
// rotated; it stays valid until its own expiry, so a leaked refresh token
// can only be invalidated by rotating the secret.
func RefreshAccessToken(refreshToken string, cfg models.JWTConfig) (*models.RefreshResponse, error) {
	claims, err := VerifyToken(refreshToken, TokenKindRefresh, cfg.Secret)
	if err != nil {
		return nil, err
	}

	accessToken, err := signToken(claims.UserID, claims.Email, claims.Role, TokenKindAccess,
		time.Now(), time.Duration(cfg.AccessExpiration)*time.Minute, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &models.RefreshResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(time.Duration(cfg.AccessExpiration) * time.Minute / time.Second),
		TokenType:   TokenTypeBearer,
	}, nil
}
