package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/smartsubstation/auth-server/internal/model"
)

// Claims represents the JWT claims carried by issued tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"userId"`
	RoleID int64 `json:"roleId"`
}

// JWT implements model.TokenCodec backed by symmetric HMAC-SHA256.
//
// There is a single process-wide signing secret and a single signing epoch:
// rotating the secret invalidates every outstanding token at once. Known
// limitation; rotation would need a key id next to the signature and a
// registry of valid keys.
type JWT struct {
	secretKey string
}

// NewJWT creates a new JWT token codec with the provided secret key.
func NewJWT(secretKey string) model.TokenCodec {
	return &JWT{secretKey: secretKey}
}

// Issue builds claims for the subject with issuedAt = now and
// expiresAt = now + ttl, then serializes and signs them.
func (j *JWT) Issue(subject string, userID, roleID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		RoleID: roleID,
	})

	tokenString, err := tok.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify decodes the token, checks signature integrity and expiry, and
// returns the claims. Failures map to exactly one of the model sentinels:
// ErrExpiredToken, ErrSignatureInvalid or ErrMalformedToken.
func (j *JWT) Verify(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return model.Claims{}, model.ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return model.Claims{}, model.ErrSignatureInvalid
		default:
			return model.Claims{}, model.ErrMalformedToken
		}
	}
	if !tok.Valid {
		return model.Claims{}, model.ErrMalformedToken
	}

	return toModelClaims(claims)
}

// Decode parses the claims without checking signature or expiry. It exists
// for callers that hold a token they do not need to trust (logout is
// best-effort); every trust decision must go through Verify instead.
func (j *JWT) Decode(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return model.Claims{}, model.ErrMalformedToken
	}

	return toModelClaims(claims)
}

func toModelClaims(claims *Claims) (model.Claims, error) {
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return model.Claims{}, model.ErrMalformedToken
	}
	return model.Claims{
		Subject:   claims.Subject,
		UserID:    claims.UserID,
		RoleID:    claims.RoleID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
