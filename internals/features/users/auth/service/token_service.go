package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
)

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

var (
	ErrSecretMissing       = errors.New("JWT secret belum diset")
	ErrInvalidRefreshToken = errors.New("refresh token tidak valid")
)

// TokenIssuer membuat & memverifikasi pasangan access/refresh token (HS256).
type TokenIssuer struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

func NewTokenIssuer(accessSecret, refreshSecret string) *TokenIssuer {
	return &TokenIssuer{
		AccessSecret:  strings.TrimSpace(accessSecret),
		RefreshSecret: strings.TrimSpace(refreshSecret),
		AccessTTL:     accessTTLDefault,
		RefreshTTL:    refreshTTLDefault,
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

type IssuedTokens struct {
	AccessToken      string
	RefreshToken     string
	RefreshHash      []byte
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

func (t *TokenIssuer) refreshSecret() string {
	if t.RefreshSecret != "" {
		return t.RefreshSecret
	}
	return t.AccessSecret
}

// buildAccessClaims: role & puskesmas_id ikut di token untuk front-end,
// tapi middleware tetap memuat ulang dari DB.
func buildAccessClaims(userID uuid.UUID, p *profileModel.UserProfileModel, now time.Time, ttl time.Duration) jwt.MapClaims {
	claims := jwt.MapClaims{
		"typ": "access",
		"sub": userID.String(),
		"id":  userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if p != nil {
		claims["role"] = p.Role
		if p.PuskesmasID != nil {
			claims["puskesmas_id"] = p.PuskesmasID.String()
		} else {
			claims["puskesmas_id"] = nil
		}
	}
	return claims
}

func buildRefreshClaims(userID uuid.UUID, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
}

func (t *TokenIssuer) Issue(userID uuid.UUID, p *profileModel.UserProfileModel) (*IssuedTokens, error) {
	if t.AccessSecret == "" {
		return nil, ErrSecretMissing
	}
	now := t.Now()

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(userID, p, now, t.AccessTTL)).
		SignedString([]byte(t.AccessSecret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(userID, now, t.RefreshTTL)).
		SignedString([]byte(t.refreshSecret()))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &IssuedTokens{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshHash:      t.RefreshHash(refresh),
		AccessExpiresAt:  now.Add(t.AccessTTL),
		RefreshExpiresAt: now.Add(t.RefreshTTL),
	}, nil
}

// RefreshHash: HMAC-SHA256 refresh token, yang disimpan di DB.
func (t *TokenIssuer) RefreshHash(token string) []byte {
	m := hmac.New(sha256.New, []byte(t.refreshSecret()))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

// ParseRefresh memvalidasi signature + exp + typ dan mengembalikan user id (sub).
func (t *TokenIssuer) ParseRefresh(token string) (uuid.UUID, error) {
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	claims := jwt.MapClaims{}
	tok, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(t.refreshSecret()), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return id, nil
}

// AccessExpiry membaca exp dari access token (tanpa cek kadaluarsa).
// Dipakai untuk menentukan TTL baris blacklist saat logout.
func (t *TokenIssuer) AccessExpiry(token string) (time.Time, bool) {
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	claims := jwt.MapClaims{}
	if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(t.AccessSecret), nil
	}); err != nil {
		return time.Time{}, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(exp), 0).UTC(), true
}
