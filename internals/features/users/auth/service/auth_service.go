package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pkp_monitor_backend/internals/constants"
	pkmModel "pkp_monitor_backend/internals/features/puskesmas/model"
	"pkp_monitor_backend/internals/features/users/auth/dto"
	authModel "pkp_monitor_backend/internals/features/users/auth/model"
	"pkp_monitor_backend/internals/features/users/auth/repository"
	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
	profileRepo "pkp_monitor_backend/internals/features/users/user_profiles/repository"
)

var (
	ErrInvalidCredentials = errors.New("email atau password salah")
	ErrAccountInactive    = errors.New("akun dinonaktifkan")
	ErrPasswordMismatch   = errors.New("konfirmasi password tidak cocok")
	ErrInvalidRole        = errors.New("role tidak valid")
	ErrFacilityRequired   = errors.New("puskesmas wajib dipilih untuk petugas puskesmas")
)

// TTL cadangan untuk baris blacklist kalau exp token tidak terbaca.
const blacklistFallbackTTL = 2 * time.Minute

type ProfileReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*profileModel.UserProfileModel, error)
}

type FacilityChecker interface {
	EnsureActive(ctx context.Context, id uuid.UUID) (*pkmModel.PuskesmasModel, error)
}

type ClientMeta struct {
	UserAgent string
	IP        string
}

// Session: hasil login/refresh, dipakai controller untuk set cookie & response.
type Session struct {
	User    *authModel.UserModel
	Profile *profileModel.UserProfileModel
	Tokens  *IssuedTokens
}

type Service struct {
	store      repository.Store
	profiles   ProfileReader
	facilities FacilityChecker
	tokens     *TokenIssuer
	google     GoogleVerifier
}

func New(store repository.Store, profiles ProfileReader, facilities FacilityChecker, tokens *TokenIssuer, google GoogleVerifier) *Service {
	return &Service{store: store, profiles: profiles, facilities: facilities, tokens: tokens, google: google}
}

/* ==========================
   REGISTER
========================== */

// Register membuat akun + profil. puskesmas_id wajib (dan aktif) hanya untuk petugas_puskesmas.
func (s *Service) Register(ctx context.Context, req dto.RegisterRequest) (*authModel.UserModel, *profileModel.UserProfileModel, error) {
	req.Normalize()

	if req.Password != req.ConfirmPassword {
		return nil, nil, ErrPasswordMismatch
	}
	if !constants.IsValidRole(req.Role) {
		return nil, nil, ErrInvalidRole
	}
	if req.Role == constants.RolePetugasPuskesmas {
		if req.PuskesmasID == nil || *req.PuskesmasID == uuid.Nil {
			return nil, nil, ErrFacilityRequired
		}
		if _, err := s.facilities.EnsureActive(ctx, *req.PuskesmasID); err != nil {
			return nil, nil, err
		}
	}

	if _, err := s.store.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, nil, repository.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &authModel.UserModel{Email: req.Email, Password: string(hash), IsActive: true}
	profile := &profileModel.UserProfileModel{
		NamaLengkap: req.NamaLengkap,
		NIP:         req.NIP,
		Jabatan:     req.Jabatan,
		Role:        req.Role,
		PuskesmasID: req.PuskesmasID,
	}
	if err := s.store.CreateUserWithProfile(ctx, user, profile); err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

/* ==========================
   LOGIN
========================== */

func (s *Service) Login(ctx context.Context, req dto.LoginRequest, meta ClientMeta) (*Session, error) {
	user, err := s.store.FindUserByEmail(ctx, dto.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	return s.startSession(ctx, user, meta)
}

// LoginGoogle hanya untuk email yang sudah terdaftar; google_id ditautkan saat login pertama.
func (s *Service) LoginGoogle(ctx context.Context, idToken string, meta ClientMeta) (*Session, error) {
	if s.google == nil {
		return nil, ErrGoogleDisabled
	}
	ident, err := s.google.Verify(strings.TrimSpace(idToken))
	if err != nil {
		return nil, ErrGoogleTokenInvalid
	}

	user, err := s.store.FindUserByEmail(ctx, dto.NormalizeEmail(ident.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrGoogleNotRegistered
		}
		return nil, err
	}
	if user.GoogleID != nil && *user.GoogleID != ident.Subject {
		return nil, ErrGoogleTokenInvalid
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	if user.GoogleID == nil && ident.Subject != "" {
		if err := s.store.LinkGoogleID(ctx, user.ID, ident.Subject); err != nil {
			return nil, fmt.Errorf("link google id: %w", err)
		}
	}
	return s.startSession(ctx, user, meta)
}

/* ==========================
   REFRESH (rotate)
========================== */

func (s *Service) Refresh(ctx context.Context, refreshToken string, meta ClientMeta) (*Session, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}
	userID, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	rt, err := s.store.FindRefreshToken(ctx, s.tokens.RefreshHash(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	now := s.tokens.Now()
	if rt.RevokedAt != nil || !rt.ExpiresAt.After(now) || rt.UserID != userID {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	if err := s.store.RevokeRefreshToken(ctx, rt.ID, now); err != nil {
		zap.L().Warn("[AUTH] revoke refresh lama gagal", zap.Error(err))
	}
	return s.startSession(ctx, user, meta)
}

/* ==========================
   LOGOUT
========================== */

// Logout mem-blacklist access token (idempotent) dan mencabut refresh token kalau ada.
func (s *Service) Logout(ctx context.Context, accessToken, refreshToken string) error {
	now := s.tokens.Now()

	if accessToken = strings.TrimSpace(accessToken); accessToken != "" {
		exp, ok := s.tokens.AccessExpiry(accessToken)
		if !ok || exp.Before(now) {
			exp = now.Add(blacklistFallbackTTL)
		}
		if err := s.store.BlacklistToken(ctx, authModel.HashToken(accessToken), exp.Add(time.Minute)); err != nil {
			return fmt.Errorf("blacklist token: %w", err)
		}
	}

	if refreshToken = strings.TrimSpace(refreshToken); refreshToken != "" {
		rt, err := s.store.FindRefreshToken(ctx, s.tokens.RefreshHash(refreshToken))
		switch {
		case err == nil:
			if err := s.store.RevokeRefreshToken(ctx, rt.ID, now); err != nil {
				return fmt.Errorf("revoke refresh token: %w", err)
			}
		case !errors.Is(err, repository.ErrRefreshTokenNotFound):
			return err
		}
	}
	return nil
}

/* ==========================
   ME
========================== */

// Me: akun + profil (profil boleh nil kalau belum pernah dibuat).
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*authModel.UserModel, *profileModel.UserProfileModel, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

/* ==========================
   Helpers
========================== */

func (s *Service) loadProfile(ctx context.Context, userID uuid.UUID) (*profileModel.UserProfileModel, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) startSession(ctx context.Context, user *authModel.UserModel, meta ClientMeta) (*Session, error) {
	profile, err := s.loadProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	tokens, err := s.tokens.Issue(user.ID, profile)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveRefreshToken(ctx, &authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokens.RefreshHash,
		ExpiresAt: tokens.RefreshExpiresAt,
		UserAgent: strptr(meta.UserAgent),
		IP:        strptr(meta.IP),
	}); err != nil {
		return nil, fmt.Errorf("simpan refresh token: %w", err)
	}

	now := s.tokens.Now()
	if err := s.store.TouchLastLogin(ctx, user.ID, now); err != nil {
		zap.L().Warn("[AUTH] update last_login_at gagal", zap.String("user_id", user.ID.String()), zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}

	return &Session{User: user, Profile: profile, Tokens: tokens}, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
