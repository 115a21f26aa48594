package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/cryptox"
	"github.com/dmitrijs2005/shiftjournal/internal/dbx"
	"github.com/dmitrijs2005/shiftjournal/internal/server/auth"
	"github.com/dmitrijs2005/shiftjournal/internal/server/config"
	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/repomanager"
)

// Seams for tests.
var (
	hashPassword   = cryptox.HashPassword
	verifyPassword = cryptox.VerifyPassword
	timeNow        = time.Now
)

// decoyHash is verified against when the user does not exist so that a
// missing login costs the same as a wrong password.
var decoyHash = sync.OnceValue(func() string {
	return cryptox.HashPassword([]byte("decoy"))
})

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService registers operators and mints tokens for them.
type UserService struct {
	keeper                       DBProvider
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewUserService(keeper DBProvider, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		keeper:                       keeper,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates an account. A taken name yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, userName string, password []byte) (*models.User, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" || len(password) == 0 {
		return nil, fmt.Errorf("%w: user name and password are required", common.ErrValidation)
	}

	db, err := s.keeper.DB(ctx)
	if err != nil {
		return nil, err
	}

	user := &models.User{UserName: userName, PasswordHash: hashPassword(password)}
	u, err := s.repomanager.Users(db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the password and returns a fresh TokenPair. Unknown users and
// wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName string, password []byte) (*TokenPair, error) {
	db, err := s.keeper.DB(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(db).GetUserByLogin(ctx, strings.TrimSpace(userName))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = verifyPassword(decoyHash(), password)
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	ok, err := verifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	return s.generateTokenPair(ctx, user.ID, db)
}

// RefreshToken rotates refreshToken: the old one is deleted and a new pair is
// issued in the same transaction.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	db, err := s.keeper.DB(ctx)
	if err != nil {
		return nil, err
	}

	token, err := s.repomanager.RefreshTokens(db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(timeNow()) {
		_ = s.repomanager.RefreshTokens(db).Delete(ctx, refreshToken)
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var err error
		pair, err = s.generateTokenPair(ctx, token.UserID, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes all refresh tokens of userID.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	db, err := s.keeper.DB(ctx)
	if err != nil {
		return err
	}
	if _, err := s.repomanager.RefreshTokens(db).DeleteForUser(ctx, userID); err != nil {
		return fmt.Errorf("error revoking tokens: %w", err)
	}
	return nil
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
