// Package services contains application services for the journal client.
// This file covers accounts: register, login against a chosen host, the
// opt-in saved credentials and logout.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/shiftjournal/internal/client/client"
	"github.com/dmitrijs2005/shiftjournal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/shiftjournal/internal/dbx"
	"github.com/dmitrijs2005/shiftjournal/internal/logging"
)

const (
	credentialsPrefix = "credentials."
	keyUsername       = credentialsPrefix + "username"
	keyPassword       = credentialsPrefix + "password"
	keyHost           = credentialsPrefix + "host"
)

// Credentials are what the login prompt asks for. They are only persisted
// when the user opts in.
type Credentials struct {
	Host     string
	Username string
	Password []byte
}

// AuthService defines account operations for the CLI.
//
// Login and Register switch the connection to host first when it differs
// from the current endpoint. Saved credentials are stored in plain text in
// the local database.
type AuthService interface {
	Register(ctx context.Context, host, username string, password []byte) error
	Login(ctx context.Context, host, username string, password []byte) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	LoggedIn() bool
	Host() string
	Close() error

	SaveCredentials(ctx context.Context, c Credentials) error
	SavedCredentials(ctx context.Context) (*Credentials, error)
	Forget(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	logger logging.Logger
}

func NewAuthService(c client.Client, db *sql.DB, l logging.Logger) AuthService {
	return &authService{client: c, db: db, logger: l}
}

func (a *authService) metadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

func (a *authService) useHost(host string) error {
	if host == "" || host == a.client.Endpoint() {
		return nil
	}
	a.logger.Info(context.Background(), "switching server", "from", a.client.Endpoint(), "to", host)
	return a.client.Reconnect(host)
}

func (a *authService) Register(ctx context.Context, host, username string, password []byte) error {
	if err := a.useHost(host); err != nil {
		return err
	}
	if err := a.client.Register(ctx, username, password); err != nil {
		a.logger.Warn(ctx, "register failed", "user", username, "error", err)
		return err
	}
	a.logger.Info(ctx, "registered", "user", username)
	return nil
}

func (a *authService) Login(ctx context.Context, host, username string, password []byte) error {
	if err := a.useHost(host); err != nil {
		return err
	}
	if err := a.client.Login(ctx, username, password); err != nil {
		a.logger.Warn(ctx, "login failed", "user", username, "host", a.client.Endpoint(), "error", err)
		return fmt.Errorf("login error: %w", err)
	}
	a.logger.Info(ctx, "logged in", "user", username, "host", a.client.Endpoint())
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.client.Logout(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) LoggedIn() bool {
	return a.client.LoggedIn()
}

func (a *authService) Host() string {
	return a.client.Endpoint()
}

func (a *authService) Close() error {
	return a.client.Close()
}

// SaveCredentials stores all three values in one transaction.
func (a *authService) SaveCredentials(ctx context.Context, c Credentials) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyHost, []byte(c.Host)); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyUsername, []byte(c.Username)); err != nil {
			return err
		}
		return repo.Set(ctx, keyPassword, c.Password)
	})
}

// SavedCredentials returns nil when nothing was saved.
func (a *authService) SavedCredentials(ctx context.Context) (*Credentials, error) {
	repo := a.metadataRepo()

	user, err := repo.Get(ctx, keyUsername)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	pass, err := repo.Get(ctx, keyPassword)
	if err != nil {
		return nil, err
	}
	host, err := repo.Get(ctx, keyHost)
	if err != nil {
		return nil, err
	}
	return &Credentials{Host: string(host), Username: string(user), Password: pass}, nil
}

func (a *authService) Forget(ctx context.Context) error {
	n, err := a.metadataRepo().DeletePrefix(ctx, credentialsPrefix)
	if err != nil {
		return err
	}
	a.logger.Info(ctx, "saved credentials removed", "keys", n)
	return nil
}
