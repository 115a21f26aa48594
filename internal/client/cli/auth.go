package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/shiftjournal/internal/client/services"
	"github.com/dmitrijs2005/shiftjournal/internal/common"
)

// Indirections over the interactive input helpers, swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getMultiline    = GetMultiline
	getConfirmation = GetConfirmation
)

func withDefault(prompt, def string) string {
	if def == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s]", prompt, def)
}

// Register prompts for host, username and password and creates an account.
// The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	host, err := getSimpleText(a.reader, withDefault("Server address", a.auth.Host()), a.out)
	if err != nil {
		return err
	}
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, host, userName, password); err != nil {
		return err
	}

	printlnFn("Success! You can log in now.")
	return nil
}

// Login prompts for credentials, defaulting host and username from the
// saved credentials. An empty username reuses the saved password. After a
// successful login with typed credentials the user is offered to save them.
func (a *App) Login(ctx context.Context) error {
	saved, err := a.auth.SavedCredentials(ctx)
	if err != nil {
		a.logger.Warn(ctx, "reading saved credentials failed", "error", err)
		saved = nil
	}

	defHost, defUser := a.auth.Host(), ""
	if saved != nil {
		if saved.Host != "" {
			defHost = saved.Host
		}
		defUser = saved.Username
	}

	host, err := getSimpleText(a.reader, withDefault("Server address", defHost), a.out)
	if err != nil {
		return err
	}
	if host == "" {
		host = defHost
	}

	userName, err := getSimpleText(a.reader, withDefault("Enter username", defUser), a.out)
	if err != nil {
		return err
	}

	var password []byte
	fromSaved := userName == "" && saved != nil
	if fromSaved {
		userName = saved.Username
		password = bytes.Clone(saved.Password)
	} else {
		if password, err = getPassword(a.out); err != nil {
			return err
		}
	}
	defer common.WipeByteArray(password)

	if err := a.loginWith(ctx, host, userName, password); err != nil {
		return err
	}

	if !fromSaved {
		save, err := getConfirmation(a.reader, "Save credentials on this computer?", a.out)
		if err == nil && save {
			c := services.Credentials{Host: host, Username: userName, Password: password}
			if err := a.auth.SaveCredentials(ctx, c); err != nil {
				return fmt.Errorf("saving credentials: %w", err)
			}
		}
	}
	return nil
}

// autoLogin uses saved credentials without prompting. It reports whether a
// session was established.
func (a *App) autoLogin(ctx context.Context) bool {
	saved, err := a.auth.SavedCredentials(ctx)
	if err != nil || saved == nil {
		return false
	}
	defer common.WipeByteArray(saved.Password)

	if err := a.loginWith(ctx, saved.Host, saved.Username, saved.Password); err != nil {
		printlnFn("Automatic login failed:", describe(err))
		return false
	}
	return true
}

func (a *App) loginWith(ctx context.Context, host, userName string, password []byte) error {
	if err := a.auth.Login(ctx, host, userName, password); err != nil {
		a.setMode(ModeOffline)
		return err
	}

	a.setUserName(userName)
	a.setMode(ModeOnline)
	printlnFn("Logged in as", userName, "at", a.auth.Host())

	if err := a.Today(ctx); err != nil {
		a.logger.Warn(ctx, "active slot lookup failed", "error", err)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.setUserName("")
	if err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

// Forget removes the saved credentials; the current session stays.
func (a *App) Forget(ctx context.Context) error {
	if err := a.auth.Forget(ctx); err != nil {
		return err
	}
	printlnFn("Saved credentials removed")
	return nil
}
