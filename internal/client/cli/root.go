package cli

import (
	"context"
)

// Root logs in (silently when credentials are saved), starts the online
// watcher and runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Shift journal (type 'help' for commands)")

	if !a.autoLogin(ctx) {
		if err := a.Login(ctx); err != nil {
			printlnFn("Error:", describe(err))
		}
	}

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(wctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// ensureLogin is used by one-shot subcommands.
func (a *App) ensureLogin(ctx context.Context) error {
	if a.autoLogin(ctx) {
		return nil
	}
	return a.Login(ctx)
}
