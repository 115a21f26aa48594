package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shiftjournal/internal/buildinfo"
	"github.com/dmitrijs2005/shiftjournal/internal/client/config"
	"github.com/dmitrijs2005/shiftjournal/internal/logging"
	"github.com/spf13/cobra"
)

// Seams for the command tests.
var (
	newApp    = NewApp
	newLogger = func(c *config.Config) (*logging.ZapLogger, error) { return logging.NewFileZapLogger(c.LogFile, c.Verbose) }
	runAppFn  = func(ctx context.Context, a *App) error { a.Run(ctx); return nil }
)

var runFilterFn = func(ctx context.Context, a *App) error {
	defer a.close()
	if err := a.ensureLogin(ctx); err != nil {
		return err
	}
	return a.Filter(ctx)
}

func (a *App) close() {
	if a.auth != nil {
		_ = a.auth.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// NewRootCommand builds the "shiftjournal" command tree. Without a
// subcommand it starts the interactive REPL.
func NewRootCommand() *cobra.Command {
	var flags config.Flags

	root := &cobra.Command{
		Use:           "shiftjournal",
		Short:         "Shift handover journal client",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, &flags, runAppFn)
		},
	}
	flags.Register(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "filter",
			Short: "Search the whole journal by content and note",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd, &flags, runFilterFn)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				buildinfo.Print(cmd.OutOrStdout())
			},
		},
	)
	return root
}

func withApp(cmd *cobra.Command, flags *config.Flags, run func(context.Context, *App) error) error {
	cfg, err := flags.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("opening log %s: %w", cfg.LogFile, err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info(ctx, "client started", "server", cfg.ServerEndpointAddr)
	return run(ctx, app)
}
