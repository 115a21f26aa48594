package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags are the persistent command-line overrides of the root command.
type Flags struct {
	ConfigFile          string
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DatabasePath        string
	ExportDir           string
	MailBackend         string
	Verbose             bool
}

// Register defines the flags on fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.ConfigFile, "config", "c", "", "path to YAML config file")
	fs.StringVarP(&f.ServerEndpointAddr, "address", "a", "", "address and port of the journal server")
	fs.DurationVarP(&f.OnlineCheckInterval, "online-check", "i", 0, "server reachability check interval")
	fs.StringVar(&f.DatabasePath, "db", "", "local database file")
	fs.StringVar(&f.ExportDir, "export-dir", "", "directory for exported reports")
	fs.StringVar(&f.MailBackend, "mail-backend", "", "mail draft backend: eml or graph")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "debug logging")
}

// Load builds the effective configuration: defaults, then the YAML file when
// one was given, then every flag the user set explicitly.
func (f *Flags) Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if f.ConfigFile != "" {
		if err := cfg.LoadFile(f.ConfigFile); err != nil {
			return nil, err
		}
	}

	if fs.Changed("address") {
		cfg.ServerEndpointAddr = f.ServerEndpointAddr
	}
	if fs.Changed("online-check") {
		cfg.OnlineCheckInterval = f.OnlineCheckInterval
	}
	if fs.Changed("db") {
		cfg.DatabasePath = f.DatabasePath
	}
	if fs.Changed("export-dir") {
		cfg.ExportDir = f.ExportDir
	}
	if fs.Changed("mail-backend") {
		cfg.Mail.Backend = f.MailBackend
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.Verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
