package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/shiftjournal/internal/timex"
	"gopkg.in/yaml.v3"
)

// Mail backends.
const (
	MailBackendEML   = "eml"
	MailBackendGraph = "graph"
)

// MailConfig controls how shift reports are turned into mail drafts.
type MailConfig struct {
	Backend       string   `yaml:"backend"`
	To            []string `yaml:"to"`
	Cc            []string `yaml:"cc"`
	DraftDir      string   `yaml:"draft_dir"`
	GraphTenant   string   `yaml:"graph_tenant"`
	GraphClientID string   `yaml:"graph_client_id"`
	GraphToken    string   `yaml:"graph_token_cache"`
}

// VoiceConfig controls dictation.
type VoiceConfig struct {
	APIKeyEnv       string   `yaml:"api_key_env"`
	Model           string   `yaml:"model"`
	Language        string   `yaml:"language"`
	RecorderCommand []string `yaml:"recorder_command"`
}

// Config holds runtime settings for the journal client.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DatabasePath        string
	LogFile             string
	Verbose             bool
	ExportDir           string
	Mail                MailConfig
	Voice               VoiceConfig
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = "journal_client.db"
	c.LogFile = "app.log"
	c.ExportDir = "reports"
	c.Mail = MailConfig{
		Backend:     MailBackendEML,
		DraftDir:    os.TempDir(),
		GraphTenant: "common",
		GraphToken:  "graph_token.json",
	}
	c.Voice = VoiceConfig{
		APIKeyEnv:       "GEMINI_API_KEY",
		Model:           "gemini-2.5-flash",
		Language:        "ru-RU",
		RecorderCommand: []string{"arecord", "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "raw"},
	}
}

// yamlConfig is the on-disk shape. Zero values leave the current setting
// untouched.
type yamlConfig struct {
	ServerEndpointAddr  string         `yaml:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `yaml:"online_check_interval"`
	DatabasePath        string         `yaml:"database_path"`
	LogFile             string         `yaml:"log_file"`
	Verbose             bool           `yaml:"verbose"`
	ExportDir           string         `yaml:"export_dir"`
	Mail                MailConfig     `yaml:"mail"`
	Voice               VoiceConfig    `yaml:"voice"`
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setStrings(dst *[]string, v []string) {
	if len(v) > 0 {
		*dst = v
	}
}

// LoadFile overlays c with the YAML file at path.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&c.ServerEndpointAddr, yc.ServerEndpointAddr)
	if yc.OnlineCheckInterval.Duration > 0 {
		c.OnlineCheckInterval = yc.OnlineCheckInterval.Duration
	}
	setString(&c.DatabasePath, yc.DatabasePath)
	setString(&c.LogFile, yc.LogFile)
	c.Verbose = c.Verbose || yc.Verbose
	setString(&c.ExportDir, yc.ExportDir)

	setString(&c.Mail.Backend, yc.Mail.Backend)
	setStrings(&c.Mail.To, yc.Mail.To)
	setStrings(&c.Mail.Cc, yc.Mail.Cc)
	setString(&c.Mail.DraftDir, yc.Mail.DraftDir)
	setString(&c.Mail.GraphTenant, yc.Mail.GraphTenant)
	setString(&c.Mail.GraphClientID, yc.Mail.GraphClientID)
	setString(&c.Mail.GraphToken, yc.Mail.GraphToken)

	setString(&c.Voice.APIKeyEnv, yc.Voice.APIKeyEnv)
	setString(&c.Voice.Model, yc.Voice.Model)
	setString(&c.Voice.Language, yc.Voice.Language)
	setStrings(&c.Voice.RecorderCommand, yc.Voice.RecorderCommand)

	return c.Validate()
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	switch c.Mail.Backend {
	case MailBackendEML, MailBackendGraph:
	default:
		return fmt.Errorf("unknown mail backend %q", c.Mail.Backend)
	}
	if c.Mail.Backend == MailBackendGraph && c.Mail.GraphClientID == "" {
		return fmt.Errorf("mail backend %q needs graph_client_id", MailBackendGraph)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive")
	}
	return nil
}
