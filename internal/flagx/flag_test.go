package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	owned := []string{"-c", "--config", "-a", "-d"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"separate value", []string{"-c", "server.json", "-v"}, []string{"-c", "server.json"}},
		{"equals form", []string{"--config=alt.json", "-x", "1"}, []string{"--config=alt.json"}},
		{"order preserved", []string{"-a", ":50051", "-c", "s.json", "-d", "postgres://u@db/journal"},
			[]string{"-a", ":50051", "-c", "s.json", "-d", "postgres://u@db/journal"}},
		{"foreign flags dropped", []string{"-x", "1", "--y=2", "positional"}, []string{}},
		{"trailing flag without value", []string{"-c"}, []string{"-c"}},
		{"dash token is not a value", []string{"-c", "-a", ":9000"}, []string{"-c", "-a", ":9000"}},
		{"equals value may start with dash", []string{"--config=--odd.json"}, []string{"--config=--odd.json"}},
		{"repeated flag", []string{"-c", "one.json", "-c", "two.json"}, []string{"-c", "one.json", "-c", "two.json"}},
		{"empty", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, owned))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short -c with value", []string{"-c", "/etc/shiftjournal/server.json"}, "/etc/shiftjournal/server.json"},
		{"long -config with value", []string{"-config", "/path/long.json", "-a", ":50051"}, "/path/long.json"},
		{"equals form", []string{"--config=/path/eq.json"}, "/path/eq.json"},
		{"unknown flags are ignored", []string{"-x", "1", "-y", "2"}, ""},
		{"multiple flags, last wins", []string{"-c", "/path/1.json", "-config", "/path/2.json"}, "/path/2.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFileFlag(tt.args))
		})
	}
}
