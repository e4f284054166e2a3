package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	allowed := []string{"-d", "-k", "-catalog", "-v"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"separate value", []string{"-d", "dig.db", "-x", "1"}, []string{"-d", "dig.db"}},
		{"equals form", []string{"-catalog=sites.yaml", "-c", "cfg.json"}, []string{"-catalog=sites.yaml"}},
		{"order kept", []string{"-v=debug", "-k", "slot", "-d", "a.db"}, []string{"-v=debug", "-k", "slot", "-d", "a.db"}},
		{"unknown only", []string{"-x", "1", "--y=2", "positional"}, []string{}},
		{"trailing flag", []string{"-d"}, []string{"-d"}},
		{"next token is a flag", []string{"-d", "-v"}, []string{"-d", "-v"}},
		{"value looks like a flag in equals form", []string{"-catalog=-odd.yaml"}, []string{"-catalog=-odd.yaml"}},
		{"repeated", []string{"-k", "one", "-k", "two"}, []string{"-k", "one", "-k", "two"}},
		{"empty", []string{}, []string{}},
		{"nil", nil, []string{}},
		{"positional equals ignored", []string{"a=b"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/path/short.json"}, "/path/short.json"},
		{"long", []string{"-config", "/path/long.json"}, "/path/long.json"},
		{"equals", []string{"-config=/p.json", "-d", "x.db"}, "/p.json"},
		{"absent", []string{"-d", "x.db"}, ""},
		{"last wins", []string{"-c", "/1.json", "-config", "/2.json"}, "/2.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigPath(tt.args))
		})
	}
}
