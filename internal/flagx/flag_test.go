package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		owned []string
		want  []string
	}{
		{
			name:  "separate value",
			args:  []string{"-a", "http://api.local/api", "-d", "s.db"},
			owned: []string{"-a"},
			want:  []string{"-a", "http://api.local/api"},
		},
		{
			name:  "equals form",
			args:  []string{"-config=panel.json", "-a", "x"},
			owned: []string{"-c", "-config"},
			want:  []string{"-config=panel.json"},
		},
		{
			name:  "unknown flags and positionals dropped",
			args:  []string{"-x", "1", "--y=2", "positional"},
			owned: []string{"-c"},
			want:  []string{},
		},
		{
			name:  "trailing flag without value",
			args:  []string{"-t"},
			owned: []string{"-t"},
			want:  []string{"-t"},
		},
		{
			name:  "next dash token is not a value",
			args:  []string{"-c", "-l", "debug"},
			owned: []string{"-c"},
			want:  []string{"-c"},
		},
		{
			name:  "equals value may start with dash",
			args:  []string{"-config=--odd.json"},
			owned: []string{"-config"},
			want:  []string{"-config=--odd.json"},
		},
		{
			name:  "repeated flag keeps order",
			args:  []string{"-l", "info", "-a", "u", "-l", "debug"},
			owned: []string{"-l"},
			want:  []string{"-l", "info", "-l", "debug"},
		},
		{
			name:  "empty args",
			args:  nil,
			owned: []string{"-c"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.owned))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, "/etc/panel.json", ConfigFilePath([]string{"-c", "/etc/panel.json"}))
	assert.Equal(t, "/etc/long.json", ConfigFilePath([]string{"-a", "u", "-config", "/etc/long.json"}))
	assert.Equal(t, "/2.json", ConfigFilePath([]string{"-c", "/1.json", "-config=/2.json"}))
	assert.Empty(t, ConfigFilePath([]string{"-x", "1", "-l", "debug"}))
}
