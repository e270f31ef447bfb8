package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "double dash with equals",
			args:         []string{"--config=alt.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "order preserved",
			args:         []string{"-config=first.json", "-c", "second.json", "-x", "1"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=first.json", "-c", "second.json"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "value looking like a flag is not consumed",
			args:         []string{"-a", "-i", "5"},
			allowedFlags: []string{"-a", "-i"},
			want:         []string{"-a", "-i", "5"},
		},
		{
			name:         "flag at the end without value",
			args:         []string{"-d"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigPathFrom(t *testing.T) {
	assert.Equal(t, "a.json", ConfigPathFrom([]string{"-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigPathFrom([]string{"-a", "x", "-config=b.json"}))
	assert.Equal(t, "", ConfigPathFrom([]string{"-a", "x"}))
}

func TestJsonConfigFlags_ReadsOSArgs(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"bin", "-i", "3", "-c", "cfg.json"}
	assert.Equal(t, "cfg.json", JsonConfigFlags())
}
