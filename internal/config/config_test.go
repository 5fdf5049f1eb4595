package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pion/webrtc/v4"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into an empty temp dir so no stray config or .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)
	t.Setenv("CONFIG_ENV", "none")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
	assert.Equal(t, 60*time.Second, cfg.PongWait)
	assert.Equal(t, "drop", cfg.SendPolicy)
	require.Len(t, cfg.ICEServers, 1)
	assert.Equal(t, []string{"stun:stun.l.google.com:19302"}, cfg.ICEServers[0].URLs)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	yaml := []byte("mode: debug\nport: 9000\nsend_buffer: 16\nice_servers:\n  - urls: [\"turn:turn.example.org:3478\"]\n    username: u\n    credential: p\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), yaml, 0o644))

	t.Setenv("CONFIG_ENV", "test")
	t.Setenv("SIGNAL_SEND_POLICY", "kick")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 8080, "")
	flags.String("config-env", "", "")
	require.NoError(t, flags.Parse([]string{"--port=9100"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, 9100, cfg.Port, "flag beats file")
	assert.Equal(t, 16, cfg.SendBuffer)
	assert.Equal(t, "kick", cfg.SendPolicy, "env beats default")

	ice := cfg.WebRTCICEServers()
	require.Len(t, ice, 1)
	assert.Equal(t, "u", ice[0].Username)
	assert.Equal(t, "p", ice[0].Credential)
	assert.Equal(t, webrtc.ICECredentialTypePassword, ice[0].CredentialType)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:       8080,
		ReadLimit:  1024,
		PingPeriod: 5 * time.Second,
		PongWait:   10 * time.Second,
		WriteWait:  time.Second,
		SendBuffer: 1,
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Port = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.PingPeriod = bad.PongWait
	assert.Error(t, bad.Validate())

	bad = valid
	bad.SendBuffer = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.JoinRateLimit = 3
	assert.Error(t, bad.Validate())

	bad = valid
	bad.ICEServers = []ICEServer{{URLs: []string{"http://not-a-stun-url"}}}
	assert.Error(t, bad.Validate())
}
