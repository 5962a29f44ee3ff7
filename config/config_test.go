package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	require.NoError(t, Load(""))
	assert.Equal(t, 100, C.Game.StartingBalance)
	assert.Equal(t, 10, C.Game.ReshuffleThreshold)
	assert.Equal(t, int64(0), C.Game.Seed)
	assert.Equal(t, ":8080", C.Server.Port)
	assert.Equal(t, "", C.Redis.Addr)
	assert.Equal(t, "info", C.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
game:
  startingBalance: 500
  reshuffleThreshold: 15
  seed: 42
server:
  port: ":9000"
  sessionTTL: 60
redis:
  addr: "localhost:6379"
jwt:
  secret: "s3cret"
`)
	require.NoError(t, Load(path))
	assert.Equal(t, 500, C.Game.StartingBalance)
	assert.Equal(t, 15, C.Game.ReshuffleThreshold)
	assert.Equal(t, int64(42), C.Game.Seed)
	assert.Equal(t, ":9000", C.Server.Port)
	assert.Equal(t, 60, C.Server.SessionTTL)
	assert.Equal(t, "localhost:6379", C.Redis.Addr)
	assert.Equal(t, "s3cret", C.JWT.Secret)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BLACKJACK_GAME_STARTINGBALANCE", "250")
	require.NoError(t, Load(""))
	assert.Equal(t, 250, C.Game.StartingBalance)
}

func TestLoadMissingFile(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	path := writeConfig(t, "game:\n  reshuffleThreshold: 3\n")
	err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reshuffleThreshold")

	path = writeConfig(t, "game:\n  startingBalance: 0\n")
	assert.Error(t, Load(path))
}
