package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Game struct {
		StartingBalance    int
		ReshuffleThreshold int
		Seed               int64 // 0 = crypto/rand
	}
	Server struct {
		Port       string
		SessionTTL int // seconds
	}
	Redis struct {
		Addr     string // empty = in-memory lobby
		Password string
		DB       int
	}
	JWT struct {
		Secret string
	}
	Log struct {
		Level string
		File  string
	}
}

var C Config

const DefaultPath = "config/config.yaml"

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.startingBalance", 100)
	v.SetDefault("game.reshuffleThreshold", 10)
	v.SetDefault("game.seed", 0)
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.sessionTTL", 3600)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "blackjack.log")
}

// Load 读取配置文件（可选）+ BLACKJACK_* 环境变量，结果写入 C。
// A missing file is not an error when path is empty; defaults apply.
func Load(path string) error {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BLACKJACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	C = c
	return nil
}

func (c Config) Validate() error {
	if c.Game.StartingBalance <= 0 {
		return errors.New("game.startingBalance must be positive")
	}
	// four cards have to be dealable right after a reshuffle check
	if c.Game.ReshuffleThreshold < 4 || c.Game.ReshuffleThreshold > 52 {
		return fmt.Errorf("game.reshuffleThreshold must be in [4, 52], got %d", c.Game.ReshuffleThreshold)
	}
	if c.Server.SessionTTL <= 0 {
		return errors.New("server.sessionTTL must be positive")
	}
	return nil
}
