package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"eulerScope/internal/euler"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	Input             string
	Out               string
	PGDSN             string
	Checkpoint        string
	CheckpointEnabled bool
	Factory           string
	ProtocolTypeName  string
	LogLevel          string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EULERSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("out", "./data/changes.jsonl")
	v.SetDefault("checkpoint", "./data/checkpoint.json")
	v.SetDefault("checkpoint-enabled", true)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Input:             v.GetString("in"),
		Out:               v.GetString("out"),
		PGDSN:             v.GetString("pg-dsn"),
		Checkpoint:        v.GetString("checkpoint"),
		CheckpointEnabled: v.GetBool("checkpoint-enabled"),
		Factory:           v.GetString("factory"),
		ProtocolTypeName:  v.GetString("protocol-type"),
		LogLevel:          v.GetString("log-level"),
	}

	return cfg, nil
}

// Protocol builds the protocol address set from the configuration, starting
// from the mainnet defaults and applying any overrides.
func (c Config) Protocol() (*euler.Protocol, error) {
	proto := euler.DefaultProtocol()
	if c.Factory != "" {
		if !common.IsHexAddress(c.Factory) {
			return nil, fmt.Errorf("invalid factory address: %s", c.Factory)
		}
		proto.Factory = common.HexToAddress(c.Factory)
	}
	if c.ProtocolTypeName != "" {
		proto.ProtocolTypeName = c.ProtocolTypeName
	}
	return proto, nil
}
