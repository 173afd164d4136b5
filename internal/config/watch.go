package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// WatchConfig holds configuration for the watch command.
type WatchConfig struct {
	Network       Network
	Pool          string
	Kind          string
	Interval      time.Duration
	Concurrency   int
	Out           string
	Cursor        string
	CursorEnabled bool
	PGDSN         string
	MetricsListen string
	MaxRetries    int
	RetryBackoff  time.Duration
	Once          bool
	LogLevel      string
}

// LoadWatch merges config file, environment variables, and flags into WatchConfig.
func LoadWatch(cfgFile string, flags *pflag.FlagSet) (WatchConfig, error) {
	network := BSC()

	v := viper.New()
	v.SetEnvPrefix("DEFERSWAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("chain-id", network.ChainID)
	v.SetDefault("rpc", network.RPCURLs)
	v.SetDefault("kind", "spread")
	v.SetDefault("interval", 60*time.Second)
	v.SetDefault("concurrency", 4)
	v.SetDefault("out", "./data/snapshots.jsonl")
	v.SetDefault("cursor", "./data/cursor.json")
	v.SetDefault("cursor-enabled", true)
	v.SetDefault("max-retries", 5)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return WatchConfig{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return WatchConfig{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return WatchConfig{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	network.ChainID = v.GetUint64("chain-id")
	if urls := getStringSlice(v, "rpc"); len(urls) > 0 {
		network.RPCURLs = urls
	}

	cfg := WatchConfig{
		Network:       network,
		Pool:          v.GetString("pool"),
		Kind:          v.GetString("kind"),
		Interval:      v.GetDuration("interval"),
		Concurrency:   v.GetInt("concurrency"),
		Out:           v.GetString("out"),
		Cursor:        v.GetString("cursor"),
		CursorEnabled: v.GetBool("cursor-enabled"),
		PGDSN:         v.GetString("pg-dsn"),
		MetricsListen: v.GetString("metrics-listen"),
		MaxRetries:    v.GetInt("max-retries"),
		RetryBackoff:  v.GetDuration("retry-backoff"),
		Once:          v.GetBool("once"),
		LogLevel:      v.GetString("log-level"),
	}

	return cfg, nil
}
