package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	Network     Network
	Pool        string
	Key         string
	Page        int
	PageSize    int
	Skip        uint64
	Limit       uint64
	SlippagePct float64
	LogLevel    string
}

// Load merges config file, environment variables, and flags into Config.
// Network fields start from the BSC defaults and each can be overridden.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	network := BSC()

	v := viper.New()
	v.SetEnvPrefix("DEFERSWAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("chain-id", network.ChainID)
	v.SetDefault("rpc", network.RPCURLs)
	v.SetDefault("explorer", network.ExplorerURL)
	v.SetDefault("spread-factory", network.SpreadFactory)
	v.SetDefault("limit-factory", network.LimitFactory)
	v.SetDefault("skip-first", network.SkipFirstPools)
	v.SetDefault("page", 1)
	v.SetDefault("page-size", 10)
	v.SetDefault("limit", uint64(50))
	v.SetDefault("slippage", 0.5)
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

	network.ChainID = v.GetUint64("chain-id")
	if urls := getStringSlice(v, "rpc"); len(urls) > 0 {
		network.RPCURLs = urls
	}
	network.ExplorerURL = v.GetString("explorer")
	network.SpreadFactory = v.GetString("spread-factory")
	network.LimitFactory = v.GetString("limit-factory")
	network.SkipFirstPools = v.GetUint64("skip-first")

	cfg := Config{
		Network:     network,
		Pool:        v.GetString("pool"),
		Key:         v.GetString("key"),
		Page:        v.GetInt("page"),
		PageSize:    v.GetInt("page-size"),
		Skip:        v.GetUint64("skip"),
		Limit:       v.GetUint64("limit"),
		SlippagePct: v.GetFloat64("slippage"),
		LogLevel:    v.GetString("log-level"),
	}

	return cfg, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
