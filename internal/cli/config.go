package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "toml"

	// Config keys. Flags of the same name override them.
	cfgTheme         = "theme"
	cfgVariation     = "variation"
	cfgFormats       = "formats"
	cfgScale         = "scale"
	cfgBackground    = "background"
	cfgCacheBackend  = "cache.backend"
	cfgCacheDir      = "cache.dir"
	cfgRedisAddr     = "redis.addr"
	cfgRedisPassword = "redis.password"
	cfgRedisDB       = "redis.db"
	cfgRedisPrefix   = "redis.prefix"
	cfgServeAddr     = "serve.addr"

	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// newConfig returns a viper instance holding only defaults. Every key can
// also be set through the environment as STIPPLE_<KEY>, with dots as
// underscores (STIPPLE_REDIS_ADDR).
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault(cfgTheme, defaultTheme)
	v.SetDefault(cfgFormats, "svg")
	v.SetDefault(cfgScale, 2.0)
	v.SetDefault(cfgCacheBackend, cacheBackendFile)
	v.SetDefault(cfgRedisAddr, "localhost:6379")
	v.SetDefault(cfgServeAddr, "localhost:8340")

	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the config file. An explicit file must exist; the
// default ~/.config/stipple/config.toml is optional.
func loadConfig(file string) (*viper.Viper, error) {
	v := newConfig()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		dir, err := configDir()
		if err != nil {
			return v, nil
		}
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// bindFlags binds config keys to the flags of cmd with the same name, so a
// changed flag overrides the config file and an unchanged one falls back
// to it.
func (c *CLI) bindFlags(cmd *cobra.Command, keys ...string) error {
	for _, key := range keys {
		f := cmd.Flags().Lookup(key)
		if f == nil {
			return fmt.Errorf("no flag for config key %q", key)
		}
		if err := c.Config.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
