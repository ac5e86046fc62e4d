package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/timedescrow/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix = "ESCROWD"

	flagBind        = "bind"
	flagDebug       = "debug"
	flagLogLevel    = "log_level"
	flagMetricsAddr = "metrics_addr"
	flagDB          = "db"
)

// Config is the runtime configuration of the node. Values are read from
// <home>/config/escrowd.toml, overridden by ESCROWD_* environment variables
// and then by command line flags.
type Config struct {
	Bind        string
	Debug       bool
	LogLevel    string
	MetricsAddr string
	DB          string
}

func configFile(home string) string {
	return filepath.Join(home, "config", "escrowd.toml")
}

func newViper(home string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configFile(home))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(flagBind, "tcp://localhost:26658")
	v.SetDefault(flagDebug, false)
	v.SetDefault(flagLogLevel, "info")
	v.SetDefault(flagMetricsAddr, "")
	v.SetDefault(flagDB, filepath.Join(home, "escrow.db"))
	return v
}

// LoadConfig reads the configuration of the node stored in home. A missing
// configuration file is not an error, defaults are used instead.
func LoadConfig(home string, cmd *cobra.Command) (*Config, error) {
	v := newViper(home)
	if _, err := os.Stat(configFile(home)); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot read configuration: %s", err)
		}
	}
	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	return &Config{
		Bind:        v.GetString(flagBind),
		Debug:       v.GetBool(flagDebug),
		LogLevel:    v.GetString(flagLogLevel),
		MetricsAddr: v.GetString(flagMetricsAddr),
		DB:          v.GetString(flagDB),
	}, nil
}

// WriteDefaultConfig stores the default configuration unless a file already
// exists.
func WriteDefaultConfig(home string) error {
	path := configFile(home)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := newViper(home).WriteConfigAs(path); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
