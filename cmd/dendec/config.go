package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// settings are the file- and environment-sourced defaults that sit
// behind the command-line flags.
type settings struct {
	// Group is the default display grouping for encode output.
	Group int
	// ReferTable is the lookup table path for the refer command.
	ReferTable string
	// WrapExclude lists extra directory names wrap leaves alone.
	WrapExclude []string
}

// loadSettings reads the optional config file plus DENDEC_* environment
// overrides. path selects an explicit file; empty means
// $HOME/.dendec.yaml, which may be absent.
func loadSettings(path string) (*settings, error) {
	v := viper.New()
	v.SetDefault("group", 0)
	v.SetDefault("refer.table", "")
	v.SetDefault("wrap.exclude", []string{})

	v.SetEnvPrefix("DENDEC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".dendec.yaml"))
		if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	return &settings{
		Group:       v.GetInt("group"),
		ReferTable:  v.GetString("refer.table"),
		WrapExclude: v.GetStringSlice("wrap.exclude"),
	}, nil
}
