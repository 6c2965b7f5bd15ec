package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// LoadFile overlays settings from an optional cameratouch.yml onto cfg.
// Search order: the current directory, then the user config directory
// (typically ~/.config/cameratouch/). Environment variables prefixed with
// CAMERATOUCH_ override file values. A missing config file is not an error;
// flags parsed afterwards take precedence over both.
func LoadFile(cfg *Config) error {
	v := viper.New()
	v.SetConfigName("cameratouch")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "cameratouch"))
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("CAMERATOUCH")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if s := v.GetString("template"); s != "" {
		cfg.NameTemplate = s
	}
	if s := v.GetString("dir_template"); s != "" {
		cfg.DirTemplate = s
	}
	if s := v.GetString("reader"); s != "" {
		cfg.Reader = ReaderMode(s)
	}
	if s := v.GetString("color"); s != "" {
		cfg.ColorMode = ColorMode(s)
	}
	if s := v.GetString("log"); s != "" {
		cfg.LogFile = s
	}
	if v.IsSet("copy") {
		cfg.CopyMode = v.GetBool("copy")
	}
	if v.IsSet("stats") {
		cfg.ShowStats = v.GetBool("stats")
	}
	if v.IsSet("verbose") {
		cfg.Verbose = v.GetBool("verbose")
	}
	if v.IsSet("watch_min_age") {
		if d, err := time.ParseDuration(v.GetString("watch_min_age")); err == nil {
			cfg.WatchMinAge = d
		}
	}
	return nil
}
