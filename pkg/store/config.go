package store

import (
	"errors"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the settings shared by the CLI, the UI and the store.
type Config interface {
	BasePath() string
}

// Settings is the full configuration loaded from .trip.yaml and TRIP_* env.
type Settings struct {
	Path     string `json:"path"`
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
	Location string `json:"location"`
}

// LoadConfig walks ./ (and $TRIP_CONFIG_PATH) for a .trip.yaml file and
// overlays TRIP_* environment variables.
func LoadConfig() (*Settings, error) {
	v := viper.New()
	v.SetDefault("path", "~/.trip.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("location", "")
	v.SetConfigName(".trip") // .yaml is implicit
	v.SetEnvPrefix("TRIP")
	v.AutomaticEnv()

	if override := os.Getenv("TRIP_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}
	return &Settings{
		Path:     path,
		LogLevel: v.GetString("log_level"),
		LogFile:  v.GetString("log_file"),
		Location: v.GetString("location"),
	}, nil
}

func (s *Settings) BasePath() string {
	return s.Path
}

// Loc resolves the configured IANA zone used for day grouping.
func (s *Settings) Loc() *time.Location {
	if s == nil || s.Location == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Location)
	if err != nil {
		return time.Local
	}
	return loc
}
