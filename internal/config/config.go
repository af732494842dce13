// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON settings file and
// environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/atinyakov/SteamGuardKeeper/internal/storage"
	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// StorePath is the secrets document location.
	StorePath string `json:"store_path"`

	// Address is the listen address (ip:port) of the local command server.
	Address string `json:"server_address"`

	// DatabaseDSN switches persistence to PostgreSQL when set.
	DatabaseDSN string `json:"database_dsn"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`

	// Config is the path to the JSON settings file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init registers the command-line flags on the default flag set.
func init() {
	options.Register(flag.CommandLine)
}

// Register defines the option flags on fs.
func (o *Options) Register(fs *flag.FlagSet) {
	fs.StringVar(&o.StorePath, "s", "", "path to secrets file (default <user config dir>/steam-desktop-guard/config.json)")
	fs.StringVar(&o.Address, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&o.DatabaseDSN, "d", "", "postgres dsn, file storage is used when empty")
	fs.StringVar(&o.LogLevel, "l", "info", "log level")
	fs.StringVar(&o.Config, "config", "", "path to settings file")
	fs.StringVar(&o.Config, "c", "", "path to settings file (shorthand)")
}

// Parse parses the command-line flags, the optional settings file and
// environment variables. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// .env is optional; existing variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring .env: %v", err)
	}

	if err := options.Resolve(os.LookupEnv); err != nil {
		log.Fatalf("config: %v", err)
	}
	return options
}

// Resolve applies the settings file and the environment on top of the
// flag values and fills in the default store path.
func (o *Options) Resolve(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv("CONFIG"); ok && v != "" {
		o.Config = v
	}

	if o.Config != "" {
		data, err := os.ReadFile(o.Config)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, o); err != nil {
				return fmt.Errorf("error while parsing config file: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("error while reading config file: %w", err)
		}
	}

	for env, dst := range map[string]*string{
		"STORE_PATH":     &o.StorePath,
		"SERVER_ADDRESS": &o.Address,
		"DATABASE_DSN":   &o.DatabaseDSN,
		"LOG_LEVEL":      &o.LogLevel,
	} {
		if v, ok := lookupEnv(env); ok && v != "" {
			*dst = v
		}
	}

	if o.StorePath == "" {
		path, err := storage.DefaultPath()
		if err != nil {
			return err
		}
		o.StorePath = path
	}
	return nil
}
