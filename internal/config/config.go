// Package config provides functionality for managing configuration options
// for the client using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
)

// Options holds the configuration values for the client.
type Options struct {
	// BaseURL is the backend base URL including the /api prefix.
	BaseURL string

	// StateFile is the path to the persisted client state (credential,
	// view-mode preference).
	StateFile string

	// LogLevel sets the zap level ("debug", "info", ...).
	LogLevel string

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.BaseURL, "url", "http://localhost:3001/api", "backend base URL")
	flag.StringVar(&options.StateFile, "state", defaultStateFile(), "path to the client state file")
	flag.StringVar(&options.LogLevel, "log", "info", "log level")
	flag.StringVar(&options.Config, "config", "", "path to config file")
	flag.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
}

// defaultStateFile places the state under the user's home directory,
// falling back to the working directory when it cannot be resolved.
func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "staffdesk.json"
	}
	return filepath.Join(home, ".staffdesk", "state.json")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct
// containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if baseURL := os.Getenv("STAFFDESK_URL"); baseURL != "" {
		options.BaseURL = baseURL
	}
	if stateFile := os.Getenv("STAFFDESK_STATE"); stateFile != "" {
		options.StateFile = stateFile
	}

	return options
}
