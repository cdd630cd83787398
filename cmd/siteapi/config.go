package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/boomtruck/siteapi/internal/logger"
)

const (
	defaultListenAddr   = "localhost:8000"
	defaultLoggingLevel = logger.LevelInfo
	defaultEnvironment  = logger.EnvProduction
	defaultDataDir      = "./data"
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the site API will be run
	ListenAddr string

	// Environment
	Environment string

	// Directory where the flat-file collections live
	DataDir string

	// Google OAuth client credentials from the cloud console
	GoogleClientID     string
	GoogleClientSecret string

	// Callback URL registered with the OAuth client. Optional: when empty
	// it is derived from the incoming request host.
	RedirectURL string

	// Secret key
	// Signed state tokens use symmetric encryption, so this key is used for that purpose
	StateSecret string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:    defaultLoggingLevel,
		ListenAddr:  defaultListenAddr,
		Environment: defaultEnvironment,
		DataDir:     defaultDataDir,
	}
}

// Load variables from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}

	envMap := map[string]func(string){
		"RUN_ADDRESS":          setString(&c.ListenAddr),
		"LOG_LEVEL":            setString(&c.LogLevel),
		"ENVIRONMENT":          setString(&c.Environment),
		"DATA_DIR":             setString(&c.DataDir),
		"GOOGLE_CLIENT_ID":     setString(&c.GoogleClientID),
		"GOOGLE_CLIENT_SECRET": setString(&c.GoogleClientSecret),
		"GOOGLE_REDIRECT_URL":  setString(&c.RedirectURL),
		"STATE_SECRET":         setString(&c.StateSecret),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("siteapi", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.StringVarP(&c.DataDir, "data-dir", "d", c.DataDir, "Directory for flat-file storage")
	fs.StringVar(&c.GoogleClientID, "google-client-id", c.GoogleClientID, "Google OAuth client id")
	fs.StringVar(&c.GoogleClientSecret, "google-client-secret", c.GoogleClientSecret, "Google OAuth client secret")
	fs.StringVar(&c.RedirectURL, "redirect-url", c.RedirectURL, "OAuth callback URL (derived from the request when empty)")
	fs.StringVarP(&c.StateSecret, "state-secret", "s", c.StateSecret, "Secret key for signing state tokens")

	return fs.Parse(args)
}
