// Package config resolves settings for the serve and view commands.
//
// Precedence, lowest first: built-in defaults, a .env file in the working
// directory, process environment, command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr      = ":5000"
	DefaultSheetPath = "generated_excel.xlsx"
	DefaultSourceURL = "http://localhost:5000/excel"
)

// Environment variable names.
const (
	EnvAddr         = "SIFTLY_ADDR"
	EnvSheetPath    = "SIFTLY_SHEET_PATH"
	EnvSourceURL    = "SIFTLY_SOURCE_URL"
	EnvFetchTimeout = "SIFTLY_FETCH_TIMEOUT"
	EnvDebugLog     = "SIFTLY_DEBUG_LOG"
)

type Config struct {
	// Addr is the listen address of the file endpoint.
	Addr string
	// SheetPath is the spreadsheet served at /excel.
	SheetPath string
	// SourceURL is where the viewer fetches the spreadsheet from.
	SourceURL string
	// FetchTimeout bounds the viewer's fetch. Zero means no timeout.
	FetchTimeout time.Duration
	DebugLog     string
}

func Default() Config {
	return Config{
		Addr:      DefaultAddr,
		SheetPath: DefaultSheetPath,
		SourceURL: DefaultSourceURL,
	}
}

// Load reads an optional .env file and the environment on top of Default.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv applies environment overrides using lookup, which has the
// signature of os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := nonEmpty(lookup, EnvAddr); ok {
		cfg.Addr = v
	}
	if v, ok := nonEmpty(lookup, EnvSheetPath); ok {
		cfg.SheetPath = v
	}
	if v, ok := nonEmpty(lookup, EnvSourceURL); ok {
		cfg.SourceURL = v
	}
	if v, ok := nonEmpty(lookup, EnvDebugLog); ok {
		cfg.DebugLog = v
	}
	if v, ok := nonEmpty(lookup, EnvFetchTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvFetchTimeout, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("%s: negative duration %s", EnvFetchTimeout, d)
		}
		cfg.FetchTimeout = d
	}

	return cfg, nil
}

func nonEmpty(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
