// Package config loads batchname settings from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/kaeawc/batchname/internal/logging"
	"github.com/kaeawc/batchname/internal/naming"
)

const (
	defaultFileName         = ".env"
	defaultOverrideFileName = ".local.env"
)

// Configuration keys
const (
	KeyLogFile       = "BATCHNAME_LOG_FILE"
	KeyLogLevel      = "BATCHNAME_LOG_LEVEL"
	KeyFolderPrefix  = "BATCHNAME_FOLDER_PREFIX"
	KeyFilePrefix    = "BATCHNAME_FILE_PREFIX"
	KeyFileExt       = "BATCHNAME_FILE_EXT"
	KeyPreview       = "BATCHNAME_PREVIEW"
	KeyReserveStaged = "BATCHNAME_RESERVE_STAGED"
	KeyPerf          = "BATCHNAME_PERF"
)

// PreviewMode controls whether a batch is shown and confirmed before commit.
type PreviewMode string

// Preview modes
const (
	PreviewAsk    PreviewMode = "ask"
	PreviewAlways PreviewMode = "always"
	PreviewNever  PreviewMode = "never"
)

// Config holds the resolved settings.
type Config struct {
	LogFile       string
	LogLevel      string
	FolderPrefix  string
	FilePrefix    string
	FileExt       string
	Preview       PreviewMode
	ReserveStaged bool
	Perf          bool
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogFile:       logging.DefaultFile,
		LogLevel:      "INFO",
		FolderPrefix:  "folder",
		FilePrefix:    "file",
		FileExt:       naming.DefaultFileExt,
		Preview:       PreviewAsk,
		ReserveStaged: true,
	}
}

// Getter reads a single key.
type Getter interface {
	Get(key string) string
	GetOrDefault(key, defaultValue string) string
	// Lookup reports whether key is set at all, even to an empty value
	Lookup(key string) (string, bool)
}

// EnvLoader layers .env files under the process environment.
type EnvLoader struct {
	values map[string]string
	// Loaded lists the files that were read, lowest precedence first
	Loaded []string
}

// NewEnvLoader reads .env and .local.env from folder. Missing files are fine;
// unreadable or malformed ones are reported.
func NewEnvLoader(folder string) (*EnvLoader, error) {
	e := &EnvLoader{values: make(map[string]string)}

	for _, name := range []string{defaultFileName, defaultOverrideFileName} {
		path := filepath.Join(folder, name)

		content, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}

		for k, v := range content {
			e.values[k] = v
		}

		e.Loaded = append(e.Loaded, path)
	}

	return e, nil
}

// Get returns the value for key. The process environment wins over files.
func (e *EnvLoader) Get(key string) string {
	val, _ := e.Lookup(key)
	return val
}

// Lookup returns the value for key and whether the environment or a file set it.
func (e *EnvLoader) Lookup(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}

	val, ok := e.values[key]

	return val, ok
}

// GetOrDefault returns the value for key or defaultValue when it is empty.
func (e *EnvLoader) GetOrDefault(key, defaultValue string) string {
	if val := e.Get(key); val != "" {
		return val
	}

	return defaultValue
}

// Load builds a Config from g on top of the defaults.
func Load(g Getter) (*Config, error) {
	cfg := Default()

	cfg.LogFile = g.GetOrDefault(KeyLogFile, cfg.LogFile)
	cfg.LogLevel = g.GetOrDefault(KeyLogLevel, cfg.LogLevel)
	cfg.FolderPrefix = g.GetOrDefault(KeyFolderPrefix, cfg.FolderPrefix)
	cfg.FilePrefix = g.GetOrDefault(KeyFilePrefix, cfg.FilePrefix)

	// an explicitly empty extension means sequential files get none
	if ext, ok := g.Lookup(KeyFileExt); ok {
		cfg.FileExt = strings.TrimSpace(ext)
	}

	if cfg.FileExt != "" && !strings.HasPrefix(cfg.FileExt, ".") {
		cfg.FileExt = "." + cfg.FileExt
	}

	switch mode := PreviewMode(strings.ToLower(g.GetOrDefault(KeyPreview, string(cfg.Preview)))); mode {
	case PreviewAsk, PreviewAlways, PreviewNever:
		cfg.Preview = mode
	default:
		return nil, fmt.Errorf("invalid %s %q: want ask, always or never", KeyPreview, mode)
	}

	if raw := g.Get(KeyReserveStaged); raw != "" {
		reserve, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", KeyReserveStaged, raw, err)
		}

		cfg.ReserveStaged = reserve
	}

	if raw := g.Get(KeyPerf); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", KeyPerf, raw, err)
		}

		cfg.Perf = enabled
	}

	return cfg, nil
}

// LoadFromFolder reads the .env files in folder and returns the Config.
func LoadFromFolder(folder string) (*Config, error) {
	loader, err := NewEnvLoader(folder)
	if err != nil {
		return nil, err
	}

	return Load(loader)
}
