// Package config resolves wb's configuration from defaults, JSONC config
// files, environment variables and command-line overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	// From config files and environment (serialized)
	DB       string `json:"db"                  env:"WB_DB"`
	User     string `json:"user,omitempty"      env:"WB_USER"`
	LogLevel string `json:"log_level,omitempty" env:"WB_LOG_LEVEL"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	DBAbs        string `json:"-"` // Absolute path to the snapshot file

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project or explicit config if loaded, empty otherwise
	DotEnv  string // Path to the .env file if loaded, empty otherwise
	Env     bool   // Whether any WB_* variable overrode a file value
}

// Errors returned while loading configuration.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDBPathEmpty        = errors.New("db cannot be empty")
	ErrInvalidLogLevel    = errors.New("invalid log_level (valid: debug, info, warn, error)")
)

// DotEnvFileName is the optional dotenv file read from the working directory.
const DotEnvFileName = ".env"

// FileName is the project config file looked up in the working directory.
const FileName = ".wb.json"

// Default returns the default configuration.
func Default() Config {
	return Config{
		DB:       "db.json",
		LogLevel: "warn",
	}
}

// globalPath returns $XDG_CONFIG_HOME/wb/config.json, falling back to
// ~/.config/wb/config.json. Empty when neither variable is set.
func globalPath(environ map[string]string) string {
	if xdg := environ["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "wb", "config.json")
	}

	if home := environ["HOME"]; home != "" {
		return filepath.Join(home, ".config", "wb", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for [Load].
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	DBOverride      string            // --db flag value; empty means no override
	UserOverride    string            // --user flag value; empty means no override
	Env             map[string]string // environment variables
}

// Load resolves configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config
// 3. Project config file (.wb.json, if it exists)
// 4. Explicit config file via ConfigPath (replaces 3)
// 5. WB_DB, WB_USER and WB_LOG_LEVEL (the process environment, then .env)
// 6. CLI overrides.
//
// DBAbs is resolved against the effective working directory.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	globalCfg, global, err := loadGlobal(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = global
	cfg = merge(cfg, globalCfg)

	projectCfg, project, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = project
	cfg = merge(cfg, projectCfg)

	environ, dotEnv, err := withDotEnv(workDir, input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.DotEnv = dotEnv

	var envCfg Config

	err = env.ParseWithOptions(&envCfg, env.Options{Environment: environ})
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Sources.Env = envCfg != Config{}
	cfg = merge(cfg, envCfg)

	cfg = merge(cfg, Config{DB: input.DBOverride, User: input.UserOverride})

	err = validate(cfg)
	if err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	if filepath.IsAbs(cfg.DB) {
		cfg.DBAbs = cfg.DB
	} else {
		cfg.DBAbs = filepath.Join(workDir, cfg.DB)
	}

	return cfg, nil
}

// withDotEnv returns environ extended with the WB_* variables of
// workDir/.env. Variables already in environ win.
func withDotEnv(workDir string, environ map[string]string) (map[string]string, string, error) {
	merged := make(map[string]string, len(environ))
	for k, v := range environ {
		merged[k] = v
	}

	path := filepath.Join(workDir, DotEnvFileName)

	_, err := os.Stat(path)
	if err != nil {
		return merged, "", nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	for k, v := range vars {
		if !strings.HasPrefix(k, "WB_") {
			continue
		}

		if _, set := merged[k]; !set {
			merged[k] = v
		}
	}

	return merged, path, nil
}

func loadGlobal(environ map[string]string) (Config, string, error) {
	path := globalPath(environ)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadFile(path, false)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadProject loads .wb.json from workDir, or the explicit file when
// configPath is set. An explicit file must exist.
func loadProject(workDir, configPath string) (Config, string, error) {
	path := filepath.Join(workDir, FileName)
	mustExist := false

	if configPath != "" {
		path = configPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}

		mustExist = true

		_, statErr := os.Stat(path)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	}

	cfg, loaded, err := loadFile(path, mustExist)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadFile reads one config file. A missing optional file is not an error.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	// An explicit "db": "" is a mistake, not a request for the default.
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	if val, ok := raw["db"].(string); ok && val == "" {
		return Config{}, ErrDBPathEmpty
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.DB != "" {
		base.DB = overlay.DB
	}

	if overlay.User != "" {
		base.User = overlay.User
	}

	if overlay.LogLevel != "" {
		base.LogLevel = strings.ToLower(overlay.LogLevel)
	}

	return base
}

func validate(cfg Config) error {
	if cfg.DB == "" {
		return ErrDBPathEmpty
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, cfg.LogLevel)
	}
}

// Format renders the resolved configuration as key=value lines, followed by
// the files it was loaded from.
func Format(cfg Config) string {
	var b strings.Builder

	b.WriteString("effective_cwd=" + cfg.EffectiveCwd + "\n")
	b.WriteString("db=" + cfg.DBAbs + "\n")
	b.WriteString("user=" + cfg.User + "\n")
	b.WriteString("log_level=" + cfg.LogLevel + "\n")
	b.WriteString("\n# sources\n")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" && cfg.Sources.DotEnv == "" && !cfg.Sources.Env {
		b.WriteString("(defaults only)")

		return b.String()
	}

	var lines []string

	if cfg.Sources.Global != "" {
		lines = append(lines, "global_config="+cfg.Sources.Global)
	}

	if cfg.Sources.Project != "" {
		lines = append(lines, "project_config="+cfg.Sources.Project)
	}

	if cfg.Sources.DotEnv != "" {
		lines = append(lines, "dotenv="+cfg.Sources.DotEnv)
	}

	if cfg.Sources.Env {
		lines = append(lines, "env=WB_*")
	}

	b.WriteString(strings.Join(lines, "\n"))

	return b.String()
}
