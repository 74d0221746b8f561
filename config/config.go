package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ResolverConfig configures the layered config resolver.
type ResolverConfig struct {
	// EnvPrefix is prepended to key names for environment variable lookup.
	// With "PROMPTSTREAM_", key "log_level" maps to PROMPTSTREAM_LOG_LEVEL.
	EnvPrefix string

	// GlobalConfigDir is the directory under ~/.config/ holding the global config.
	GlobalConfigDir string

	// GlobalConfigFile is the filename for global config.
	// Defaults to "config.yaml" if empty.
	GlobalConfigFile string

	// LocalConfigName is the local config filename looked up in the project root.
	LocalConfigName string

	// DotEnvName is the .env filename looked up in the project root.
	// Empty disables the .env layer.
	DotEnvName string

	// ProjectDir is the project root. Defaults to the working directory.
	ProjectDir string

	// Defaults provides the default values for configuration keys.
	Defaults map[string]string

	// ValidKeys lists keys accepted from files and .env. If nil, all keys are accepted.
	ValidKeys []string

	// ErrWriter is where warnings are written.
	// Defaults to os.Stderr if nil.
	ErrWriter io.Writer
}

func (c ResolverConfig) globalConfigFile() string {
	if c.GlobalConfigFile != "" {
		return c.GlobalConfigFile
	}
	return "config.yaml"
}

// DefaultResolverConfig returns the resolver setup used by promptstream binaries.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		EnvPrefix:       "PROMPTSTREAM_",
		GlobalConfigDir: "promptstream",
		LocalConfigName: ".promptstream.yaml",
		DotEnvName:      ".env",
		Defaults:        Defaults(),
		ValidKeys:       Keys(),
	}
}

// Resolver handles layered configuration resolution.
type Resolver struct {
	config     ResolverConfig
	globalPath string
	localPath  string
	dotEnvPath string

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver creates a new configuration resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	var globalPath string
	if cfg.GlobalConfigDir != "" {
		if home, err := os.UserHomeDir(); err == nil {
			globalPath = filepath.Join(home, ".config", cfg.GlobalConfigDir, cfg.globalConfigFile())
		}
	}

	projectDir := cfg.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}

	var localPath, dotEnvPath string
	if cfg.LocalConfigName != "" {
		localPath = filepath.Join(projectDir, cfg.LocalConfigName)
	}
	if cfg.DotEnvName != "" {
		dotEnvPath = filepath.Join(projectDir, cfg.DotEnvName)
	}

	return NewResolverWithPaths(cfg, globalPath, localPath, dotEnvPath)
}

// NewResolverWithPaths creates a resolver with explicit file paths.
// Empty paths disable the corresponding layer.
func NewResolverWithPaths(cfg ResolverConfig, globalPath, localPath, dotEnvPath string) *Resolver {
	if cfg.ErrWriter == nil {
		cfg.ErrWriter = os.Stderr
	}
	return &Resolver{
		config:     cfg,
		globalPath: globalPath,
		localPath:  localPath,
		dotEnvPath: dotEnvPath,
	}
}

// warn adds a warning and prints it.
func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	if r.config.ErrWriter != nil {
		fmt.Fprintf(r.config.ErrWriter, "Warning: %s\n", msg)
	}
}

// Resolved holds the final merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// All returns a copy of all key-value pairs.
func (c *Resolved) All() map[string]string {
	result := make(map[string]string, len(c.values))
	for k, v := range c.values {
		result[k] = v
	}
	return result
}

// Resolve merges every layer except flags.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	for key, value := range r.config.Defaults {
		cfg.set(key, value, SourceDefault)
	}
	r.applyYAML(cfg, r.globalPath, SourceGlobal)
	r.applyYAML(cfg, r.localPath, SourceLocal)
	r.applyDotEnv(cfg)
	r.applyEnv(cfg)

	return cfg
}

// ResolveWithFlags resolves config and applies non-empty overrides on top.
func (r *Resolver) ResolveWithFlags(flags map[string]string) *Resolved {
	cfg := r.Resolve()
	for key, value := range flags {
		if value != "" {
			cfg.set(key, value, SourceFlag)
		}
	}
	return cfg
}

func (c *Resolved) set(key, value string, source Source) {
	c.values[key] = value
	c.sources[key] = source
}

func (r *Resolver) validKey(key string) bool {
	return len(r.config.ValidKeys) == 0 || contains(r.config.ValidKeys, key)
}

func (r *Resolver) applyYAML(cfg *Resolved, path string, source Source) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return // File doesn't exist - not an error
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", path, err))
		return
	}

	for key, value := range parsed {
		if !r.validKey(key) {
			r.warn(fmt.Sprintf("unknown key %q in %s", key, path))
			continue
		}
		if strVal := toString(value); strVal != "" {
			cfg.set(key, strVal, source)
		}
	}
}

// applyDotEnv reads the .env file without touching the process environment.
func (r *Resolver) applyDotEnv(cfg *Resolved) {
	if r.dotEnvPath == "" {
		return
	}
	if _, err := os.Stat(r.dotEnvPath); err != nil {
		return
	}

	vars, err := godotenv.Read(r.dotEnvPath)
	if err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", r.dotEnvPath, err))
		return
	}

	for envKey, value := range vars {
		key, ok := r.keyForEnv(envKey)
		if !ok || value == "" {
			continue
		}
		cfg.set(key, value, SourceDotEnv)
	}
}

func (r *Resolver) applyEnv(cfg *Resolved) {
	if r.config.EnvPrefix == "" {
		return
	}

	allKeys := make(map[string]bool)
	for k := range r.config.Defaults {
		allKeys[k] = true
	}
	for _, k := range r.config.ValidKeys {
		allKeys[k] = true
	}
	for k := range cfg.values {
		allKeys[k] = true
	}

	for key := range allKeys {
		if value := os.Getenv(r.envName(key)); value != "" {
			cfg.set(key, value, SourceEnv)
		}
	}
}

func (r *Resolver) envName(key string) string {
	return r.config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// keyForEnv maps PREFIX_SOME_KEY back to some_key.
func (r *Resolver) keyForEnv(envKey string) (string, bool) {
	if r.config.EnvPrefix == "" || !strings.HasPrefix(envKey, r.config.EnvPrefix) {
		return "", false
	}
	key := strings.ToLower(strings.TrimPrefix(envKey, r.config.EnvPrefix))
	if key == "" || !r.validKey(key) {
		return "", false
	}
	return key, true
}

// GlobalPath returns the path to the global config file.
func (r *Resolver) GlobalPath() string {
	return r.globalPath
}

// LocalPath returns the path to the local config file.
func (r *Resolver) LocalPath() string {
	return r.localPath
}

// DotEnvPath returns the path to the .env file.
func (r *Resolver) DotEnvPath() string {
	return r.dotEnvPath
}

// Helper functions

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int64, uint64, float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}
