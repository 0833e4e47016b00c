package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel         = "gpt-4"
	DefaultFallbackModel = "gpt-3.5-turbo"
	DefaultTemperature   = 0.2
	DefaultResumePath    = "./resume.txt"
	DefaultExamplePath   = "./example.docx"
	DefaultOutput        = "output.docx"
	DefaultLanguage      = "English"
	DefaultMaxIterations = 8
)

type Config struct {
	Model         string  `mapstructure:"model" yaml:"model,omitempty"`
	FallbackModel string  `mapstructure:"fallback_model" yaml:"fallback_model,omitempty"`
	Temperature   float64 `mapstructure:"temperature" yaml:"temperature"`
	ValidateModel bool    `mapstructure:"validate_model" yaml:"validate_model"`
	ResumePath    string  `mapstructure:"resume_path" yaml:"resume_path,omitempty"`
	ExamplePath   string  `mapstructure:"example_path" yaml:"example_path,omitempty"`
	Output        string  `mapstructure:"output" yaml:"output,omitempty"`
	Language      string  `mapstructure:"language" yaml:"language,omitempty"`
	CrewPath      string  `mapstructure:"crew_path" yaml:"crew_path,omitempty"`
	MaxIterations int     `mapstructure:"max_iterations" yaml:"max_iterations"`
	Cache         bool    `mapstructure:"cache" yaml:"cache,omitempty"`
}

// keys lists every settable key with its kind
var keys = map[string]string{
	"model":          "string",
	"fallback_model": "string",
	"temperature":    "float",
	"validate_model": "bool",
	"resume_path":    "string",
	"example_path":   "string",
	"output":         "string",
	"language":       "string",
	"crew_path":      "string",
	"max_iterations": "int",
	"cache":          "bool",
}

var (
	configFile = ".atscv-config.yaml"
	v          *viper.Viper
)

func init() {
	v = newViper()
	// Try to read config file (ignore if not exists)
	_ = v.ReadInConfig()
}

func newViper() *viper.Viper {
	nv := viper.New()
	nv.SetConfigFile(configFile)

	nv.SetDefault("model", DefaultModel)
	nv.SetDefault("fallback_model", DefaultFallbackModel)
	nv.SetDefault("temperature", DefaultTemperature)
	nv.SetDefault("validate_model", true)
	nv.SetDefault("resume_path", DefaultResumePath)
	nv.SetDefault("example_path", DefaultExamplePath)
	nv.SetDefault("output", DefaultOutput)
	nv.SetDefault("language", DefaultLanguage)
	nv.SetDefault("max_iterations", DefaultMaxIterations)
	nv.SetDefault("cache", false)

	nv.SetEnvPrefix("ATSCV")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()
	// OPENAI_MODEL_NAME is the conventional override shared with other OpenAI tooling
	_ = nv.BindEnv("model", "ATSCV_MODEL", "OPENAI_MODEL_NAME")
	return nv
}

func Path() string {
	return configFile
}

func Load() (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func Get(key string) (string, error) {
	if _, ok := keys[key]; !ok {
		return "", fmt.Errorf("unknown config key: %s", key)
	}
	return v.GetString(key), nil
}

// Set validates value against the key's kind, updates the live config and
// persists it to the config file.
func Set(key, value string) error {
	kind, ok := keys[key]
	if !ok {
		return fmt.Errorf("unknown config key: %s (valid: %s)", key, strings.Join(Keys(), ", "))
	}

	var parsed any = value
	switch kind {
	case "float":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		parsed = f
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		parsed = n
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, err)
		}
		parsed = b
	}

	v.Set(key, parsed)
	cfg, err := Load()
	if err != nil {
		return err
	}
	return writeConfig(cfg)
}

// Keys returns the settable keys in sorted order
func Keys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func All() map[string]string {
	out := make(map[string]string, len(keys))
	for k := range keys {
		out[k] = v.GetString(k)
	}
	return out
}

// Save writes the full config
func Save(c *Config) error {
	return writeConfig(c)
}

func writeConfig(cfg *Config) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	if dir := filepath.Dir(configFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(configFile, buf.Bytes(), 0o644)
}

// ResetForTest points the config at testPath and drops any loaded state (only use in tests)
func ResetForTest(testPath string) {
	configFile = filepath.Join(testPath, ".atscv-config.yaml")
	v = newViper()
	_ = v.ReadInConfig()
}
