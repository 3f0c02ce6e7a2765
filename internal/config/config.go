package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/klemjul/msgdump/internal/export"
	"github.com/klemjul/msgdump/internal/graph"
	"github.com/spf13/viper"
)

type Preview string

const (
	PreviewNone        Preview = "none"
	PreviewMarkdown    Preview = "markdown"
	PreviewInteractive Preview = "interactive"
)

var Previews = []Preview{PreviewNone, PreviewMarkdown, PreviewInteractive}

var LogLevels = []string{"debug", "info", "warn", "error"}

var LogFormats = []string{"text", "json", "logfmt"}

// Config is read once at startup and passed explicitly to every stage.
type Config struct {
	OwnID        string
	OtherPartyID string
	AccessToken  string

	GraphURL     string
	GraphVersion string
	Platform     graph.Platform
	PageSize     int
	MaxMessages  int
	Timeout      time.Duration

	Output  string
	Format  string
	Preview Preview

	Upload    bool
	OpenAIKey string

	LogLevel  string
	LogFormat string
}

// NewViper reads the environment, falling back to the dotenv file at dotenvPath when it exists.
func NewViper(dotenvPath string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(ENV_PREFIX)
	v.AutomaticEnv()
	for _, env := range []string{ENV_OWN_ID, ENV_OTHER_PARTY_ID, ENV_ACCESS_TOKEN, ENV_OPENAI_API_KEY} {
		if err := v.BindEnv(env, env); err != nil {
			return nil, err
		}
	}

	v.SetDefault(ENV_GRAPH_URL, DEFAULT_GRAPH_URL)
	v.SetDefault(ENV_GRAPH_VERSION, DEFAULT_GRAPH_VERSION)
	v.SetDefault(ENV_PLATFORM, DEFAULT_PLATFORM)
	v.SetDefault(ENV_PAGE_SIZE, DEFAULT_PAGE_SIZE)
	v.SetDefault(ENV_MAX_MESSAGES, DEFAULT_MAX_MESSAGES)
	v.SetDefault(ENV_TIMEOUT, DEFAULT_TIMEOUT.String())
	v.SetDefault(ENV_OUTPUT, DEFAULT_OUTPUT)
	v.SetDefault(ENV_FORMAT, DEFAULT_FORMAT)
	v.SetDefault(ENV_PREVIEW, DEFAULT_PREVIEW)
	v.SetDefault(ENV_UPLOAD, false)
	v.SetDefault(ENV_LOG_LEVEL, DEFAULT_LOG_LEVEL)
	v.SetDefault(ENV_LOG_FORMAT, DEFAULT_LOG_FORMAT)

	if dotenvPath != "" {
		if err := loadDotenv(v, dotenvPath); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// loadDotenv registers the file's values as defaults, so the process environment keeps precedence.
func loadDotenv(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("env")
	if err := file.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	prefix := strings.ToLower(ENV_PREFIX) + "_"
	for _, key := range file.AllKeys() {
		v.SetDefault(strings.TrimPrefix(key, prefix), file.Get(key))
	}
	return nil
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		OwnID:        v.GetString(ENV_OWN_ID),
		OtherPartyID: v.GetString(ENV_OTHER_PARTY_ID),
		AccessToken:  v.GetString(ENV_ACCESS_TOKEN),
		OpenAIKey:    v.GetString(ENV_OPENAI_API_KEY),
		GraphURL:     v.GetString(ENV_GRAPH_URL),
		GraphVersion: v.GetString(ENV_GRAPH_VERSION),
		Platform:     graph.Platform(strings.ToLower(v.GetString(ENV_PLATFORM))),
		Output:       v.GetString(ENV_OUTPUT),
		Format:       strings.ToLower(v.GetString(ENV_FORMAT)),
		Preview:      Preview(strings.ToLower(v.GetString(ENV_PREVIEW))),
		LogLevel:     strings.ToLower(v.GetString(ENV_LOG_LEVEL)),
		LogFormat:    strings.ToLower(v.GetString(ENV_LOG_FORMAT)),
	}

	var err error
	if cfg.PageSize, err = positiveInt(v, ENV_PAGE_SIZE); err != nil {
		return Config{}, err
	}
	if cfg.MaxMessages, err = positiveInt(v, ENV_MAX_MESSAGES); err != nil {
		return Config{}, err
	}
	if cfg.Timeout, err = duration(v, ENV_TIMEOUT); err != nil {
		return Config{}, err
	}
	if cfg.Upload, err = strconv.ParseBool(v.GetString(ENV_UPLOAD)); err != nil {
		return Config{}, fmt.Errorf("invalid %s '%s': expected a boolean", GetEnvWithPrefix(ENV_UPLOAD), v.GetString(ENV_UPLOAD))
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if !slices.Contains(graph.Platforms, c.Platform) {
		return fmt.Errorf("invalid platform '%s'. Valid platforms are: %v", c.Platform, graph.Platforms)
	}
	if !slices.Contains(export.Formats, c.Format) {
		return fmt.Errorf("invalid format '%s'. Valid formats are: %v", c.Format, export.Formats)
	}
	if !slices.Contains(Previews, c.Preview) {
		return fmt.Errorf("invalid preview '%s'. Valid previews are: %v", c.Preview, Previews)
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level '%s'. Valid levels are: %v", c.LogLevel, LogLevels)
	}
	if !slices.Contains(LogFormats, c.LogFormat) {
		return fmt.Errorf("invalid log format '%s'. Valid formats are: %v", c.LogFormat, LogFormats)
	}
	if c.Output == "" {
		return fmt.Errorf("output path must be specified (env: %s)", GetEnvWithPrefix(ENV_OUTPUT))
	}
	if c.Upload && c.Format != "json" && c.Format != "jsonl" {
		return fmt.Errorf("upload requires json or jsonl format, got '%s'", c.Format)
	}
	return nil
}

// MissingIdentity lists the identity variables left empty. They are not required, requests go out without them.
func (c Config) MissingIdentity() []string {
	var missing []string
	if c.OwnID == "" {
		missing = append(missing, ENV_OWN_ID)
	}
	if c.OtherPartyID == "" {
		missing = append(missing, ENV_OTHER_PARTY_ID)
	}
	if c.AccessToken == "" {
		missing = append(missing, ENV_ACCESS_TOKEN)
	}
	return missing
}

func positiveInt(v *viper.Viper, key string) (int, error) {
	raw := v.GetString(key)
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s '%s': expected a positive integer", GetEnvWithPrefix(key), raw)
	}
	return n, nil
}

// duration accepts Go durations ("20s") or a bare number of seconds ("20").
func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s '%s': expected a positive duration", GetEnvWithPrefix(key), raw)
	}
	return d, nil
}
