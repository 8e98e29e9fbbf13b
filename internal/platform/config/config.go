package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DataDirName    = ".quill"
	configFileName = "config"
	envPrefix      = "QUILL"

	minPollInterval = time.Second
	maxPollInterval = 5 * time.Second
)

type Config struct {
	VaultPath     string
	DataDir       string
	DataPath      string
	DBPath        string
	CacheDir      string
	ActivePath    string
	PromptFeedURL string
	PollInterval  time.Duration
	NudgeInterval time.Duration
	Location      *time.Location
	LogLevel      string
	LogFormat     string
	SessionNotes  bool
	NotesFolder   string
}

// New returns the default configuration for a vault without reading any
// config file or environment.
func New(vaultPath string) (Config, error) {
	if strings.TrimSpace(vaultPath) == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	expanded, err := homedir.Expand(vaultPath)
	if err != nil {
		return Config{}, fmt.Errorf("expand vault path: %w", err)
	}
	dataDir := filepath.Join(expanded, DataDirName)
	return Config{
		VaultPath:     expanded,
		DataDir:       dataDir,
		DataPath:      filepath.Join(dataDir, "data.json"),
		DBPath:        filepath.Join(dataDir, "quill.db"),
		CacheDir:      filepath.Join(dataDir, "cache"),
		ActivePath:    filepath.Join(dataDir, "active-session.json"),
		PromptFeedURL: "https://www.reddit.com/r/WritingPrompts/top.json?t=week&limit=100",
		PollInterval:  2 * time.Second,
		NudgeInterval: 30 * time.Minute,
		Location:      time.Local,
		LogLevel:      "info",
		LogFormat:     "text",
		SessionNotes:  true,
		NotesFolder:   "Writing",
	}, nil
}

// Load layers <vault>/.quill/config.yaml and QUILL_* environment variables
// over the defaults from New. A missing config file is not an error.
func Load(vaultPath string) (Config, error) {
	cfg, err := New(vaultPath)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cfg.DataDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("prompt_feed_url", cfg.PromptFeedURL)
	v.SetDefault("poll_interval", cfg.PollInterval.String())
	v.SetDefault("nudge_interval", cfg.NudgeInterval.String())
	v.SetDefault("timezone", "Local")
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("session_notes", cfg.SessionNotes)
	v.SetDefault("notes_folder", cfg.NotesFolder)
	v.SetDefault("cache_dir", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.PromptFeedURL = v.GetString("prompt_feed_url")
	cfg.LogLevel = strings.ToLower(v.GetString("log_level"))
	cfg.LogFormat = strings.ToLower(v.GetString("log_format"))
	cfg.SessionNotes = v.GetBool("session_notes")
	if folder := strings.Trim(strings.TrimSpace(v.GetString("notes_folder")), "/"); folder != "" {
		cfg.NotesFolder = folder
	}
	if dir := strings.TrimSpace(v.GetString("cache_dir")); dir != "" {
		expanded, err := homedir.Expand(dir)
		if err != nil {
			return Config{}, fmt.Errorf("expand cache dir: %w", err)
		}
		cfg.CacheDir = expanded
	}

	poll, err := time.ParseDuration(v.GetString("poll_interval"))
	if err != nil {
		return Config{}, fmt.Errorf("parse poll_interval: %w", err)
	}
	cfg.PollInterval = clampDuration(poll, minPollInterval, maxPollInterval)

	nudge, err := time.ParseDuration(v.GetString("nudge_interval"))
	if err != nil {
		return Config{}, fmt.Errorf("parse nudge_interval: %w", err)
	}
	if nudge < time.Minute {
		return Config{}, fmt.Errorf("nudge_interval must be at least 1m, got %s", nudge)
	}
	cfg.NudgeInterval = nudge

	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return Config{}, fmt.Errorf("load timezone: %w", err)
	}
	cfg.Location = loc
	return cfg, nil
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
