package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/daylog/config.yaml"

// Config holds all DayLog configuration.
type Config struct {
	Sources    SourcesConfig    `yaml:"sources"`
	Categorize CategorizeConfig `yaml:"categorize"`
	Privacy    PrivacyConfig    `yaml:"privacy"`
	Output     OutputConfig     `yaml:"output"`
}

type SourcesConfig struct {
	Browser BrowserConfig `yaml:"browser"`
	Git     GitConfig     `yaml:"git"`
	AIChats AIChatsConfig `yaml:"ai_chats"`
}

type BrowserConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ChromePath  string `yaml:"chrome_path"`
	EdgePath    string `yaml:"edge_path"`
	FirefoxPath string `yaml:"firefox_path"` // profiles directory, not a single db file
}

type GitConfig struct {
	Enabled      bool     `yaml:"enabled"`
	ProjectDirs  []string `yaml:"project_dirs"`
	AuthorEmails []string `yaml:"author_emails"`
}

type AIChatsConfig struct {
	Enabled        bool   `yaml:"enabled"`
	ChatGPTExport  string `yaml:"chatgpt_export"`
	CopilotEnabled bool   `yaml:"copilot_enabled"`
}

type CategorizeConfig struct {
	WorkKeywords          []string `yaml:"work_keywords"`
	LearningKeywords      []string `yaml:"learning_keywords"`
	EntertainmentKeywords []string `yaml:"entertainment_keywords"`
}

type PrivacyConfig struct {
	ExcludeTerms []string `yaml:"exclude_terms"`
}

type OutputConfig struct {
	Dir                   string `yaml:"dir"`
	IncludeTimeline       bool   `yaml:"include_timeline"`
	IncludeStatistics     bool   `yaml:"include_statistics"`
	MaxEntriesPerCategory int    `yaml:"max_entries_per_category"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads the config from path, falling back to DefaultConfigPath
// when path is empty and to pure defaults when no file exists at all.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		expanded, err := ExpandPath(DefaultConfigPath)
		if err != nil {
			return DefaultConfig(), nil
		}
		path = expanded
	} else {
		expanded, err := ExpandPath(path)
		if err != nil {
			return nil, err
		}
		path = expanded
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// IsEnabled reports whether the named data source is enabled.
// Unknown source names are disabled.
func (c *Config) IsEnabled(source string) bool {
	switch source {
	case "browser":
		return c.Sources.Browser.Enabled
	case "git":
		return c.Sources.Git.Enabled
	case "ai_chats":
		return c.Sources.AIChats.Enabled
	default:
		return false
	}
}

// ExpandPath expands a leading ~ and any $VAR environment references in path.
func ExpandPath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return path, nil
}
