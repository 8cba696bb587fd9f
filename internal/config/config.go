package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "DIFFHTML"
	RepoConfigFile = "diffhtml.yaml"
)

type Config struct {
	Render    RenderConfig    `mapstructure:"render" yaml:"render"`
	Theme     ThemeConfig     `mapstructure:"theme" yaml:"theme"`
	Redaction RedactionConfig `mapstructure:"redaction" yaml:"redaction"`
	Page      PageConfig      `mapstructure:"page" yaml:"page"`
	Watch     WatchConfig     `mapstructure:"watch" yaml:"watch"`
	Store     StoreConfig     `mapstructure:"store" yaml:"store"`
}

type RenderConfig struct {
	VCS        string   `mapstructure:"vcs" yaml:"vcs"`
	FilePrefix string   `mapstructure:"file_prefix" yaml:"file_prefix"`
	Workers    int      `mapstructure:"workers" yaml:"workers"`
	Ignore     []string `mapstructure:"ignore" yaml:"ignore"`
	MaxFiles   int      `mapstructure:"max_files" yaml:"max_files"`
}

type ThemeConfig struct {
	AddedBackground      string `mapstructure:"added_background" yaml:"added_background"`
	RemovedBackground    string `mapstructure:"removed_background" yaml:"removed_background"`
	RangeBackground      string `mapstructure:"range_background" yaml:"range_background"`
	LineNumberBackground string `mapstructure:"line_number_background" yaml:"line_number_background"`
	FontFamily           string `mapstructure:"font_family" yaml:"font_family"`
}

type RedactionConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

type PageConfig struct {
	Title string `mapstructure:"title" yaml:"title"`
	// Intro is a markdown file rendered above the diff in page mode.
	Intro string `mapstructure:"intro" yaml:"intro"`
}

type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
}

type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

func Defaults() Config {
	return Config{
		Render: RenderConfig{
			VCS:     "git",
			Workers: 1,
			Ignore:  []string{},
		},
		Theme: ThemeConfig{
			AddedBackground:      "#dfd",
			RemovedBackground:    "#fdd",
			RangeBackground:      "rgb(234,242,245)",
			LineNumberBackground: "#ddd",
			FontFamily:           "monospace",
		},
		Redaction: RedactionConfig{Enabled: false},
		Page:      PageConfig{Title: "Diff"},
		Watch:     WatchConfig{DebounceMS: 200},
	}
}

// Dir is the per-user configuration directory.
func Dir() string {
	return filepath.Join(os.Getenv("HOME"), ".diffhtml")
}

// UserConfigPath resolves the user config file, honoring an explicit override.
func UserConfigPath(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(Dir(), "config.yaml")
}

// Load layers defaults, the user config, the repo config in the working
// directory and DIFFHTML_* environment variables, in that order.
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, path := range []string{UserConfigPath(configPath), filepath.Join(".", RepoConfigFile)} {
		if err := mergeFile(v, path); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("render.vcs", d.Render.VCS)
	v.SetDefault("render.file_prefix", d.Render.FilePrefix)
	v.SetDefault("render.workers", d.Render.Workers)
	v.SetDefault("render.ignore", d.Render.Ignore)
	v.SetDefault("render.max_files", d.Render.MaxFiles)
	v.SetDefault("theme.added_background", d.Theme.AddedBackground)
	v.SetDefault("theme.removed_background", d.Theme.RemovedBackground)
	v.SetDefault("theme.range_background", d.Theme.RangeBackground)
	v.SetDefault("theme.line_number_background", d.Theme.LineNumberBackground)
	v.SetDefault("theme.font_family", d.Theme.FontFamily)
	v.SetDefault("redaction.enabled", d.Redaction.Enabled)
	v.SetDefault("page.title", d.Page.Title)
	v.SetDefault("page.intro", d.Page.Intro)
	v.SetDefault("watch.debounce_ms", d.Watch.DebounceMS)
	v.SetDefault("store.path", d.Store.Path)
}

func mergeFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := ValidateFile(path); err != nil {
		return err
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

func (c *Config) fillDefaults() {
	d := Defaults()
	if c.Render.VCS == "" {
		c.Render.VCS = d.Render.VCS
	}
	if c.Render.Workers <= 0 {
		c.Render.Workers = d.Render.Workers
	}
	if c.Render.Ignore == nil {
		c.Render.Ignore = []string{}
	}
	if c.Page.Title == "" {
		c.Page.Title = d.Page.Title
	}
	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = d.Watch.DebounceMS
	}
}
