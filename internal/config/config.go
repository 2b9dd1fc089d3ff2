package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Output           string `yaml:"output"`
	PageWorkers      int    `yaml:"page_workers"`
	ChapterWorkers   int    `yaml:"chapter_workers"`
	Retries          int    `yaml:"retries"`
	Debug            bool   `yaml:"debug"`
	CBZ              bool   `yaml:"cbz"`
	KeepFolders      bool   `yaml:"keep_folders"`
	FilenameTemplate string `yaml:"filename_template"`

	DefaultSeries   string `yaml:"default_series"`
	DefaultChapters string `yaml:"default_chapters"`

	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`
	UserAgent  string `yaml:"user_agent"`
	Cloudflare bool   `yaml:"cloudflare"`
}

// Options are command line values. Zero values leave the file value alone.
type Options struct {
	IgnoreConfig     bool
	Debug            bool
	Output           string
	PageWorkers      int
	ChapterWorkers   int
	Retries          int
	CBZ              bool
	KeepFolders      bool
	FilenameTemplate string
	Cookie           string
	CookieFile       string
	UserAgent        string
	Cloudflare       bool
}

const (
	defaultPageWorkers    = 5
	defaultChapterWorkers = 2
	defaultRetries        = 3
)

func DefaultConfig() *Config {
	return &Config{
		Output:         ".",
		PageWorkers:    defaultPageWorkers,
		ChapterWorkers: defaultChapterWorkers,
		Retries:        defaultRetries,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged loads the active profile, applies opts on top and fills in
// defaults. The second value describes where the config came from.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory, run `mangatown config init` to create one)", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.PageWorkers != 0 {
		c.PageWorkers = o.PageWorkers
	}
	if o.ChapterWorkers != 0 {
		c.ChapterWorkers = o.ChapterWorkers
	}
	if o.Retries != 0 {
		c.Retries = o.Retries
	}
	if o.Debug {
		c.Debug = true
	}
	if o.CBZ {
		c.CBZ = true
	}
	if o.KeepFolders {
		c.KeepFolders = true
	}
	if o.FilenameTemplate != "" {
		c.FilenameTemplate = o.FilenameTemplate
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cloudflare {
		c.Cloudflare = true
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.PageWorkers < 1 {
		c.PageWorkers = defaultPageWorkers
	}
	if c.ChapterWorkers < 1 {
		c.ChapterWorkers = defaultChapterWorkers
	}
	if c.Retries < 1 {
		c.Retries = defaultRetries
	}
}

func (c *Config) Print(w io.Writer) {
	p := func(format string, args ...any) {
		_, _ = fmt.Fprintf(w, format, args...)
	}

	p(" -output: %s\n", c.Output)
	p(" -page_workers: %d\n", c.PageWorkers)
	p(" -chapter_workers: %d\n", c.ChapterWorkers)
	p(" -retries: %d\n", c.Retries)
	if c.Debug {
		p(" -debug: %t\n", c.Debug)
	}
	if c.CBZ {
		p(" -cbz: %t\n", c.CBZ)
	}
	if c.KeepFolders {
		p(" -keep_folders: %t\n", c.KeepFolders)
	}
	if c.FilenameTemplate != "" {
		p(" -filename_template: %s\n", c.FilenameTemplate)
	}
	if c.DefaultSeries != "" {
		p(" -series: %s\n", c.DefaultSeries)
	}
	if c.DefaultChapters != "" {
		p(" -chapters: %s\n", c.DefaultChapters)
	}
	if c.CookieFile != "" {
		p(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		p(" -user_agent: %s\n", c.UserAgent)
	}
	if c.Cloudflare {
		p(" -cloudflare: %t\n", c.Cloudflare)
	}
}
