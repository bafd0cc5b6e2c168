package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/gubarz/docco/internal/parser"
)

// DefaultDelimiter is the content line marker used when a format names none
const DefaultDelimiter = '*'

// Output modes
const (
	ModeWrite   = "write"
	ModePrint   = "print"
	ModeCopy    = "copy"
	ModePreview = "preview"
)

// Format describes one recognised file extension
type Format struct {
	Extension string `mapstructure:"extension"`
	Start     string `mapstructure:"start"`
	End       string `mapstructure:"end"`
	Delimiter string `mapstructure:"delimiter"`
}

// Config holds the application configuration
type Config struct {
	Index       []string `mapstructure:"index"`
	Formats     []Format `mapstructure:"formats"`
	Output      string   `mapstructure:"output"`
	Mode        string   `mapstructure:"mode"`
	Root        string   `mapstructure:"root"`
	FollowLinks bool     `mapstructure:"follow_links"`
	MergeOrder  string   `mapstructure:"merge_order"`
	StripHeader bool     `mapstructure:"strip_header"`
	TOC         bool     `mapstructure:"toc"`
	LogLevel    string   `mapstructure:"log_level"`
	PrintPrefix string   `mapstructure:"print_prefix"`

	ColorHeader   string `mapstructure:"color_header"`
	ColorDim      string `mapstructure:"color_dim"`
	ColorBorder   string `mapstructure:"color_border"`
	ColorSelected string `mapstructure:"color_selected"`
}

// Load reads the descriptor at path, or docco.json in the working directory
// when path is empty. Environment variables prefixed DOCCO_ override values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		path = expandTilde(path)
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("json")
		}
	} else {
		v.SetConfigName("docco")
		v.SetConfigType("json")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DOCCO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", v.ConfigFileUsed(), err)
	}
	c.Root = expandTilde(c.Root)
	c.Output = expandTilde(c.Output)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", v.ConfigFileUsed(), err)
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("index", []string{})
	v.SetDefault("output", "README.md")
	v.SetDefault("mode", ModeWrite)
	v.SetDefault("root", ".")
	v.SetDefault("follow_links", true)
	v.SetDefault("merge_order", string(parser.MergeNewFirst))
	v.SetDefault("strip_header", false)
	v.SetDefault("toc", false)
	v.SetDefault("log_level", "warn")
	v.SetDefault("print_prefix", "")
	v.SetDefault("color_header", "36")    // Cyan
	v.SetDefault("color_dim", "90")       // Gray
	v.SetDefault("color_border", "240")   // Dark gray
	v.SetDefault("color_selected", "236") // Selection background
}

// Validate checks the configuration is usable
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Formats, validation.Required),
		validation.Field(&c.Mode, validation.In(ModeWrite, ModePrint, ModeCopy, ModePreview)),
		validation.Field(&c.MergeOrder, validation.In(string(parser.MergeNewFirst), string(parser.MergeEncounter))),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Output, validation.When(c.Mode == ModeWrite, validation.Required)),
	)
}

// Validate checks a single format entry
func (f Format) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Extension, validation.Required),
		validation.Field(&f.Start, validation.Required),
		validation.Field(&f.End, validation.Required),
		validation.Field(&f.Delimiter, validation.RuneLength(0, 1)),
	)
}

// ParserFormat converts the entry for the parser, applying DefaultDelimiter
func (f Format) ParserFormat() parser.Format {
	delimiter := rune(DefaultDelimiter)
	if r, size := utf8.DecodeRuneInString(f.Delimiter); size > 0 {
		delimiter = r
	}
	return parser.Format{
		Extension: f.Extension,
		Start:     f.Start,
		End:       f.End,
		Delimiter: delimiter,
	}
}

// ParserFormats converts every configured format
func (c *Config) ParserFormats() []parser.Format {
	formats := make([]parser.Format, 0, len(c.Formats))
	for _, f := range c.Formats {
		formats = append(formats, f.ParserFormat())
	}
	return formats
}

// Level returns the slog level named by LogLevel
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// SetOutput sets output mode at runtime
func (c *Config) SetOutput(mode string) {
	c.Mode = mode
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
