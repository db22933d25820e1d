package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Author identifies the blog owner in feeds and copyright lines.
type Author struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

// ShowFlags are the per-element display toggles.
type ShowFlags struct {
	PoweredBy bool `mapstructure:"powered_by"`
	URLs      bool `mapstructure:"urls"`
	Category  bool `mapstructure:"category"`
	Date      bool `mapstructure:"date"`
	Copyright bool `mapstructure:"copyright"`
	Separator bool `mapstructure:"separator"`
}

// Config holds the whole configuration surface. It is built once at
// startup and passed by value; nothing mutates it afterwards.
type Config struct {
	Listen     string            `mapstructure:"listen"`
	Width      int               `mapstructure:"width"`
	Prefix     int               `mapstructure:"prefix"`
	ContentDir string            `mapstructure:"content_dir"`
	StaticDir  string            `mapstructure:"static_dir"`
	OutDir     string            `mapstructure:"out_dir"`
	BaseURL    string            `mapstructure:"base_url"`
	Author     Author            `mapstructure:"author"`
	About      string            `mapstructure:"about"`
	Show       ShowFlags         `mapstructure:"show"`
	Rewrites   map[string]string `mapstructure:"rewrites"`
}

// Load reads the configuration from path, or from ./weblog.yaml when path
// is empty. A missing default file is fine and yields the defaults;
// environment variables prefixed WEBLOG_ override file values.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("listen", ":8080")
	v.SetDefault("width", 72)
	v.SetDefault("prefix", 3)
	v.SetDefault("content_dir", "content")
	v.SetDefault("static_dir", "static")
	v.SetDefault("out_dir", "public")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("author.name", "Anonymous")
	v.SetDefault("show.powered_by", true)
	v.SetDefault("show.urls", true)
	v.SetDefault("show.category", true)
	v.SetDefault("show.date", true)
	v.SetDefault("show.copyright", true)
	v.SetDefault("show.separator", true)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("weblog")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("WEBLOG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	// The about text carries literal \n sequences standing in for
	// paragraph breaks.
	cfg.About = strings.ReplaceAll(cfg.About, `\n`, "\n")

	return cfg, nil
}
