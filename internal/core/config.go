package core

import (
	"fmt"
	"strings"

	"github.com/gookit/config/v2"
	"github.com/gookit/config/v2/yaml"
)

type Log struct {
	Level  string `config:"level"`
	Format string `config:"format"`
}

type Store struct {
	Driver string `config:"driver"`
	DSN    string `config:"dsn"`
}

type Broker struct {
	URL   string `config:"url"`
	Topic string `config:"topic"`
	Name  string `config:"name"`
}

type Metrics struct {
	Enabled bool   `config:"enabled"`
	Path    string `config:"path"`
}

type Config struct {
	Addr    string  `config:"addr"`
	Log     Log     `config:"log"`
	Store   Store   `config:"store"`
	Broker  Broker  `config:"broker"`
	Metrics Metrics `config:"metrics"`
}

func DefaultConfig() *Config {
	return &Config{
		Addr: ":8080",
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Store: Store{
			Driver: "memory",
			DSN:    "todos.db",
		},
		Broker: Broker{
			Topic: "persistent://public/default/todos",
			Name:  "todo-api",
		},
		Metrics: Metrics{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// NewConfig reads path, then the optional "<name>.local.yml" next to it, over
// the defaults. Values may reference the environment, e.g. ${TODO_ADDR|:8080}.
// An empty path returns the defaults.
func NewConfig(path string) (*Config, error) {
	appConfig := DefaultConfig()

	if path == "" {
		return appConfig, nil
	}

	c := config.New("todo")
	c.WithOptions(func(opt *config.Options) {
		opt.ParseEnv = true
		opt.DecoderConfig.TagName = "config"
	})

	c.AddDriver(yaml.Driver)

	if err := c.LoadFiles(path); err != nil {
		return nil, err
	}

	if err := c.LoadExists(strings.Replace(path, ".yml", ".local.yml", 1)); err != nil {
		return nil, err
	}

	if err := c.BindStruct("", appConfig); err != nil {
		return nil, err
	}

	if err := appConfig.Validate(); err != nil {
		return nil, err
	}

	return appConfig, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}

	switch c.Log.Format {
	case "", "text", "json", "logfmt":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("config: metrics path %q must start with /", c.Metrics.Path)
	}

	if c.Metrics.Enabled && (c.Metrics.Path == "/todos" || strings.HasPrefix(c.Metrics.Path, "/todos/")) {
		return fmt.Errorf("config: metrics path %q collides with the todo routes", c.Metrics.Path)
	}

	return nil
}
