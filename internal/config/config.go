package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"tabpager/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Nav     NavSettings     `mapstructure:"nav"`
	UI      UISettings      `mapstructure:"ui"`
	Session SessionSettings `mapstructure:"session"`
	Logging LoggingSettings `mapstructure:"logging"`
}

// NavSettings tunes the navigation policy knobs.
type NavSettings struct {
	CommitThreshold float64 `mapstructure:"commit_threshold"`
	LookaheadBound  int     `mapstructure:"lookahead_bound"`
	NeighborCount   int     `mapstructure:"neighbor_count"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	TabWidth       int     `mapstructure:"tab_width"`
	IndicatorGlyph string  `mapstructure:"indicator_glyph"`
	DragStep       float64 `mapstructure:"drag_step"`
}

// SessionSettings controls last-selection persistence.
type SessionSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	File    string `mapstructure:"file"`
}

// LoggingSettings holds logging configuration
type LoggingSettings struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
}

// configService is the concrete implementation
type configService struct {
	bus eventbus.EventBus
	dir string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	return &configService{dir: defaultConfigDir()}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load reads the config file (if any) merged over defaults and
// TABPAGER_* environment overrides.
func (cs *configService) Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(cs.dir)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("TABPAGER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file, defaults apply
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cs.publishApplied()
	return cfg, nil
}

// Save writes the configuration to the default config path.
func (cs *configService) Save(cfg *Config) error {
	if err := os.MkdirAll(cs.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("nav.commit_threshold", cfg.Nav.CommitThreshold)
	viper.Set("nav.lookahead_bound", cfg.Nav.LookaheadBound)
	viper.Set("nav.neighbor_count", cfg.Nav.NeighborCount)

	viper.Set("ui.tab_width", cfg.UI.TabWidth)
	viper.Set("ui.indicator_glyph", cfg.UI.IndicatorGlyph)
	viper.Set("ui.drag_step", cfg.UI.DragStep)

	viper.Set("session.enabled", cfg.Session.Enabled)
	viper.Set("session.file", cfg.Session.File)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(cs.dir, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cs.publishApplied()
	return nil
}

// LoadFromPath loads configuration from a specific file, with no
// default-path or environment merging.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

func (cs *configService) publishApplied() {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.OptionsAppliedEvent{})
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Nav: NavSettings{
			CommitThreshold: 1.0,
			LookaheadBound:  16,
			NeighborCount:   3,
		},
		UI: UISettings{
			TabWidth:       16,
			IndicatorGlyph: "▔",
			DragStep:       0.25,
		},
		Session: SessionSettings{
			Enabled: true,
			File:    filepath.Join(defaultDataDir(), "session.db"),
		},
		Logging: LoggingSettings{
			File:  filepath.Join(defaultDataDir(), "tabpager.log"),
			Level: "INFO",
		},
	}
}

func defaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tabpager")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tabpager")
	}
}

func defaultDataDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "tabpager")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "tabpager")
	}
}
