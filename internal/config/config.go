package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"selector-inspector/pkg/apperr"
)

const (
	ClipboardPage   = "page"
	ClipboardSystem = "system"
	ClipboardNone   = "none"
)

type Config struct {
	AppConfig     *AppConfig
	BrowserConfig *BrowserConfig
	OverlayConfig *OverlayConfig
	MetricsConfig *MetricsConfig
}

type AppConfig struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	Debug     bool   `envconfig:"DEBUG" default:"false"`
	TraceFile string `envconfig:"TRACE_FILE" default:""`
}

type BrowserConfig struct {
	Headless    bool   `envconfig:"BROWSER_HEADLESS" default:"false"`
	SlowMo      int    `envconfig:"BROWSER_SLOW_MO" default:"0"`
	Timeout     int    `envconfig:"BROWSER_TIMEOUT" default:"30000"`
	UserDataDir string `envconfig:"BROWSER_USER_DATA_DIR" default:""`
	StartURL    string `envconfig:"BROWSER_START_URL" default:"about:blank"`
}

type OverlayConfig struct {
	Outline         string        `envconfig:"OVERLAY_OUTLINE" default:"2px solid #FF671D"`
	// Chromium reserves Control+Shift+C/I/J for DevTools; a headed browser
	// opens DevTools on top of the copy when the shortcut uses one of them.
	CopyShortcut    string        `envconfig:"OVERLAY_COPY_SHORTCUT" default:"Alt+Shift+C"`
	MessageDuration time.Duration `envconfig:"OVERLAY_MESSAGE_DURATION" default:"1500ms"`
	Clipboard       string        `envconfig:"OVERLAY_CLIPBOARD" default:"page"`
	MaxPathDepth    int           `envconfig:"OVERLAY_MAX_PATH_DEPTH" default:"256"`
}

type MetricsConfig struct {
	Addr string `envconfig:"METRICS_ADDR" default:""`
}

func GetConfig() (*Config, error) {
	_ = godotenv.Load()

	var conf Config

	if err := envconfig.Process("", &conf); err != nil {
		return nil, fmt.Errorf("read config from env vars: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

func (c *Config) Validate() error {
	const op = "Validate"

	switch c.OverlayConfig.Clipboard {
	case ClipboardPage, ClipboardSystem, ClipboardNone:
	default:
		return apperr.InvalidReqError(op, "OVERLAY_CLIPBOARD",
			fmt.Errorf("unknown clipboard mode %q", c.OverlayConfig.Clipboard))
	}

	if c.OverlayConfig.MaxPathDepth <= 0 {
		return apperr.InvalidReqError(op, "OVERLAY_MAX_PATH_DEPTH", errors.New("must be positive"))
	}

	if c.OverlayConfig.MessageDuration <= 0 {
		return apperr.InvalidReqError(op, "OVERLAY_MESSAGE_DURATION", errors.New("must be positive"))
	}

	if c.BrowserConfig.Timeout <= 0 {
		return apperr.InvalidReqError(op, "BROWSER_TIMEOUT", errors.New("must be positive"))
	}

	return nil
}
