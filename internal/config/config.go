package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Display() DisplayConfig
	Verify() VerifyConfig
	Locate() LocateConfig
	Motion() MotionConfig
	Input() InputConfig
	Journal() JournalConfig
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	DisplayCfg DisplayConfig `mapstructure:"display" yaml:"display"`
	VerifyCfg  VerifyConfig  `mapstructure:"verify" yaml:"verify"`
	LocateCfg  LocateConfig  `mapstructure:"locate" yaml:"locate"`
	MotionCfg  MotionConfig  `mapstructure:"motion" yaml:"motion"`
	InputCfg   InputConfig   `mapstructure:"input" yaml:"input"`
	JournalCfg JournalConfig `mapstructure:"journal" yaml:"journal"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig   { return c.LoggerCfg }
func (c *Config) Display() DisplayConfig { return c.DisplayCfg }
func (c *Config) Verify() VerifyConfig   { return c.VerifyCfg }
func (c *Config) Locate() LocateConfig   { return c.LocateCfg }
func (c *Config) Motion() MotionConfig   { return c.MotionCfg }
func (c *Config) Input() InputConfig     { return c.InputCfg }
func (c *Config) Journal() JournalConfig { return c.JournalCfg }

// LoggerConfig holds the settings for the zap logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// DisplayConfig selects the screen the driver works against and how its
// logical coordinates map onto physical pixels.
type DisplayConfig struct {
	Index int     `mapstructure:"index" yaml:"index"`
	Scale float64 `mapstructure:"scale" yaml:"scale"`
	// RedetectPerFire re-reads the display geometry before every action
	// instead of once at startup.
	RedetectPerFire bool `mapstructure:"redetect_per_fire" yaml:"redetect_per_fire"`
}

// VerifyConfig tunes the interface-change verification loop.
type VerifyConfig struct {
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Interval       time.Duration `mapstructure:"interval" yaml:"interval"`
	Tolerance      float64       `mapstructure:"tolerance" yaml:"tolerance"`
	PixelTolerance float64       `mapstructure:"pixel_tolerance" yaml:"pixel_tolerance"`
	// CheckZoneSize is the side length, in scaled units, of the zone
	// watched around a point target.
	CheckZoneSize float64 `mapstructure:"check_zone_size" yaml:"check_zone_size"`
}

// LocateConfig tunes visual target resolution.
type LocateConfig struct {
	MinScore       float64 `mapstructure:"min_score" yaml:"min_score"`
	NeedleFloor    float64 `mapstructure:"needle_floor" yaml:"needle_floor"`
	PixelTolerance float64 `mapstructure:"pixel_tolerance" yaml:"pixel_tolerance"`
}

// MotionConfig describes the simulated operator population the session
// persona is drawn from.
type MotionConfig struct {
	Profile string `mapstructure:"profile" yaml:"profile"`

	FittsAMean   float64 `mapstructure:"fitts_a_mean" yaml:"fitts_a_mean"`
	FittsAStdDev float64 `mapstructure:"fitts_a_std_dev" yaml:"fitts_a_std_dev"`
	FittsBMean   float64 `mapstructure:"fitts_b_mean" yaml:"fitts_b_mean"`
	FittsBStdDev float64 `mapstructure:"fitts_b_std_dev" yaml:"fitts_b_std_dev"`

	GaussianStrengthMean   float64 `mapstructure:"gaussian_strength_mean" yaml:"gaussian_strength_mean"`
	GaussianStrengthStdDev float64 `mapstructure:"gaussian_strength_std_dev" yaml:"gaussian_strength_std_dev"`
	PerlinAmplitudeMean    float64 `mapstructure:"perlin_amplitude_mean" yaml:"perlin_amplitude_mean"`
	PerlinAmplitudeStdDev  float64 `mapstructure:"perlin_amplitude_std_dev" yaml:"perlin_amplitude_std_dev"`

	PressHoldMinMs int `mapstructure:"press_hold_min_ms" yaml:"press_hold_min_ms"`
	PressHoldMaxMs int `mapstructure:"press_hold_max_ms" yaml:"press_hold_max_ms"`

	WheelBurstMax   int `mapstructure:"wheel_burst_max" yaml:"wheel_burst_max"`
	WheelPauseMinMs int `mapstructure:"wheel_pause_min_ms" yaml:"wheel_pause_min_ms"`
	WheelPauseMaxMs int `mapstructure:"wheel_pause_max_ms" yaml:"wheel_pause_max_ms"`

	FatigueIncreaseRate float64 `mapstructure:"fatigue_increase_rate" yaml:"fatigue_increase_rate"`
	FatigueRecoveryRate float64 `mapstructure:"fatigue_recovery_rate" yaml:"fatigue_recovery_rate"`
}

// InputConfig tunes text entry.
type InputConfig struct {
	TypingWPM  float64       `mapstructure:"typing_wpm" yaml:"typing_wpm"`
	SubmitHold time.Duration `mapstructure:"submit_hold" yaml:"submit_hold"`
}

// JournalConfig controls the on-disk action journal. An empty Dir
// disables journaling entirely.
type JournalConfig struct {
	Dir        string `mapstructure:"dir" yaml:"dir"`
	SaveFrames bool   `mapstructure:"save_frames" yaml:"save_frames"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "deskpilot")
	v.SetDefault("logger.log_file", "deskpilot.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Display --
	v.SetDefault("display.index", 0)
	v.SetDefault("display.scale", 1.0)
	v.SetDefault("display.redetect_per_fire", false)

	// -- Verify --
	v.SetDefault("verify.timeout", "1s")
	v.SetDefault("verify.interval", "100ms")
	v.SetDefault("verify.tolerance", 0.10)
	v.SetDefault("verify.pixel_tolerance", 0.10)
	v.SetDefault("verify.check_zone_size", 150.0)

	// -- Locate --
	v.SetDefault("locate.min_score", 0.5)
	v.SetDefault("locate.needle_floor", 0.8)
	v.SetDefault("locate.pixel_tolerance", 0.1)

	// -- Motion --
	v.SetDefault("motion.profile", "human")
	v.SetDefault("motion.fitts_a_mean", 100.0)
	v.SetDefault("motion.fitts_a_std_dev", 15.0)
	v.SetDefault("motion.fitts_b_mean", 120.0)
	v.SetDefault("motion.fitts_b_std_dev", 20.0)
	v.SetDefault("motion.gaussian_strength_mean", 0.5)
	v.SetDefault("motion.gaussian_strength_std_dev", 0.1)
	v.SetDefault("motion.perlin_amplitude_mean", 2.5)
	v.SetDefault("motion.perlin_amplitude_std_dev", 0.5)
	v.SetDefault("motion.press_hold_min_ms", 50)
	v.SetDefault("motion.press_hold_max_ms", 120)
	v.SetDefault("motion.wheel_burst_max", 3)
	v.SetDefault("motion.wheel_pause_min_ms", 30)
	v.SetDefault("motion.wheel_pause_max_ms", 120)
	v.SetDefault("motion.fatigue_increase_rate", 0.005)
	v.SetDefault("motion.fatigue_recovery_rate", 0.01)

	// -- Input --
	v.SetDefault("input.typing_wpm", 60.0)
	v.SetDefault("input.submit_hold", "100ms")

	// -- Journal --
	v.SetDefault("journal.dir", "")
	v.SetDefault("journal.save_frames", false)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// The scale override is the one knob operators reach for from the
	// shell, so bind its short form alongside the prefixed one.
	v.BindEnv("display.scale", "DESKPILOT_SCALE", "DESKPILOT_DISPLAY_SCALE")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.DisplayCfg.Index < 0 {
		return fmt.Errorf("display.index must not be negative")
	}
	if c.DisplayCfg.Scale <= 0 {
		return fmt.Errorf("display.scale must be a positive factor")
	}
	if err := c.VerifyCfg.Validate(); err != nil {
		return fmt.Errorf("verify configuration invalid: %w", err)
	}
	if err := c.LocateCfg.Validate(); err != nil {
		return fmt.Errorf("locate configuration invalid: %w", err)
	}
	if err := c.MotionCfg.Validate(); err != nil {
		return fmt.Errorf("motion configuration invalid: %w", err)
	}
	if err := c.InputCfg.Validate(); err != nil {
		return fmt.Errorf("input configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the verification loop settings.
func (vc *VerifyConfig) Validate() error {
	if vc.Timeout <= 0 {
		return fmt.Errorf("timeout must be a positive duration")
	}
	if vc.Interval <= 0 {
		return fmt.Errorf("interval must be a positive duration")
	}
	if vc.Tolerance < 0.0 || vc.Tolerance > 1.0 {
		return fmt.Errorf("tolerance must be between 0.0 and 1.0")
	}
	if vc.PixelTolerance < 0.0 || vc.PixelTolerance > 1.0 {
		return fmt.Errorf("pixel_tolerance must be between 0.0 and 1.0")
	}
	if vc.CheckZoneSize <= 0 {
		return fmt.Errorf("check_zone_size must be positive")
	}
	return nil
}

// Validate checks the target resolution settings.
func (lc *LocateConfig) Validate() error {
	if lc.MinScore < 0.0 || lc.MinScore > 1.0 {
		return fmt.Errorf("min_score must be between 0.0 and 1.0")
	}
	if lc.NeedleFloor <= 0.0 || lc.NeedleFloor > 1.0 {
		return fmt.Errorf("needle_floor must be between 0.0 (exclusive) and 1.0")
	}
	if lc.PixelTolerance < 0.0 || lc.PixelTolerance > 1.0 {
		return fmt.Errorf("pixel_tolerance must be between 0.0 and 1.0")
	}
	return nil
}

// Validate checks the operator simulation settings.
func (mc *MotionConfig) Validate() error {
	if mc.Profile != "human" && mc.Profile != "direct" {
		return fmt.Errorf("profile must be %q or %q", "human", "direct")
	}
	if mc.PressHoldMinMs < 0 {
		return fmt.Errorf("press_hold_min_ms must not be negative")
	}
	if mc.WheelBurstMax <= 0 {
		return fmt.Errorf("wheel_burst_max must be a positive integer")
	}
	return nil
}

// Validate checks the text entry settings.
func (ic *InputConfig) Validate() error {
	if ic.TypingWPM <= 0 {
		return fmt.Errorf("typing_wpm must be positive")
	}
	if ic.SubmitHold < 0 {
		return fmt.Errorf("submit_hold must not be negative")
	}
	return nil
}
