package config

const (
	defaultConfigPath  = "~/.config/img2base/config.toml"
	defaultStateDir    = "~/.local/state/img2base"
	defaultJPEGQuality = 75
	defaultColor       = ColorAuto
	defaultLogFormat   = "console"
	defaultLogLevel    = "warn"

	// LogLevelEnv overrides logging.level when set.
	LogLevelEnv = "IMG2BASE_LOG_LEVEL"
)

// Colour modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LockDir: defaultLockDir(),
		},
		Image: Image{
			JPEGQuality: defaultJPEGQuality,
		},
		Output: Output{
			Color: defaultColor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
