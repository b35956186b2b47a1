package logging

import (
	"strings"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/caarlos0/env/v11"
)

// Config controls how a Service builds its sinks. Every field can be
// overridden from the environment with the SCAFFOLD_ prefix, e.g.
// SCAFFOLD_LOG_LEVEL=debug.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"required,oneof=trace debug info warn error fatal panic"`
	Format string `env:"LOG_FORMAT" envDefault:"text" validate:"required,oneof=text json"`

	FileLogging    bool `env:"LOG_FILE" envDefault:"true"`
	ConsoleLogging bool `env:"LOG_CONSOLE" envDefault:"false"`

	// RelLogFileDir is resolved against Service.WorkingDir and may not leave it.
	RelLogFileDir string `env:"LOG_DIR" envDefault:"logs" validate:"required,relpath"`
	LogFilePrefix string `env:"LOG_FILE_PREFIX" envDefault:"log_" validate:"excludesall=/"`

	LogFileMaxSizeMB  int  `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"100" validate:"gte=0"`
	LogFileMaxBackups int  `env:"LOG_FILE_MAX_BACKUPS" envDefault:"0" validate:"gte=0"`
	LogFileMaxAgeDays int  `env:"LOG_FILE_MAX_AGE_DAYS" envDefault:"0" validate:"gte=0"`
	LogFileCompress   bool `env:"LOG_FILE_COMPRESS" envDefault:"false"`

	ShutdownTimeoutMS      int  `env:"LOG_SHUTDOWN_TIMEOUT_MS" envDefault:"500" validate:"gte=0"`
	ShutdownTimeoutWarning bool `env:"LOG_SHUTDOWN_TIMEOUT_WARNING" envDefault:"true"`
}

// DefaultConfig returns the configuration described by the envDefault tags,
// ignoring the process environment.
func DefaultConfig() Config {
	var cfg Config
	// The tags are static, so parsing against an empty environment cannot fail.
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	return cfg
}

// LoadConfig overlays SCAFFOLD_* environment variables on the defaults and
// validates the result.
func LoadConfig() (Config, error) {
	const op errors.Op = "logging.LoadConfig"

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, errors.New(op).Err(err).Msg(errMsgEnvInvalid)
	}
	cfg.normalize()
	if err := validateConfig(&cfg); err != nil {
		return Config{}, errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}
	return cfg, nil
}

// normalize lower-cases the enumerated fields so LOG_LEVEL=INFO is accepted.
func (c *Config) normalize() {
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
}

func (c *Config) shutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}
