package schema

// Config holds processing settings loaded from the environment, for use
// with config.Load and WithConfig.
type Config struct {
	CollectAllErrors bool   `env:"FORMKIT_COLLECT_ALL_ERRORS" envDefault:"false"`
	Strict           bool   `env:"FORMKIT_STRICT" envDefault:"false"`
	TimeLayout       string `env:"FORMKIT_TIME_LAYOUT" envDefault:"2006-01-02"`
	LogLevel         string `env:"FORMKIT_LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"FORMKIT_LOG_FORMAT" envDefault:"text"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		TimeLayout: DefaultTimeLayout,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}
