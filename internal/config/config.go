package config

type appConfig struct {
	ServerAddress   string `env:"SERVER_ADDRESS"`
	BaseURL         string `env:"BASE_URL"`
	DatabaseDSN     string `env:"DATABASE_DSN"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	AuthSecret      string `env:"AUTH_SECRET"`
	CodeMaxAttempts int    `env:"CODE_MAX_ATTEMPTS"`
}

var defaults = appConfig{
	ServerAddress:   "localhost:8080",
	BaseURL:         "http://localhost:8080",
	AuthSecret:      "55c21cba3f534ae292ab2cc6921e6bc7",
	CodeMaxAttempts: 10,
}

var Current = appConfig{}

func SetDefaults() {
	if Current.ServerAddress == "" {
		Current.ServerAddress = defaults.ServerAddress
	}
	if Current.BaseURL == "" {
		Current.BaseURL = defaults.BaseURL
	}
	if Current.AuthSecret == "" {
		Current.AuthSecret = defaults.AuthSecret
	}
	if Current.CodeMaxAttempts <= 0 {
		Current.CodeMaxAttempts = defaults.CodeMaxAttempts
	}
}
