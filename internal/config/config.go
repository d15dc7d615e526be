package config

type Config interface {
	EnvConfig
	OAuthClientConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	OAuthClient
}

func New() Config {
	return mainConfig{}
}
