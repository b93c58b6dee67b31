package config

import (
	"flag"
	"os"
	"sync"
)

const (
	defaultServerAddress = ":8080"
	defaultDatabaseDSN   = ""
	defaultBrokerAddr    = "localhost:6379"
	defaultLogLevel      = "debug"
)

type Config struct {
	ServerAddr  string
	DatabaseDSN string
	BrokerAddr  string
	LogLevel    string
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		cfg := Config{}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "service server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "service database DSN")
		flag.StringVar(&cfg.BrokerAddr, "b", defaultBrokerAddr, "message broker address")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

		flag.Parse()

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if dataBaseURIEnv := os.Getenv("DATABASE_URI"); dataBaseURIEnv != "" {
			cfg.DatabaseDSN = dataBaseURIEnv
		}
		if brokerAddrEnv := os.Getenv("BROKER_ADDRESS"); brokerAddrEnv != "" {
			cfg.BrokerAddr = brokerAddrEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}

		singleton = &cfg
	})

	return singleton, nil
}
