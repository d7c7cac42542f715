package config

// Default configuration values
const (
	DefaultPort              = "8080"
	DefaultLogLevel          = "INFO"
	DefaultLogFormat         = "text"
	DefaultServiceName       = "reward-engine"
	DefaultVersion           = "dev"
	DefaultEnvironment       = "dev"
	DefaultDBUser            = "postgres"
	DefaultDBPassword        = "postgres"
	DefaultDBHost            = "localhost"
	DefaultDBPort            = "5432"
	DefaultDBName            = "rewards"
	DefaultMaxActiveListings = "100"
)
