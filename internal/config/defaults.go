package config

import "github.com/bobmcallan/folio-portal/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4251,
			Host: "localhost",
		},
		Stocks: StocksConfig{
			URL:            "http://localhost:8085",
			TimeoutSeconds: 10,
		},
		Refresh: RefreshConfig{
			Enabled:         true,
			IntervalMinutes: 10,
		},
		Logging: common.LoggingConfig{
			Level:   "info",
			Outputs: []string{"console", "file"},
		},
	}
}
