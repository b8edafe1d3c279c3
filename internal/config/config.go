package config

import "time"

// Store backends accepted by StoreConfig.Driver.
const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"
)

// Config holds server configuration values.
type Config struct {
	Addr               string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout  time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel           string        `mapstructure:"log_level" yaml:"log_level"`
	MaxMessageBytes    int64         `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	MaxMultipartMemory int64         `mapstructure:"max_multipart_memory" yaml:"max_multipart_memory"`
	Store              StoreConfig   `mapstructure:"store" yaml:"store"`
}

// StoreConfig selects the list store backend. Every backend is in-memory.
type StoreConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:               ":8080",
		ReadHeaderTimeout:  5 * time.Second,
		ShutdownTimeout:    5 * time.Second,
		LogLevel:           "info",
		MaxMessageBytes:    1 << 20,
		MaxMultipartMemory: 32 << 20,
		Store: StoreConfig{
			Driver: StoreDriverMemory,
		},
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.MaxMessageBytes != 0 {
		c.MaxMessageBytes = other.MaxMessageBytes
	}
	if other.MaxMultipartMemory != 0 {
		c.MaxMultipartMemory = other.MaxMultipartMemory
	}
	if other.Store.Driver != "" {
		c.Store.Driver = other.Store.Driver
	}
}
