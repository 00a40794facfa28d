// Package config loads service configuration with Viper.
//
// Values come from cmd/<service>/config.yml, then a .env file, then the
// process environment. Environment keys map onto nested keys, so
// SERVER_PORT overrides server.port.
//
//	var cfg Config
//	err := config.LoadConfig("audioscribe", &cfg)
package config
