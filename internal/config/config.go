package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func LoadConfig() {
	viper.SetConfigName("config")           // name of config file (without extension)
	viper.SetConfigType("yaml")             // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath("/etc/wsdlwizard/") // path to look for the config file in
	viper.AddConfigPath(".")                // optionally look for config in the working directory

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debug().Msg("Config file not found, using defaults")
		} else {
			log.Panic().Err(err).Msg("Fatal error reading config file")
		}
	}
	SetDefaultConfig()
}

func SetDefaultConfig() {
	viper.SetDefault("workspace.id", 1)

	// Logging
	viper.SetDefault("logging.console.level", "info")
	viper.SetDefault("logging.file.enabled", true)
	viper.SetDefault("logging.file.path", "wsdlwizard.log")

	// Database
	viper.SetDefault("db.sqlite.path", "wsdlwizard.db")
	viper.SetDefault("db.max_idle_conns", 5)
	viper.SetDefault("db.max_open_conns", 50)
	viper.SetDefault("db.conn_max_lifetime", "1h")

	// Storage
	viper.SetDefault("history.responses.ignored.max_size", 5*1024*1024)
	viper.SetDefault("history.responses.ignored.extensions", []string{".jpg", ".jpeg", ".webp", ".png", ".gif", ".ico", ".mp4", ".mov", ".avi"})
	viper.SetDefault("history.responses.ignored.content_types", []string{"video", "audio", "image"})

	// Navigation
	viper.SetDefault("navigation.user_agent", "")
	viper.SetDefault("navigation.proxy", "")
	viper.SetDefault("navigation.headers", map[string]string{})

	// WSDL discovery
	viper.SetDefault("wsdl.concurrency", 10)
	viper.SetDefault("wsdl.timeout", 10)
	viper.SetDefault("wsdl.message_limit", 1024)
	viper.SetDefault("wsdl.max_body_size", 2*1024*1024)
	viper.SetDefault("wsdl.require_ok", false)
	viper.SetDefault("wsdl.session", false)
	viper.SetDefault("wsdl.rate_limit.rps", 0)
	viper.SetDefault("wsdl.rate_limit.burst", 1)

	// Proxy
	viper.SetDefault("proxy.host", "localhost")
	viper.SetDefault("proxy.port", 8008)
	viper.SetDefault("proxy.ca.cert", "")
	viper.SetDefault("proxy.ca.key", "")
}
