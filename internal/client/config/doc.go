// Package config loads runtime configuration for the Sense & Say CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the document server
//	-i int      online status check interval (seconds)
//	-d string   path of the local SQLite database
//	-t int      remote call timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Intervals are timex.Duration values, so they can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "db_path": "senseandsay.db",
//	  "remote_timeout": "10s",
//	  "log_level": "warn"
//	}
package config
