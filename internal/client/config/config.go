package config

import "time"

// Config holds runtime settings for the Sense & Say CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the document server.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DBPath: SQLite file holding the Local Store and the saved session.
//   - RemoteTimeout: upper bound for a single remote call.
//   - LogLevel: slog level name; logs go to stderr.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DBPath              string
	RemoteTimeout       time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DBPath = "senseandsay.db"
	c.RemoteTimeout = 10 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
