package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/senseandsay/internal/flagx"
	"github.com/dmitrijs2005/senseandsay/internal/timex"
)

// JsonConfig is the on-disk shape of the client configuration file.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	DBPath              string         `json:"db_path"`
	RemoteTimeout       timex.Duration `json:"remote_timeout"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays cfg with the fields present in the file named by
// -c/-config. It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.RemoteTimeout.Duration > 0 {
		cfg.RemoteTimeout = jc.RemoteTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
