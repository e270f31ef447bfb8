package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/senseandsay/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Only the flags
// listed in the package doc are looked at; everything else is ignored.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-d", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	remoteTimeout := fs.Int("t", int(cfg.RemoteTimeout.Seconds()), "remote call timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RemoteTimeout = time.Duration(*remoteTimeout) * time.Second
}
