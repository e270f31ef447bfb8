package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/senseandsay/internal/buildinfo"
	"github.com/dmitrijs2005/senseandsay/internal/server"
	"github.com/dmitrijs2005/senseandsay/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		os.Exit(1)
	}
}
