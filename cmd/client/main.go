package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/senseandsay/internal/buildinfo"
	"github.com/dmitrijs2005/senseandsay/internal/client/cli"
	"github.com/dmitrijs2005/senseandsay/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
