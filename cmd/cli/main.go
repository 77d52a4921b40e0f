package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fusion-condo/fusion/internal/buildinfo"
	"github.com/fusion-condo/fusion/internal/client/cli"
	"github.com/fusion-condo/fusion/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
