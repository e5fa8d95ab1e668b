package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"petmanager/internal/buildinfo"
	"petmanager/internal/cli"
	"petmanager/internal/config"
	"petmanager/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
