package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"bigtwo/internal/config"
	"bigtwo/internal/engine"
	"bigtwo/internal/logging"
	"bigtwo/internal/ports/natsdist"
)

var Version string = "unknown"
var GitCommit string = "unknown"

var (
	configPath string
	natsURL    string
	logLevel   string
)

func main() {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Println("version:", Version)
		fmt.Println("git commit:", GitCommit)
	}

	app := cli.NewApp()
	app.Name = "bigtwo-server"
	app.Version = Version
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Destination: &configPath,
		}, &cli.StringFlag{
			Name:        "nats",
			Destination: &natsURL,
		}, &cli.StringFlag{
			Name:        "log-level",
			Destination: &logLevel,
		},
	}

	app.Action = realMain

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain(c *cli.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if natsURL != "" {
		cfg.NATSURL = natsURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFile)

	nc, err := natsdist.Connect(cfg.NATSURL)
	if err != nil {
		return fmt.Errorf("connect nats: %w", err)
	}
	defer nc.Close()

	svc := engine.NewService(
		engine.WithLogger(logger),
		engine.WithDistributor(natsdist.NewDistributor(nc, logger)),
		engine.WithAutoPassDuration(time.Duration(cfg.Game.AutoPassSeconds)*time.Second),
		engine.WithGameOverThreshold(cfg.Game.GameOverThreshold),
	)

	if err := natsdist.Serve(nc, svc, logger); err != nil {
		return fmt.Errorf("subscribe commands: %w", err)
	}
	logger.WithField("nats", cfg.NATSURL).Info("bigtwo server ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Infof("recv signal: %v, shutting down", sig)
	return nil
}
