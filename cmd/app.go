package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/libreninja/server/config"
	"github.com/libreninja/server/hub"
	"github.com/libreninja/server/registry"
	httpServer "github.com/libreninja/server/server/http"
	websocketServer "github.com/libreninja/server/server/websocket"
	"github.com/libreninja/server/service"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	fs := pflag.NewFlagSet("main", pflag.ContinueOnError)

	var (
		configPath = fs.StringP("config", "c", "", "path to yaml config file")
		logLevel   = fs.StringP("log-level", "l", "", "log level (overrides config)")
	)
	if err := fs.Parse(os.Args[1:]); err != nil {
		logger.Fatal().Err(err).Msg("failed to parse command line arguments")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse loglevel")
	}
	logger = logger.Level(lvl)

	h := hub.New(&logger)
	svc := service.NewService(service.Config{
		Hub:             h,
		Participants:    registry.NewParticipants(&logger),
		Rooms:           registry.NewRooms(&logger),
		Seeds:           registry.NewSeeds(),
		AllowVersionCmd: cfg.AllowVersionCmd,
		Logger:          &logger,
	})
	apiSrv := httpServer.NewServer(httpServer.Config{
		Logger:      &logger,
		RoomService: svc,
		ListenAddr:  cfg.APIListenAddr,
	})
	wsSrv := websocketServer.NewServer(websocketServer.Config{
		Logger:     &logger,
		Service:    svc,
		Registry:   h,
		ListenAddr: cfg.WSListenAddr,
		Path:       cfg.WSPath,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		wg   = &sync.WaitGroup{}
		errc = make(chan error, 2)
	)
	wg.Add(2)
	go apiSrv.Run(ctx, wg, errc)
	go wsSrv.Run(ctx, wg, errc)

	select {
	case err = <-errc:
		logger.Error().Err(err).Msg("unexpected server error, shutting down")
	case <-ctx.Done():
		logger.Warn().Msg("interrupted")
	}
	cancel()
	wg.Wait()
}
