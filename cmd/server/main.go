package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"gridsim/internal/engine"
	"gridsim/internal/network"
	"gridsim/internal/server"
	"gridsim/internal/version"
	"gridsim/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		seed       int64
		configPath string
		listen     string
	)
	// Читаем флаг -seed. По умолчанию 0 (значит взять из конфига или случайный).
	flag.Int64Var(&seed, "seed", 0, "World seed (0 keeps config/random seed)")
	flag.StringVar(&configPath, "config", "", "Path to YAML config")
	flag.StringVar(&listen, "listen", "", "Spectator server address, e.g. :8080 (empty - no server)")
	flag.Parse()

	logger.Log.Info("Starting gridsim...")
	logger.Log.Info(version.String())

	cfg := engine.NewConfig()
	if configPath != "" {
		var err error
		if cfg, err = engine.LoadConfig(configPath); err != nil {
			logger.Log.WithError(err).Fatal("Failed to load config")
		}
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if listen == "" {
		listen = os.Getenv("GRIDSIM_LISTEN")
	}

	logger.Log.WithFields(logrus.Fields{
		"seed":     cfg.Seed,
		"map_size": cfg.MapSize,
		"workers":  cfg.Workers,
		"layout":   len(cfg.Layout) > 0,
	}).Info("Config loaded")

	// 2. Мир и игра. Наблюдатель нужен только зрителям.
	var (
		hub  *network.Broadcaster
		opts []engine.Option
	)
	if listen != "" {
		hub = network.NewBroadcaster()
		opts = append(opts, engine.WithObserver(func(r engine.TickReport) {
			hub.Publish(r.Message())
		}))
	}

	game, err := engine.NewGameFromConfig(cfg, opts...)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build world")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Без зрителей - прогон до конца без пауз
	if listen == "" {
		ticks, sig := runTicks(game, cfg.MaxTicks, 0, stop)
		logOutcome(game, ticks, sig)
		return
	}

	srv := server.New(hub, listen)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.WithError(err).Fatal("Server start error")
		}
	}()

	interval := cfg.TickInterval()
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticks, sig := runTicks(game, cfg.MaxTicks, interval, stop)
	logOutcome(game, ticks, sig)

	// Сервер остаётся жить, чтобы можно было забрать /debug/state
	if sig == nil {
		sig = <-stop
	}
	logger.Log.WithField("signal", sig.String()).Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Warn("Server shutdown error")
	}

	logger.Log.Info("Done.")
}

func logOutcome(game *engine.Game, ticks int, interrupted os.Signal) {
	for i, e := range game.Entities() {
		logger.Log.WithFields(logrus.Fields{
			"index":  i,
			"kind":   e.Kind().String(),
			"pos":    e.Pos,
			"health": e.Health,
		}).Info("Survivor")
	}

	entry := logger.Log.WithFields(logrus.Fields{
		"ticks":     ticks,
		"survivors": game.EntityCount(),
		"state":     game.State().String(),
	})
	if interrupted != nil {
		entry.WithField("signal", interrupted.String()).Warn("Simulation interrupted")
		return
	}
	entry.Info("Game over")
}
