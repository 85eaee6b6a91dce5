package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"gridsim/internal/agent"
	"gridsim/pkg/api"
	"gridsim/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	var (
		url     string
		showMap bool
	)
	flag.StringVar(&url, "url", "ws://localhost:8080/ws", "Spectator websocket endpoint")
	flag.BoolVar(&showMap, "map", false, "Print the map after every tick")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := agent.NewSpectator(url).Watch(ctx, func(msg api.TickMessage) error {
		logger.Log.WithFields(logrus.Fields{
			"tick":      msg.Tick,
			"effects":   len(msg.Effects),
			"reaped":    msg.Reaped,
			"survivors": len(msg.Entities),
			"state":     msg.State,
		}).Info("Tick")

		if showMap {
			os.Stdout.WriteString(strings.Join(msg.Map, "\n") + "\n\n")
		}
		return nil
	})
	if err != nil && ctx.Err() == nil {
		logger.Log.WithError(err).Fatal("Spectator failed")
	}
}
