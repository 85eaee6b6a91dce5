package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"gridsim/pkg/api"
	"gridsim/pkg/logger"
)

// ErrStopped возвращает TickHandler, когда больше не хочет получать тики.
var ErrStopped = errors.New("spectator stopped")

// TickHandler вызывается на каждый полученный TICK.
type TickHandler func(msg api.TickMessage) error

// Spectator - внешний клиент, который подключается к серверу так же,
// как и любой зритель через WebSocket, и только читает поток тиков.
//
// Жизненный цикл:
//  1. NewSpectator -> адрес ws-эндпоинта.
//  2. Watch -> подключение и цикл чтения до STOPPED, закрытия или отмены ctx.
type Spectator struct {
	URL    string
	Dialer *websocket.Dialer

	log *logrus.Entry
}

func NewSpectator(url string) *Spectator {
	return &Spectator{
		URL:    url,
		Dialer: websocket.DefaultDialer,
		log:    logger.Component("spectator_client").WithField("url", url),
	}
}

// Watch читает тики, пока игра не остановится.
// Возвращает nil после сообщения со state=STOPPED или штатного закрытия сервером.
func (s *Spectator) Watch(ctx context.Context, handle TickHandler) error {
	conn, _, err := s.Dialer.DialContext(ctx, s.URL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.URL, err)
	}
	defer conn.Close()

	// ReadJSON не знает про ctx: закрываем соединение при отмене
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	s.log.Info("Watching simulation")

	for {
		var msg api.TickMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived, websocket.CloseGoingAway) {
				s.log.Info("Server closed the stream")
				return nil
			}
			return fmt.Errorf("read tick: %w", err)
		}

		if msg.Type != api.MessageTypeTick {
			s.log.WithField("type", msg.Type).Debug("skipping unknown message")
			continue
		}

		if err := handle(msg); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}

		if msg.State == api.GameStateStopped {
			s.log.WithFields(logrus.Fields{
				"tick":      msg.Tick,
				"survivors": len(msg.Entities),
			}).Info("Simulation finished")
			return nil
		}
	}
}
