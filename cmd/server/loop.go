package main

import (
	"os"
	"time"

	"gridsim/internal/engine"
)

// runTicks крутит тики, пока игра не остановится, не кончится лимит maxTicks (0 - без лимита)
// или не придёт сигнал. interval > 0 - пауза между тиками для зрителей, 0 - без пауз.
// Возвращает число тиков и сигнал, если прогон прерван.
func runTicks(game *engine.Game, maxTicks int, interval time.Duration, stop <-chan os.Signal) (int, os.Signal) {
	var pace <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		pace = ticker.C
	}

	n := 0
	for game.State() == engine.StateRunning && (maxTicks <= 0 || n < maxTicks) {
		if pace == nil {
			select {
			case sig := <-stop:
				return n, sig
			default:
			}
		} else {
			select {
			case sig := <-stop:
				return n, sig
			case <-pace:
			}
		}

		game.Tick()
		n++
	}
	return n, nil
}
