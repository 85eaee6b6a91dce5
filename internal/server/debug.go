package server

import (
	"encoding/json"
	"net/http"

	"gridsim/internal/network"
)

// DebugHandler предоставляет доступ к последнему состоянию симуляции
type DebugHandler struct {
	Hub *network.Broadcaster
}

func NewDebugHandler(hub *network.Broadcaster) *DebugHandler {
	return &DebugHandler{Hub: hub}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/state", h.handleState)
	mux.HandleFunc("/debug/spectators", h.handleSpectators)
}

// /debug/state - последнее сообщение TICK целиком (карта, эффекты, выжившие)
func (h *DebugHandler) handleState(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.Hub.Latest()
	if !ok {
		http.Error(w, "no ticks yet", http.StatusNotFound)
		return
	}
	writeJSON(w, msg)
}

// /debug/spectators - количество подключённых зрителей
func (h *DebugHandler) handleSpectators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"spectators": h.Hub.SubscriberCount()})
}

func writeJSON(w http.ResponseWriter, data any) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
