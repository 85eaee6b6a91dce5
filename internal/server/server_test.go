package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"gridsim/internal/network"
	"gridsim/pkg/api"
	"gridsim/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (*network.Broadcaster, *httptest.Server) {
	t.Helper()
	hub := network.NewBroadcaster()
	ts := httptest.NewServer(New(hub, "").Handler())
	t.Cleanup(ts.Close)
	return hub, ts
}

func waitForSubscribers(t *testing.T, hub *network.Broadcaster, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("SubscriberCount() = %d, want %d", hub.SubscriberCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestServer_SpectatorReceivesTicks(t *testing.T) {
	hub, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	waitForSubscribers(t, hub, 1)

	target := 1
	hub.Publish(api.TickMessage{
		Type:  api.MessageTypeTick,
		Tick:  1,
		State: api.GameStateRunning,
		Effects: []api.EffectView{
			{Kind: api.EffectKindAttack, Source: 0, Target: &target, Strength: 0.25},
		},
		Entities: []api.EntityView{},
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg api.TickMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if msg.Tick != 1 || len(msg.Effects) != 1 || *msg.Effects[0].Target != 1 {
		t.Errorf("got %+v", msg)
	}

	// Закрытие со стороны клиента снимает подписку
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	waitForSubscribers(t, hub, 0)
}

func TestServer_HubCloseEndsStream(t *testing.T) {
	hub, ts := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	waitForSubscribers(t, hub, 1)
	hub.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNoStatusReceived, websocket.CloseNormalClosure) {
		t.Errorf("expected close frame, got %v", err)
	}
}

func TestServer_HTTPEndpoints(t *testing.T) {
	hub, ts := newTestServer(t)

	get := func(path string) (int, string) {
		t.Helper()
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body)
	}

	if code, body := get("/health"); code != http.StatusOK || body != "ok" {
		t.Errorf("/health = %d %q", code, body)
	}
	if code, _ := get("/debug/state"); code != http.StatusNotFound {
		t.Errorf("/debug/state before first tick = %d, want 404", code)
	}

	hub.Publish(api.TickMessage{Type: api.MessageTypeTick, Tick: 7, State: api.GameStateStopped})

	code, body := get("/debug/state")
	if code != http.StatusOK {
		t.Fatalf("/debug/state = %d", code)
	}
	var state api.TickMessage
	if err := json.Unmarshal([]byte(body), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Tick != 7 || state.State != api.GameStateStopped {
		t.Errorf("state = %+v", state)
	}

	if code, body := get("/debug/spectators"); code != http.StatusOK || !strings.Contains(body, `"spectators":0`) {
		t.Errorf("/debug/spectators = %d %q", code, body)
	}
	if code, body := get("/version"); code != http.StatusOK || !strings.Contains(body, "go_version") {
		t.Errorf("/version = %d %q", code, body)
	}
}
