package listener

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-mudcore/internal/game"
	"github.com/pixil98/go-testutil"
)

func dialWebsocket(t *testing.T, srv *httptest.Server, name string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + WebsocketPath + "?name=" + name
	return websocket.DefaultDialer.Dial(url, nil)
}

func TestWebsocketListener_Session(t *testing.T) {
	w := newFakeWorld()
	l := NewWebsocketListener(0, NewConnectionManager(w))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := httptest.NewServer(l.Handler(ctx))
	defer srv.Close()

	conn, _, err := dialWebsocket(t, srv, "Ann")
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	defer conn.Close()

	waitFor(t, "sink", func() bool { return w.sink(1) != nil })

	if err := conn.WriteMessage(websocket.TextMessage, []byte("say hello")); err != nil {
		t.Fatalf("writing: %v", err)
	}
	waitFor(t, "command", func() bool { return len(w.commands()) == 1 })
	testutil.AssertEqual(t, "command", w.commands()[0], "say hello")

	err = w.sink(1).Send(game.Payload{
		Lines: []game.Line{game.NewSpan("Hi").WithColor(game.ColorYellow).Line()},
		Room:  &game.RoomSnapshot{Self: game.Occupant{Name: "Ann", Hp: 5, MaxHp: 10}},
	})
	if err != nil {
		t.Fatalf("sending: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	var got struct {
		Lines []struct {
			Spans []struct {
				Text  string `json:"text"`
				Color string `json:"color"`
			} `json:"spans"`
		} `json:"lines"`
		Room struct {
			Self struct {
				Name  string `json:"name"`
				Hp    int    `json:"hp"`
				MaxHp int    `json:"maxHp"`
			} `json:"self"`
		} `json:"room"`
	}
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("decoding %s: %v", msg, err)
	}
	testutil.AssertEqual(t, "text", got.Lines[0].Spans[0].Text, "Hi")
	testutil.AssertEqual(t, "color", got.Lines[0].Spans[0].Color, game.ColorYellow)
	testutil.AssertEqual(t, "hp", got.Room.Self.Hp, 5)
	testutil.AssertEqual(t, "max hp", got.Room.Self.MaxHp, 10)

	conn.Close()
	waitFor(t, "disconnect", func() bool { return w.disconnected(1) })
}

func TestWebsocketListener_BadName(t *testing.T) {
	w := newFakeWorld()
	l := NewWebsocketListener(0, NewConnectionManager(w))

	srv := httptest.NewServer(l.Handler(context.Background()))
	defer srv.Close()

	_, resp, err := dialWebsocket(t, srv, "")
	if err == nil {
		t.Fatal("expected handshake failure")
	}
	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusBadRequest)
	testutil.AssertEqual(t, "submitted", len(w.events), 0)
}
