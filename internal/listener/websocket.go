package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	WebsocketPath = "/api/ws"

	wsWriteTimeout = 5 * time.Second
)

// WebsocketListener serves browser clients. Each text frame is one command and each
// payload is sent back as a JSON text frame.
type WebsocketListener struct {
	port     uint16
	cm       *ConnectionManager
	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, cm *ConnectionManager) *WebsocketListener {
	return &WebsocketListener{
		port: port,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	connCtx, cancelConns := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelConns()

	srv := &http.Server{
		Handler:     l.Handler(connCtx),
		BaseContext: func(net.Listener) context.Context { return connCtx },
	}

	go func() {
		<-ctx.Done()
		cancelConns()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.InfoContext(ctx, "listening for websocket", "port", l.port, "path", WebsocketPath)

	err = srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serving websocket on port %d: %w", l.port, err)
}

// Handler routes WebsocketPath. Sessions end when ctx is cancelled.
func (l *WebsocketListener) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(WebsocketPath, func(rw http.ResponseWriter, r *http.Request) {
		l.serve(ctx, rw, r)
	})
	return mux
}

func (l *WebsocketListener) serve(ctx context.Context, rw http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := ValidateName(name); err != nil {
		http.Error(rw, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := l.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "upgrading websocket", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	s, err := l.cm.Open(ctx, name)
	if err != nil {
		slog.WarnContext(ctx, "opening websocket session", "name", name, "error", err)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "connection rejected"),
			time.Now().Add(time.Second))
		return
	}
	defer s.Close(ctx)

	sessCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Writer goroutine.
	go func() {
		defer cancel()
		for {
			select {
			case <-sessCtx.Done():
				return
			case p := <-s.Payloads():
				if err := writeJSON(conn, p); err != nil {
					slog.WarnContext(sessCtx, "writing websocket frame", "session", s.Id, "error", err)
					return
				}
			}
		}
	}()

	// Unblock the reader on shutdown.
	go func() {
		<-sessCtx.Done()
		conn.Close()
	}()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		if err := s.Command(sessCtx, string(msg)); err != nil {
			return
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}
