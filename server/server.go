// Package server adapts the teacher's single-client websocket progress
// view (server/server.go + server/fastview in the teacher's tree) to stream
// scan-progress snapshots instead of reinforcement-learning value-function
// cells. It is purely observational: the orchestrator publishes Snapshots
// on a channel regardless of whether a browser is connected, and this
// server only forwards whatever it receives. Disabled unless the CLI is
// given a -view address; never on the scan's critical path.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"

	"github.com/xstupi00/line-of-sight/internal/orchestrator"
)

const (
	writeWait      = 1 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	closeGraceWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server serves a single index page and a single websocket stream of scan
// snapshots to whichever browser connects, same single-client scope as the
// teacher's prototype: "very little generalization... useful for solo
// development." Multiple concurrent viewers are not supported.
type Server struct {
	addr     string
	snapshot <-chan orchestrator.Snapshot
}

// New returns a Server that will stream snapshots as they arrive.
func New(addr string, snapshot <-chan orchestrator.Snapshot) *Server {
	return &Server{addr: addr, snapshot: snapshot}
}

// Serve blocks, running the HTTP/websocket server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	r := mux.NewRouter()
	r.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.serveWebsocket)

	httpServer := &http.Server{Addr: s.addr, Handler: r}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), closeGraceWait)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	}
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(indexHTML))
}

// serveWebsocket streams scan snapshots, fanned out from the orchestrator's
// single progress channel via channerics.Broadcast, to the connecting
// client until it disconnects or the request context is cancelled.
func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		log.Println("upgrade:", err)
		return
	}
	defer closeWebsocket(ws)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	pong := make(chan struct{})
	defer close(pong)
	ws.SetPongHandler(func(string) error {
		pong <- struct{}{}
		return nil
	})

	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	pinger := channerics.NewTicker(ctx.Done(), pingPeriod)
	lastPong := time.Now()

	fanned := channerics.Broadcast(ctx.Done(), asChan(ctx.Done(), s.snapshot), 1)[0]

	for {
		select {
		case <-ctx.Done():
			return
		case <-pinger:
			if time.Since(lastPong) > pingPeriod*2 {
				return
			}
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-pong:
			lastPong = time.Now()
		case snap, ok := <-fanned:
			if !ok {
				return
			}
			if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := ws.WriteJSON(snap); err != nil {
				return
			}
		}
	}
}

// asChan re-homes a receive-only orchestrator.Snapshot channel behind done,
// the shape channerics.Broadcast expects.
func asChan(done <-chan struct{}, in <-chan orchestrator.Snapshot) <-chan orchestrator.Snapshot {
	return channerics.OrDone(done, in)
}

func closeWebsocket(ws *websocket.Conn) {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	ws.Close()
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>line-of-sight</title></head>
<body>
<pre id="out">waiting for scan progress...</pre>
<script>
  const ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = function(event) {
    document.getElementById("out").textContent = event.data;
  };
</script>
</body>
</html>
`
