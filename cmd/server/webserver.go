package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/marben/powmandel/internal/transport"
)

// webServer creates server serving files in the static folder,
// initializes websocket endpoint and returns net.Listener accepting websocket connections
func webServer(ctx context.Context, port int, static string, origins []string) (*transport.WebsocketListener, *http.Server) {
	l := transport.NewWSListener(ctx, fmt.Sprintf(":%d/ws", port))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           newMux(l, static, origins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://localhost:%d", port)
	return l, srv
}

// newMux routes /ws to l. Browsers are held to the same origin unless
// origins lists further host patterns.
func newMux(l *transport.WebsocketListener, static string, origins []string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", l.Handler(&websocket.AcceptOptions{OriginPatterns: origins}))
	mux.Handle("/", http.FileServer(http.Dir(static)))
	return mux
}
