package transport

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/coder/websocket"
)

// Dial connects to addr. ws:// and wss:// URLs are dialed as websockets,
// anything else as a TCP host:port. ctx bounds the lifetime of a websocket
// connection, not only the dial.
func Dial(ctx context.Context, addr string) (net.Conn, error) {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		c, _, err := websocket.Dial(ctx, addr, nil)
		if err != nil {
			return nil, fmt.Errorf("websocket.Dial %q: %w", addr, err)
		}
		return websocket.NetConn(ctx, c, websocket.MessageBinary), nil
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.Dial %q: %w", addr, err)
	}
	return conn, nil
}
