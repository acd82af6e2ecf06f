package source

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/grovetools/jsonedit/codec"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/value"
)

// WebSocket reads the first message sent by a WebSocket endpoint and decodes
// it as JSON.
type WebSocket struct {
	URL     string
	Headers map[string]string
	Dialer  *websocket.Dialer
}

func (w *WebSocket) Describe() string { return w.URL }

func (w *WebSocket) Fetch(ctx context.Context) (value.Value, error) {
	dialer := w.Dialer
	if dialer == nil {
		dialer = &websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	}
	header := http.Header{}
	for k, v := range w.Headers {
		header.Set(k, v)
	}

	conn, resp, err := dialer.DialContext(ctx, w.URL, header)
	if err != nil {
		fe := errors.FetchFailure(w.URL, err)
		if resp != nil {
			fe = fe.WithDetail("status", resp.StatusCode)
		}
		return nil, fe
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}
	conn.SetReadLimit(maxBodyBytes)

	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, errors.FetchFailure(w.URL, err)
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	return decode(w.URL, codec.FormatJSON, data)
}
