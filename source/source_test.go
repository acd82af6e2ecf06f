package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonedit/codec"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/value"
)

func TestOpenDispatch(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"-", "*source.Reader"},
		{"doc.json", "*source.File"},
		{"file:///tmp/doc.json", "*source.File"},
		{"https://example.com/doc.json", "*source.HTTP"},
		{"ws://localhost:9000/feed", "*source.WebSocket"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			src, err := Open(tt.ref, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, fmt.Sprintf("%T", src))
		})
	}

	_, err := Open("ftp://example.com/doc", Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	_, err = Open("", Options{})
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("b: 1\na: [x]\n"), 0644))

	v, err := NewFile(path, "").Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, v.(*value.Object).Keys())

	_, err = NewFile(filepath.Join(dir, "missing.json"), "").Fetch(context.Background())
	assert.True(t, errors.Is(err, errors.ErrCodeFetchFailure))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = NewFile(bad, "").Fetch(context.Background())
	assert.True(t, errors.Is(err, errors.ErrCodeFetchFailure))
	assert.True(t, errors.Is(err, errors.ErrCodeDecodeFailed))
}

func TestReaderSource(t *testing.T) {
	src := NewReader(strings.NewReader(`[1, {"a": null}]`), "stdin", "")
	v, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v.(*value.Array).Len())
	assert.Equal(t, "stdin", src.Describe())
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Token"))
		switch r.URL.Path {
		case "/doc":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"list":[1,"two",null]}`))
		case "/yaml":
			w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
			_, _ = w.Write([]byte("k: v\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	headers := map[string]string{"X-Token": "secret"}

	v, err := (&HTTP{URL: srv.URL + "/doc", Headers: headers}).Fetch(context.Background())
	require.NoError(t, err)
	list, _ := v.(*value.Object).Get("list")
	assert.Equal(t, []value.Value{1.0, "two", nil}, list.(*value.Array).Items())

	v, err = (&HTTP{URL: srv.URL + "/yaml", Headers: headers}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, v.(*value.Object).Keys())

	_, err = (&HTTP{URL: srv.URL + "/missing", Headers: headers}).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFetchFailure))
}

func TestHTTPSourceSizeLimit(t *testing.T) {
	body := `{"items":[1,2,3,4,5,6,7,8,9]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	_, err := (&HTTP{URL: srv.URL, MaxBytes: 10}).Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFetchFailure, errors.GetCode(err))
	assert.False(t, errors.Is(err, errors.ErrCodeDecodeFailed))
	assert.Contains(t, err.Error(), "larger than 10 bytes")

	v, err := (&HTTP{URL: srv.URL, MaxBytes: int64(len(body))}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"items"}, v.(*value.Object).Keys())
}

func TestHTTPSourceCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := (&HTTP{URL: srv.URL}).Fetch(ctx)
	assert.True(t, errors.Is(err, errors.ErrCodeFetchFailure))
}

func TestWebSocketSource(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"snapshot","items":[1,2]}`))
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	v, err := (&WebSocket{URL: url}).Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"event", "items"}, v.(*value.Object).Keys())

	_, err = (&WebSocket{URL: "ws://127.0.0.1:1/none"}).Fetch(ctx)
	assert.True(t, errors.Is(err, errors.ErrCodeFetchFailure))
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	obj := value.NewObject()
	obj.Set("b", 1.0)
	obj.Set("a", value.NewArray(true))

	sink := NewFileSink(path, "", 2)
	assert.Equal(t, codec.FormatJSON, sink.Format)
	require.NoError(t, sink.Write(context.Background(), obj))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    true\n  ]\n}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is cleaned up")
}
