package http

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/vovakirdan/homeboard/internal/config"
	"github.com/vovakirdan/homeboard/internal/core"
	"github.com/vovakirdan/homeboard/internal/log"
	"github.com/vovakirdan/homeboard/internal/proto"
	"github.com/vovakirdan/homeboard/internal/store"
	"github.com/vovakirdan/homeboard/internal/store/memory"
	"github.com/vovakirdan/homeboard/internal/uploads"
)

type testEnv struct {
	hub    *core.Hub
	store  store.Store
	dir    *uploads.Dir
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir, err := uploads.New(t.TempDir())
	if err != nil {
		t.Fatalf("upload dir: %v", err)
	}

	st := memory.New()
	hub := core.NewHub(st, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.Done()
	})

	cfg := config.Default()
	cfg.Addr = ":0"

	return &testEnv{
		hub:    hub,
		store:  st,
		dir:    dir,
		router: NewHandler(hub, st, dir, &cfg, log.Nop()),
	}
}

func (e *testEnv) serve(t *testing.T) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(e.router)
	t.Cleanup(ts.Close)
	return ts
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) snapshot(t *testing.T) store.Snapshot {
	t.Helper()

	snap, err := e.store.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return snap
}

// waitList polls until list l holds at least n entries or the deadline passes.
func (e *testEnv) waitList(t *testing.T, l store.List, n int) []string {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := e.store.List(context.Background(), l)
		if err != nil {
			t.Fatalf("list %s: %v", l, err)
		}
		if len(got) >= n || time.Now().After(deadline) {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	} else if err := mw.WriteField("note", "no file here"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func assertRedirectHome(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

// dial opens a WebSocket and waits for the echo of a private task entry, which
// proves the connection is registered with the hub.
func dial(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })

	token := "sync-" + uuid.NewString()
	send(t, ctx, conn, proto.InboundTypeNewTask, map[string]string{"task": token})
	for {
		out := readEvent(t, ctx, conn, proto.EventTaskUpdate)
		if data, ok := out.Data.(map[string]any); ok && data["task"] == token {
			return conn
		}
	}
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string, data any) {
	t.Helper()

	frame := map[string]any{"type": typ}
	if data != nil {
		frame["data"] = data
	}
	if err := wsjson.Write(ctx, conn, frame); err != nil {
		t.Fatalf("send %s: %v", typ, err)
	}
}

// readEvent returns the next frame that is either the wanted event or an error frame.
func readEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) proto.Outbound {
	t.Helper()

	for {
		var out proto.Outbound
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			t.Fatalf("read %s: %v", event, err)
		}
		if out.Type == proto.OutboundTypeError || out.Event == event {
			return out
		}
	}
}
