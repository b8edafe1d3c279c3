package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/homeboard/internal/proto"
	"github.com/vovakirdan/homeboard/internal/store"
)

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestIndexRendersSnapshotInOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.store.Append(ctx, store.ListMessages, "first message"))
	require.NoError(t, env.store.Append(ctx, store.ListMessages, "second message"))
	require.NoError(t, env.store.Append(ctx, store.ListShopping, "oat milk"))
	require.NoError(t, env.store.Append(ctx, store.ListTasks, "take out trash"))
	require.NoError(t, env.store.Append(ctx, store.ListImages, "beach.jpg"))
	require.NoError(t, env.store.Append(ctx, store.ListMessages, "<script>alert(1)</script>"))

	rec := env.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "oat milk")
	assert.Contains(t, body, "take out trash")
	assert.Contains(t, body, `src="/uploads/beach.jpg"`)
	assert.Less(t, strings.Index(body, "first message"), strings.Index(body, "second message"))
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestSnapshotAPI(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.store.Append(ctx, store.ListShopping, "eggs"))
	require.NoError(t, env.store.Append(ctx, store.ListShopping, "eggs"))

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/snapshot", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var snap proto.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, []string{"eggs", "eggs"}, snap.ShoppingList)
	assert.Empty(t, snap.Messages)
	assert.Empty(t, snap.Tasks)
	assert.Empty(t, snap.Images)
}

func TestAssetsServed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "WebSocket")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "homeboard_connected_clients")
}
