package snapshot

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"exposure/config"
	"exposure/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emulator(t *testing.T, users, connected string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+usersPath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, users)
	})
	mux.HandleFunc("GET "+connectedUsersPath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, connected)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func newTestProvider(baseURL string) *httpProvider {
	return newHTTPProvider(baseURL, &http.Client{Timeout: time.Second}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHTTPProvider_Snapshot(t *testing.T) {
	server := emulator(t,
		`[{"id":1,"position":{"x":1.5,"y":-2}},{"id":2,"position":{"x":0,"y":0}},{"id":3,"position":null}]`,
		`[{"user":{"id":2,"position":{"x":0,"y":0}},"ip":"10.0.0.2","ran":7}]`,
	)
	provider := newTestProvider(server.URL + "/")
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	provider.now = func() time.Time { return fixed }

	snap, err := provider.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixed, snap.Timestamp)

	require.Len(t, snap.CurrentPositions(), 2)
	pos, ok := snap.Position("1")
	require.True(t, ok)
	assert.Equal(t, orb.Point{1.5, -2}, pos.Position)

	conn, known := snap.ConnectionState("2")
	require.True(t, known)
	assert.Equal(t, entity.ConnectionCreated, conn.State)
	assert.Equal(t, "10.0.0.2", conn.IPv4Addr)
	pos2, _ := snap.Position("2")
	assert.Equal(t, "7", pos2.CellID)

	conn, known = snap.ConnectionState("1")
	require.True(t, known)
	assert.Equal(t, entity.ConnectionReleased, conn.State)

	_, known = snap.ConnectionState("3")
	assert.False(t, known)
}

func TestHTTPProvider_UpstreamFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+usersPath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})
	mux.HandleFunc("GET "+connectedUsersPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := newTestProvider(server.URL).Snapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPProvider_MalformedBody(t *testing.T) {
	server := emulator(t, `{"not":"a list"}`, `[]`)

	_, err := newTestProvider(server.URL).Snapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestNewHTTPProvider_RequiresBaseURL(t *testing.T) {
	_, err := NewHTTPProvider(&config.Config{}, slog.Default())
	assert.Error(t, err)
}

func TestRanID(t *testing.T) {
	assert.Equal(t, "", ranID(nil))
	assert.Equal(t, "", ranID(json.RawMessage(`null`)))
	assert.Equal(t, "4", ranID(json.RawMessage(`4`)))
	assert.Equal(t, "cell-a", ranID(json.RawMessage(`"cell-a"`)))
	assert.Equal(t, "9", ranID(json.RawMessage(`{"id":9,"radius":100}`)))
}
