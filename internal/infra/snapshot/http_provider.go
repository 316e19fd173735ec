// Package snapshot reads mobile network state from the network emulator.
package snapshot

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"exposure/config"
	"exposure/internal/domain/entity"
	"exposure/internal/domain/service"
	"exposure/internal/errors"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"
)

const (
	usersPath          = "/mobile_network/users"
	connectedUsersPath = "/mobile_network/connected_users"
)

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type userDTO struct {
	ID       entity.UserID `json:"id"`
	Position *point        `json:"position"`
}

type sessionDTO struct {
	User userDTO         `json:"user"`
	IP   string          `json:"ip"`
	Ran  json.RawMessage `json:"ran"`
}

type httpProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewHTTPProvider creates a SnapshotProvider polling the emulator at snapshot.baseUrl.
func NewHTTPProvider(cfg *config.Config, logger *slog.Logger) (service.SnapshotProvider, error) {
	if cfg.Snapshot.BaseURL == "" {
		return nil, errors.New("snapshot base URL is required")
	}

	return newHTTPProvider(cfg.Snapshot.BaseURL, &http.Client{Timeout: cfg.Snapshot.Timeout}, logger), nil
}

func newHTTPProvider(baseURL string, client *http.Client, logger *slog.Logger) *httpProvider {
	return &httpProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		logger:     logger,
		now:        time.Now,
	}
}

// Snapshot fetches users and PDN sessions concurrently and merges them into
// one view stamped with the time the fetch started.
func (p *httpProvider) Snapshot(ctx context.Context) (*entity.Snapshot, error) {
	ts := p.now()

	var (
		users    []userDTO
		sessions []sessionDTO
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.getJSON(gctx, usersPath, &users)
	})
	g.Go(func() error {
		return p.getJSON(gctx, connectedUsersPath, &sessions)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &entity.Snapshot{
		Timestamp:   ts,
		Positions:   make(map[entity.UserID]entity.UserPosition, len(users)),
		Connections: make(map[entity.UserID]entity.Connection, len(sessions)),
	}

	for _, u := range users {
		if u.Position == nil {
			continue
		}
		snapshot.Positions[u.ID] = entity.UserPosition{Position: orb.Point{u.Position.X, u.Position.Y}}
	}

	for _, s := range sessions {
		pos, present := snapshot.Positions[s.User.ID]
		if !present && s.User.Position != nil {
			pos.Position = orb.Point{s.User.Position.X, s.User.Position.Y}
		}
		pos.CellID = ranID(s.Ran)
		snapshot.Positions[s.User.ID] = pos

		snapshot.Connections[s.User.ID] = entity.Connection{
			State:    entity.ConnectionCreated,
			IPv4Addr: s.IP,
		}
	}

	p.logger.Debug("[Snapshot] Fetched network state",
		slog.Int("users", len(snapshot.Positions)),
		slog.Int("connected", len(snapshot.Connections)),
	)

	return snapshot, nil
}

func (p *httpProvider) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("GET %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}

	return nil
}

// ranID accepts the RAN either as a bare id or as an object with an id field.
func ranID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		ID json.Number `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.ID != "" {
		return obj.ID.String()
	}

	return strconv.Quote(string(raw))
}
