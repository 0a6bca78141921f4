package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/user/ytharvest-go/internal/config"
	"github.com/user/ytharvest-go/internal/ingest"
	"github.com/user/ytharvest-go/internal/model"
	"github.com/user/ytharvest-go/internal/store"
	"github.com/user/ytharvest-go/internal/youtube"
)

// stubStore is an in-memory Store for handler tests. Only the paths the
// channel stage touches are live; the rest return nil.
type stubStore struct {
	channels map[string]bool
	pingErr  error
}

func newStubStore() *stubStore {
	return &stubStore{channels: map[string]bool{}}
}

func (s *stubStore) InsertChannel(_ context.Context, c *model.Channel) error {
	s.channels[c.ChannelID] = true
	return nil
}

func (s *stubStore) InsertPlaylist(context.Context, *model.Playlist) error { return nil }
func (s *stubStore) InsertVideo(context.Context, *model.Video) error       { return nil }
func (s *stubStore) InsertComment(context.Context, *model.Comment) error   { return nil }

func (s *stubStore) Exists(_ context.Context, entity store.Entity, id string) (bool, error) {
	if entity == store.EntityChannel {
		return s.channels[id], nil
	}
	return false, nil
}

func (s *stubStore) CountVideos(context.Context) (int64, error) { return 42, nil }
func (s *stubStore) Ping(context.Context) error                 { return s.pingErr }
func (s *stubStore) Close() error                               { return nil }

// stubAPI serves one canned channel and nothing else.
type stubAPI struct {
	channelID string
}

func (a *stubAPI) GetChannel(_ context.Context, channelID string) (*youtube.Channel, error) {
	if channelID != a.channelID {
		return nil, youtube.ErrNotFound
	}
	return &youtube.Channel{
		ID:      channelID,
		Snippet: youtube.ChannelSnippet{Title: "Test Channel"},
	}, nil
}

func (a *stubAPI) UploadsPlaylistID(context.Context, string) (string, error) {
	return "", youtube.ErrNotFound
}

func (a *stubAPI) ListPlaylists(context.Context, string) ([]youtube.Playlist, error) {
	return nil, &youtube.TransportError{StatusCode: http.StatusBadGateway}
}

func (a *stubAPI) ListPlaylistItems(context.Context, string) ([]youtube.PlaylistItem, error) {
	return nil, nil
}

func (a *stubAPI) GetVideos(context.Context, []string) ([]youtube.Video, error) {
	return nil, nil
}

func (a *stubAPI) ListCommentThreads(context.Context, string, int) ([]youtube.CommentThread, error) {
	return nil, nil
}

func newTestServer() (*Server, *stubStore) {
	st := newStubStore()
	svc := ingest.NewService(st, &stubAPI{channelID: "UC123"}, &config.IngestConfig{CommentsPerVideo: 600})
	return NewServer(st, svc), st
}

func doRequest(t *testing.T, srv *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func TestIngestChannelEndpoint(t *testing.T) {
	srv, st := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/ingest/channel?channel_id=UC123")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var out ingest.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding outcome: %v", err)
	}
	if out.Stage != ingest.StageChannel || out.Inserted != 1 {
		t.Errorf("outcome = %+v, want stage %q with 1 insert", out, ingest.StageChannel)
	}
	if !st.channels["UC123"] {
		t.Error("channel was not persisted")
	}
}

func TestIngestChannelConflict(t *testing.T) {
	srv, st := newTestServer()
	st.channels["UC123"] = true

	rec := doRequest(t, srv, http.MethodPost, "/ingest/channel?channel_id=UC123")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}

	var out ingest.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding outcome: %v", err)
	}
	if out.Skipped != 1 {
		t.Errorf("outcome = %+v, want 1 skip", out)
	}
}

func TestIngestChannelNotFound(t *testing.T) {
	srv, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/ingest/channel?channel_id=UC999")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestIngestTransportFailureIsBadGateway(t *testing.T) {
	srv, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/ingest/playlists?channel_id=UC123")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestIngestRequiresPost(t *testing.T) {
	srv, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/ingest/channel?channel_id=UC123")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestIngestRequiresChannelID(t *testing.T) {
	srv, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/ingest/channel")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var health HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decoding health: %v", err)
	}
	if health.Status != "healthy" || health.Database != "healthy" {
		t.Errorf("health = %+v, want healthy", health)
	}
}

func TestHealthEndpointUnhealthyDB(t *testing.T) {
	srv, st := newTestServer()
	st.pingErr = context.DeadlineExceeded

	rec := doRequest(t, srv, http.MethodGet, "/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
