// Package ingest sequences the four ingestion stages: channel, playlists,
// videos, comments. Stages are independent entry points; referential
// integrity requires running them in that order for a given channel, but
// each run is its own unit of work with per-row commits.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/user/ytharvest-go/internal/config"
	"github.com/user/ytharvest-go/internal/normalize"
	"github.com/user/ytharvest-go/internal/store"
	"github.com/user/ytharvest-go/internal/youtube"
)

// ErrAlreadyExists signals a channel re-ingestion attempt. It is an
// expected outcome, not a failure.
var ErrAlreadyExists = errors.New("channel already ingested")

// Stage names reported in outcomes.
const (
	StageChannel   = "channel"
	StagePlaylists = "playlists"
	StageVideos    = "videos"
	StageComments  = "comments"
)

// Outcome summarizes one stage run for the caller: how many rows were
// inserted, how many were skipped (already stored, or parent missing),
// and how many individually failed without aborting the stage.
type Outcome struct {
	Stage    string `json:"stage"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
	Reason   string `json:"reason,omitempty"`
}

// Service is the ingestion orchestrator. The API client and store are
// explicit dependencies; there is no process-wide shared handle.
type Service struct {
	store            store.Store
	api              youtube.API
	commentsPerVideo int
}

// NewService creates a new ingestion service.
func NewService(st store.Store, api youtube.API, cfg *config.IngestConfig) *Service {
	commentsPerVideo := 0
	if cfg != nil {
		commentsPerVideo = cfg.CommentsPerVideo
	}
	return &Service{
		store:            st,
		api:              api,
		commentsPerVideo: commentsPerVideo,
	}
}

// IngestChannel fetches and persists a single channel record. Re-ingesting
// a stored channel returns ErrAlreadyExists alongside an outcome saying so;
// a channel missing upstream surfaces youtube.ErrNotFound.
func (s *Service) IngestChannel(ctx context.Context, channelID string) (*Outcome, error) {
	out := &Outcome{Stage: StageChannel}

	exists, err := s.store.Exists(ctx, store.EntityChannel, channelID)
	if err != nil {
		return nil, fmt.Errorf("channel existence check failed: %w", err)
	}
	if exists {
		log.Info().Str("channelId", channelID).Msg("Channel already present, refusing re-ingestion")
		out.Skipped = 1
		out.Reason = "channel already present"
		return out, ErrAlreadyExists
	}

	ch, err := s.api.GetChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("channel fetch failed: %w", err)
	}

	if err := s.store.InsertChannel(ctx, mapChannel(ch)); err != nil {
		return nil, err
	}

	log.Info().Str("channelId", channelID).Msg("Channel ingested")
	out.Inserted = 1
	return out, nil
}

// IngestPlaylists drains all playlists owned by the channel and persists
// each one, skipping playlists already stored. A transport error during
// the walk aborts the stage; a constraint violation on one row does not.
func (s *Service) IngestPlaylists(ctx context.Context, channelID string) (*Outcome, error) {
	out := &Outcome{Stage: StagePlaylists}

	playlists, err := s.api.ListPlaylists(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("playlist walk failed: %w", err)
	}

	for i := range playlists {
		pl := &playlists[i]

		exists, err := s.store.Exists(ctx, store.EntityPlaylist, pl.ID)
		if err != nil {
			return nil, fmt.Errorf("playlist existence check failed: %w", err)
		}
		if exists {
			out.Skipped++
			continue
		}

		if err := s.insertRow(out, s.store.InsertPlaylist(ctx, mapPlaylist(pl))); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("channelId", channelID).
		Int("inserted", out.Inserted).
		Int("skipped", out.Skipped).
		Int("failed", out.Failed).
		Msg("Playlist stage completed")
	return out, nil
}

// IngestVideos walks every playlist of the channel, collects the video IDs
// from its items, batch-fetches the full video records, normalizes them and
// persists each under its owning playlist. Videos already stored are
// skipped; a malformed duration or timestamp skips that one video.
func (s *Service) IngestVideos(ctx context.Context, channelID string) (*Outcome, error) {
	out := &Outcome{Stage: StageVideos}

	playlists, err := s.api.ListPlaylists(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("playlist walk failed: %w", err)
	}

	for i := range playlists {
		pl := &playlists[i]

		items, err := s.api.ListPlaylistItems(ctx, pl.ID)
		if err != nil {
			return nil, fmt.Errorf("playlist item walk failed for %s: %w", pl.ID, err)
		}

		videoIDs := make([]string, 0, len(items))
		for _, item := range items {
			if id := item.VideoID(); id != "" {
				videoIDs = append(videoIDs, id)
			}
		}
		if len(videoIDs) == 0 {
			continue
		}

		videos, err := s.api.GetVideos(ctx, videoIDs)
		if err != nil {
			return nil, fmt.Errorf("video batch fetch failed for playlist %s: %w", pl.ID, err)
		}

		for j := range videos {
			v := &videos[j]

			exists, err := s.store.Exists(ctx, store.EntityVideo, v.ID)
			if err != nil {
				return nil, fmt.Errorf("video existence check failed: %w", err)
			}
			if exists {
				out.Skipped++
				continue
			}

			record, err := mapVideo(v, pl.ID)
			if err != nil {
				var fe *normalize.FormatError
				if errors.As(err, &fe) {
					log.Warn().Err(err).Str("videoId", v.ID).Msg("Skipping video with malformed field")
					out.Failed++
					continue
				}
				return nil, err
			}

			if err := s.insertRow(out, s.store.InsertVideo(ctx, record)); err != nil {
				return nil, err
			}
		}
	}

	log.Info().
		Str("channelId", channelID).
		Int("inserted", out.Inserted).
		Int("skipped", out.Skipped).
		Int("failed", out.Failed).
		Msg("Video stage completed")
	return out, nil
}

// IngestComments resolves the channel's uploads playlist, collects its
// video IDs, and for each video lists top-level comment threads up to the
// configured per-video cap. A comment whose parent video is not stored is
// skipped and reported, not an error; a video with comments disabled or
// gone upstream contributes zero comments.
func (s *Service) IngestComments(ctx context.Context, channelID string) (*Outcome, error) {
	out := &Outcome{Stage: StageComments}

	uploadsID, err := s.api.UploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("uploads playlist lookup failed: %w", err)
	}

	items, err := s.api.ListPlaylistItems(ctx, uploadsID)
	if err != nil {
		return nil, fmt.Errorf("uploads walk failed: %w", err)
	}

	for _, item := range items {
		videoID := item.VideoID()
		if videoID == "" {
			continue
		}

		threads, err := s.api.ListCommentThreads(ctx, videoID, s.commentsPerVideo)
		if err != nil {
			return nil, fmt.Errorf("comment walk failed for video %s: %w", videoID, err)
		}

		for i := range threads {
			record, err := mapComment(&threads[i])
			if err != nil {
				var fe *normalize.FormatError
				if errors.As(err, &fe) {
					log.Warn().Err(err).Str("videoId", videoID).Msg("Skipping comment with malformed field")
					out.Failed++
					continue
				}
				return nil, err
			}

			parentStored, err := s.store.Exists(ctx, store.EntityVideo, record.VideoID)
			if err != nil {
				return nil, fmt.Errorf("video existence check failed: %w", err)
			}
			if !parentStored {
				log.Warn().
					Str("commentId", record.CommentID).
					Str("videoId", record.VideoID).
					Msg("Skipping comment: parent video not stored")
				out.Skipped++
				continue
			}

			exists, err := s.store.Exists(ctx, store.EntityComment, record.CommentID)
			if err != nil {
				return nil, fmt.Errorf("comment existence check failed: %w", err)
			}
			if exists {
				out.Skipped++
				continue
			}

			if err := s.insertRow(out, s.store.InsertComment(ctx, record)); err != nil {
				return nil, err
			}
		}
	}

	log.Info().
		Str("channelId", channelID).
		Int("inserted", out.Inserted).
		Int("skipped", out.Skipped).
		Int("failed", out.Failed).
		Msg("Comment stage completed")
	return out, nil
}

// insertRow folds one insert result into the outcome: a constraint
// violation counts as a per-row failure and the stage continues, anything
// else aborts the stage.
func (s *Service) insertRow(out *Outcome, err error) error {
	if err == nil {
		out.Inserted++
		return nil
	}
	var ce *store.ConstraintError
	if errors.As(err, &ce) {
		log.Warn().Err(ce).Msg("Row rejected by constraint")
		out.Failed++
		return nil
	}
	return err
}
