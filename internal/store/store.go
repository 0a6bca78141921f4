package store

import (
	"context"

	"github.com/user/ytharvest-go/internal/model"
)

// Entity names the four persisted tables for the generic existence guard
// and for constraint-error reporting.
type Entity string

const (
	EntityChannel  Entity = "channel"
	EntityPlaylist Entity = "playlist"
	EntityVideo    Entity = "video"
	EntityComment  Entity = "comment"
)

// Store defines the interface for data persistence operations.
//
// Each insert is a single-row operation in its own transaction: success
// commits immediately, a constraint or transport failure rolls back that
// row only and surfaces a *ConstraintError. There is no upsert and no
// retry; idempotency is the caller's job via Exists.
type Store interface {
	// Insert operations, one per entity type. Parent keys must already
	// be set on the record by the caller.
	InsertChannel(ctx context.Context, channel *model.Channel) error
	InsertPlaylist(ctx context.Context, playlist *model.Playlist) error
	InsertVideo(ctx context.Context, video *model.Video) error
	InsertComment(ctx context.Context, comment *model.Comment) error

	// Exists reports whether the entity with the given primary key is
	// already stored. A lookup failure is returned as an error, never
	// conflated with "not found".
	Exists(ctx context.Context, entity Entity, id string) (bool, error)

	// CountVideos returns the total number of stored videos.
	CountVideos(ctx context.Context) (int64, error)

	// Health check
	Ping(ctx context.Context) error
	Close() error
}
