package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/user/ytharvest-go/internal/config"
	"github.com/user/ytharvest-go/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// MySQL error numbers for the constraints the schema enforces.
const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrFKViolation    = 1452
)

// MySQLStore implements Store on MySQL via gorm.
type MySQLStore struct {
	db *gorm.DB
}

// NewMySQLStore connects to MySQL and ensures the four-table schema exists.
// Schema creation is idempotent; the foreign-key chain channel <- playlist
// <- video <- comment is created with the tables.
func NewMySQLStore(cfg *config.DBConfig) (*MySQLStore, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MaxConns / 2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Parents before children so the FK constraints resolve.
	if err := db.AutoMigrate(&model.Channel{}, &model.Playlist{}, &model.Video{}, &model.Comment{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &MySQLStore{db: db}, nil
}

// InsertChannel persists a single channel row.
func (s *MySQLStore) InsertChannel(ctx context.Context, channel *model.Channel) error {
	return s.insert(ctx, EntityChannel, channel.ChannelID, channel)
}

// InsertPlaylist persists a single playlist row. The owning channel must
// already be stored or the insert fails with a foreign-key ConstraintError.
func (s *MySQLStore) InsertPlaylist(ctx context.Context, playlist *model.Playlist) error {
	return s.insert(ctx, EntityPlaylist, playlist.PlaylistID, playlist)
}

// InsertVideo persists a single video row under its owning playlist.
func (s *MySQLStore) InsertVideo(ctx context.Context, video *model.Video) error {
	return s.insert(ctx, EntityVideo, video.VideoID, video)
}

// InsertComment persists a single comment row under its owning video.
func (s *MySQLStore) InsertComment(ctx context.Context, comment *model.Comment) error {
	return s.insert(ctx, EntityComment, comment.CommentID, comment)
}

// insert runs one single-row insert. Each statement is its own implicit
// transaction: MySQL rolls back the row on constraint failure and nothing
// else is affected.
func (s *MySQLStore) insert(ctx context.Context, entity Entity, key string, record any) error {
	result := s.db.WithContext(ctx).Omit(clause.Associations).Create(record)
	if result.Error != nil {
		return mapInsertError(entity, key, result.Error)
	}
	return nil
}

// mapInsertError converts driver-level constraint violations into
// *ConstraintError so callers can count them per row.
func mapInsertError(entity Entity, key string, err error) error {
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrDuplicateEntry:
			return &ConstraintError{Entity: entity, Key: key, Kind: ConstraintDuplicate, Err: err}
		case mysqlErrFKViolation:
			return &ConstraintError{Entity: entity, Key: key, Kind: ConstraintForeignKey, Err: err}
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConstraintError{Entity: entity, Key: key, Kind: ConstraintDuplicate, Err: err}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &ConstraintError{Entity: entity, Key: key, Kind: ConstraintForeignKey, Err: err}
	}
	return fmt.Errorf("failed to insert %s %s: %w", entity, key, err)
}

// Exists checks whether an entity with the given primary key is stored.
// Lookup failures propagate; they must not be read as "not found".
func (s *MySQLStore) Exists(ctx context.Context, entity Entity, id string) (bool, error) {
	var query *gorm.DB
	switch entity {
	case EntityChannel:
		query = s.db.Model(&model.Channel{}).Where("channel_id = ?", id)
	case EntityPlaylist:
		query = s.db.Model(&model.Playlist{}).Where("playlist_id = ?", id)
	case EntityVideo:
		query = s.db.Model(&model.Video{}).Where("video_id = ?", id)
	case EntityComment:
		query = s.db.Model(&model.Comment{}).Where("comment_id = ?", id)
	default:
		return false, fmt.Errorf("unknown entity %q", entity)
	}

	var count int64
	if err := query.WithContext(ctx).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", entity, err)
	}
	return count > 0, nil
}

// CountVideos returns the total count of stored videos.
func (s *MySQLStore) CountVideos(ctx context.Context) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).Model(&model.Video{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count videos: %w", result.Error)
	}
	return count, nil
}

// Ping checks database connectivity
func (s *MySQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *MySQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying db: %w", err)
	}
	return sqlDB.Close()
}

// DB returns the underlying gorm.DB instance (for testing purposes)
func (s *MySQLStore) DB() *gorm.DB {
	return s.db
}
