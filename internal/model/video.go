package model

import (
	"time"
)

// Video represents a single video with its normalized metadata.
//
// Counters are pointers because the API may omit them (private statistics,
// ratings disabled); an absent counter is stored as NULL, never zero. The
// one exception is DislikeCount, which the API stopped returning in 2021
// and which defaults to zero instead.
type Video struct {
	VideoID       string `gorm:"column:video_id;primaryKey;size:255"`
	PlaylistID    string `gorm:"column:playlist_id;size:255;not null;index"`
	Name          string `gorm:"column:video_name;size:255"`
	Description   string `gorm:"column:video_description;type:text"`
	PublishedAt   string `gorm:"column:published_date;type:datetime"`
	ViewCount     *int64 `gorm:"column:view_count"`
	LikeCount     *int64 `gorm:"column:like_count"`
	DislikeCount  int64  `gorm:"column:dislike_count;default:0"`
	FavoriteCount *int64 `gorm:"column:favorite_count"`
	CommentCount  *int64 `gorm:"column:comment_count"`
	Duration      *int64 `gorm:"column:duration"`
	Thumbnail     string `gorm:"column:thumbnail;size:500"`
	CaptionStatus string `gorm:"column:caption_status;size:255"`
	CreatedAt     time.Time

	Playlist *Playlist `gorm:"foreignKey:PlaylistID;references:PlaylistID"`
}

// TableName returns the table name for Video
func (Video) TableName() string {
	return "videos"
}
