package model

import (
	"time"
)

// Comment represents a top-level comment on a video.
type Comment struct {
	CommentID   string `gorm:"column:comment_id;primaryKey;size:255"`
	VideoID     string `gorm:"column:video_id;size:255;not null;index"`
	Text        string `gorm:"column:comment_text;type:text"`
	Author      string `gorm:"column:comment_author;size:255"`
	PublishedAt string `gorm:"column:comment_published_date;type:datetime"`
	CreatedAt   time.Time

	Video *Video `gorm:"foreignKey:VideoID;references:VideoID"`
}

// TableName returns the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
