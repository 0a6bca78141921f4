package model

import (
	"time"
)

// ChannelStatus values stored in the channel_status column.
const (
	ChannelStatusActive = "active"
)

// Channel represents a content publisher's top-level account entity.
// The channel_id is assigned by YouTube and never generated locally.
type Channel struct {
	ChannelID   string `gorm:"column:channel_id;primaryKey;size:255"`
	Name        string `gorm:"column:channel_name;size:255"`
	ChannelType string `gorm:"column:channel_type;size:255"`
	ViewCount   *int64 `gorm:"column:channel_views"`
	Description string `gorm:"column:channel_description;type:text"`
	Status      string `gorm:"column:channel_status;size:255"`
	CreatedAt   time.Time
}

// TableName returns the table name for Channel
func (Channel) TableName() string {
	return "channels"
}
