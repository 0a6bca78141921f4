package model

import (
	"time"
)

// Playlist represents an ordered collection of videos owned by a channel,
// including the implicit "uploads" playlist.
type Playlist struct {
	PlaylistID string `gorm:"column:playlist_id;primaryKey;size:255"`
	ChannelID  string `gorm:"column:channel_id;size:255;not null;index"`
	Name       string `gorm:"column:playlist_name;size:255"`
	CreatedAt  time.Time

	Channel *Channel `gorm:"foreignKey:ChannelID;references:ChannelID"`
}

// TableName returns the table name for Playlist
func (Playlist) TableName() string {
	return "playlists"
}
