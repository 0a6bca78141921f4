package ingest

import (
	"github.com/user/ytharvest-go/internal/model"
	"github.com/user/ytharvest-go/internal/normalize"
	"github.com/user/ytharvest-go/internal/youtube"
)

// mapChannel converts an API channel resource into its stored form.
func mapChannel(ch *youtube.Channel) *model.Channel {
	return &model.Channel{
		ChannelID:   ch.ID,
		Name:        ch.Snippet.Title,
		ChannelType: ch.Snippet.ChannelType,
		ViewCount:   ch.Statistics.ViewCount,
		Description: ch.Snippet.Description,
		Status:      model.ChannelStatusActive,
	}
}

// mapPlaylist converts an API playlist resource into its stored form.
func mapPlaylist(p *youtube.Playlist) *model.Playlist {
	return &model.Playlist{
		PlaylistID: p.ID,
		ChannelID:  p.Snippet.ChannelID,
		Name:       p.Snippet.Title,
	}
}

// mapVideo converts an API video resource into its stored form under the
// owning playlist, normalizing the duration and published timestamp. A
// malformed duration or timestamp returns a *normalize.FormatError; the
// caller skips that video and continues.
//
// Absent counters stay NULL except the dislike count, which the API no
// longer returns and which defaults to zero.
func mapVideo(v *youtube.Video, playlistID string) (*model.Video, error) {
	publishedAt, err := normalize.Timestamp(v.Snippet.PublishedAt)
	if err != nil {
		return nil, err
	}

	var rawDuration *string
	caption := ""
	if v.ContentDetails != nil {
		rawDuration = v.ContentDetails.Duration
		caption = v.ContentDetails.Caption
	}
	duration, err := normalize.DurationSeconds(rawDuration)
	if err != nil {
		return nil, err
	}

	var dislikes int64
	if v.Statistics.DislikeCount != nil {
		dislikes = *v.Statistics.DislikeCount
	}

	return &model.Video{
		VideoID:       v.ID,
		PlaylistID:    playlistID,
		Name:          v.Snippet.Title,
		Description:   v.Snippet.Description,
		PublishedAt:   publishedAt,
		ViewCount:     v.Statistics.ViewCount,
		LikeCount:     v.Statistics.LikeCount,
		DislikeCount:  dislikes,
		FavoriteCount: v.Statistics.FavoriteCount,
		CommentCount:  v.Statistics.CommentCount,
		Duration:      duration,
		Thumbnail:     v.Snippet.Thumbnails.Default.URL,
		CaptionStatus: caption,
	}, nil
}

// mapComment converts the top-level comment of a thread into its stored
// form. A malformed published timestamp returns a *normalize.FormatError.
func mapComment(t *youtube.CommentThread) (*model.Comment, error) {
	top := t.Snippet.TopLevelComment
	publishedAt, err := normalize.Timestamp(top.Snippet.PublishedAt)
	if err != nil {
		return nil, err
	}

	return &model.Comment{
		CommentID:   top.ID,
		VideoID:     top.Snippet.VideoID,
		Text:        top.Snippet.TextDisplay,
		Author:      top.Snippet.AuthorDisplayName,
		PublishedAt: publishedAt,
	}, nil
}
