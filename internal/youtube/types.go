package youtube

// Response and resource structs for the Data API v3 payloads this client
// consumes. Counter fields are pointers so an omitted statistic stays nil
// instead of collapsing to zero; the API renders them as quoted numbers,
// hence the ",string" tags.

type channelListResponse struct {
	Items []Channel `json:"items"`
}

// Channel is a channels.list resource (snippet, statistics, contentDetails).
type Channel struct {
	ID             string                `json:"id"`
	Snippet        ChannelSnippet        `json:"snippet"`
	Statistics     ChannelStatistics     `json:"statistics"`
	ContentDetails ChannelContentDetails `json:"contentDetails"`
}

type ChannelSnippet struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ChannelType string `json:"channelType"`
}

type ChannelStatistics struct {
	ViewCount *int64 `json:"viewCount,string"`
}

type ChannelContentDetails struct {
	RelatedPlaylists RelatedPlaylists `json:"relatedPlaylists"`
}

type RelatedPlaylists struct {
	Uploads string `json:"uploads"`
}

type playlistListResponse struct {
	NextPageToken string     `json:"nextPageToken"`
	Items         []Playlist `json:"items"`
}

// Playlist is a playlists.list resource.
type Playlist struct {
	ID      string          `json:"id"`
	Snippet PlaylistSnippet `json:"snippet"`
}

type PlaylistSnippet struct {
	Title     string `json:"title"`
	ChannelID string `json:"channelId"`
}

type playlistItemListResponse struct {
	NextPageToken string         `json:"nextPageToken"`
	Items         []PlaylistItem `json:"items"`
}

// PlaylistItem is a playlistItems.list resource; its resourceId carries the
// video the entry points at.
type PlaylistItem struct {
	Snippet PlaylistItemSnippet `json:"snippet"`
}

type PlaylistItemSnippet struct {
	ResourceID ResourceID `json:"resourceId"`
}

type ResourceID struct {
	VideoID string `json:"videoId"`
}

// VideoID returns the ID of the video this playlist entry references.
func (p PlaylistItem) VideoID() string {
	return p.Snippet.ResourceID.VideoID
}

type videoListResponse struct {
	Items []Video `json:"items"`
}

// Video is a videos.list resource (snippet, contentDetails, statistics).
type Video struct {
	ID             string               `json:"id"`
	Snippet        VideoSnippet         `json:"snippet"`
	ContentDetails *VideoContentDetails `json:"contentDetails"`
	Statistics     VideoStatistics      `json:"statistics"`
}

type VideoSnippet struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PublishedAt string     `json:"publishedAt"`
	Thumbnails  Thumbnails `json:"thumbnails"`
}

type Thumbnails struct {
	Default Thumbnail `json:"default"`
}

type Thumbnail struct {
	URL string `json:"url"`
}

type VideoContentDetails struct {
	Duration *string `json:"duration"`
	Caption  string  `json:"caption"`
}

type VideoStatistics struct {
	ViewCount     *int64 `json:"viewCount,string"`
	LikeCount     *int64 `json:"likeCount,string"`
	DislikeCount  *int64 `json:"dislikeCount,string"`
	FavoriteCount *int64 `json:"favoriteCount,string"`
	CommentCount  *int64 `json:"commentCount,string"`
}

type commentThreadListResponse struct {
	NextPageToken string          `json:"nextPageToken"`
	Items         []CommentThread `json:"items"`
}

// CommentThread is a commentThreads.list resource; only the top-level
// comment is ingested, replies are not.
type CommentThread struct {
	Snippet CommentThreadSnippet `json:"snippet"`
}

type CommentThreadSnippet struct {
	TopLevelComment TopLevelComment `json:"topLevelComment"`
}

type TopLevelComment struct {
	ID      string         `json:"id"`
	Snippet CommentSnippet `json:"snippet"`
}

type CommentSnippet struct {
	VideoID           string `json:"videoId"`
	AuthorDisplayName string `json:"authorDisplayName"`
	TextDisplay       string `json:"textDisplay"`
	PublishedAt       string `json:"publishedAt"`
}
