package youtube

// Video is a search hit as returned to API clients.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		ChannelTitle string `json:"channelTitle"`
		Thumbnails   struct {
			Default thumbnail `json:"default"`
			Medium  thumbnail `json:"medium"`
			High    thumbnail `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
}

type thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

func (i searchItem) toVideo() Video {
	thumb := i.Snippet.Thumbnails.High.URL
	if thumb == "" {
		thumb = i.Snippet.Thumbnails.Medium.URL
	}
	if thumb == "" {
		thumb = i.Snippet.Thumbnails.Default.URL
	}
	return Video{
		ID:           i.ID.VideoID,
		Title:        i.Snippet.Title,
		Thumbnail:    thumb,
		ChannelTitle: i.Snippet.ChannelTitle,
	}
}
