package source

import (
	"context"
	"fmt"
)

// BulkItem is one entry of a bulk source's complete listing
type BulkItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// BulkDetail is the hydrated structure of one listing entry
type BulkDetail struct {
	Title    string        `json:"title"`
	Slug     string        `json:"slug"`
	Episodes []BulkEpisode `json:"episodes"`
}

// BulkEpisode is one episode of a hydrated bulk entry. Torrents are keyed
// by quality token.
type BulkEpisode struct {
	Season     int                    `json:"season"`
	Episode    int                    `json:"episode"`
	FirstAired int64                  `json:"first_aired"`
	Torrents   map[string]BulkTorrent `json:"torrents"`
}

// BulkTorrent is one torrent record of a bulk episode
type BulkTorrent struct {
	URL   string `json:"url"`
	Seeds int    `json:"seeds"`
	Peers int    `json:"peers"`
}

// List fetches the complete listing of a bulk source
func (c *Client) List(ctx context.Context) ([]BulkItem, error) {
	var response struct {
		Shows []BulkItem `json:"shows"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/shows", &response); err != nil {
		return nil, err
	}
	return response.Shows, nil
}

// Detail hydrates one listing entry
func (c *Client) Detail(ctx context.Context, item BulkItem) (*BulkDetail, error) {
	var detail BulkDetail
	if err := c.getJSON(ctx, fmt.Sprintf("%s/show/%d", c.baseURL, item.ID), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
