package xtream

import (
	"fmt"
	"net/url"
)

// StreamURL builds the playback URL for a live or VOD stream. Live streams
// default to HLS when the panel reports no container extension.
func (c *Client) StreamURL(s Stream) string {
	segment := "live"
	ext := s.ContainerExtension

	switch s.Kind {
	case KindMovie:
		segment = "movie"
	case KindSeries:
		segment = "series"
	}

	if ext == "" {
		ext = "m3u8"
	}

	return fmt.Sprintf("%s/%s/%s/%s/%d.%s",
		c.baseURL,
		segment,
		url.PathEscape(c.username),
		url.PathEscape(c.password),
		s.ID,
		ext,
	)
}

// EpisodeURL builds the playback URL for a series episode.
func (c *Client) EpisodeURL(e Episode) string {
	ext := e.ContainerExtension
	if ext == "" {
		ext = "mkv"
	}

	return fmt.Sprintf("%s/series/%s/%s/%s.%s",
		c.baseURL,
		url.PathEscape(c.username),
		url.PathEscape(c.password),
		url.PathEscape(e.ID),
		ext,
	)
}

// EPGURL returns the panel's XMLTV endpoint.
func (c *Client) EPGURL() string {
	q := url.Values{}
	q.Set("username", c.username)
	q.Set("password", c.password)

	return c.baseURL + "/epg.php?" + q.Encode()
}
