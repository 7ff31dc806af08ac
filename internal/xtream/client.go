package xtream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultTimeout = 90 * time.Second

// Client issues read-only GET requests against one panel's player_api
// endpoints. Credentials are baked in at construction.
//
// Catalog endpoints tolerate partial failure: an individual request that
// fails or returns malformed JSON contributes an empty result and a warning
// log instead of aborting the whole call. No retry logic lives here.
type Client struct {
	log        logrus.FieldLogger
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
}

// NewClient creates a panel client for one base URL + credential pair.
func NewClient(log logrus.FieldLogger, baseURL, username, password string) *Client {
	return &Client{
		log: log.WithField("component", "xtream"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		username: username,
		password: password,
	}
}

type categoryJSON struct {
	CategoryID   flexID `json:"category_id"`
	CategoryName string `json:"category_name"`
}

type streamJSON struct {
	StreamID           flexID `json:"stream_id"`
	Name               string `json:"name"`
	CategoryID         flexID `json:"category_id"`
	StreamType         string `json:"stream_type"`
	ContainerExtension string `json:"container_extension"`
}

// Categories fetches the live, VOD, and series category lists, merges them,
// and de-duplicates by category id keeping the first occurrence.
func (c *Client) Categories(ctx context.Context) []Category {
	actions := []string{"get_live_categories", "get_vod_categories", "get_series_categories"}

	seen := make(map[string]bool)
	merged := make([]Category, 0, 64)

	for _, action := range actions {
		for _, raw := range fetchList[categoryJSON](ctx, c, action, nil) {
			id := raw.CategoryID.String()
			if id == "" || seen[id] {
				continue
			}

			seen[id] = true
			merged = append(merged, Category{ID: id, Name: raw.CategoryName})
		}
	}

	return merged
}

// Streams fetches the live and VOD stream lists and concatenates them. Ids
// are not de-duplicated across the two lists; a live/VOD id collision is the
// caller's concern.
func (c *Client) Streams(ctx context.Context) []Stream {
	streams := make([]Stream, 0, 256)
	streams = appendStreams(streams, fetchList[streamJSON](ctx, c, "get_live_streams", nil))
	streams = appendStreams(streams, fetchList[streamJSON](ctx, c, "get_vod_streams", nil))

	return streams
}

func appendStreams(dst []Stream, raw []streamJSON) []Stream {
	for _, s := range raw {
		id := s.StreamID.Int()
		if id == 0 {
			continue
		}

		dst = append(dst, Stream{
			ID:                 id,
			Name:               s.Name,
			CategoryID:         s.CategoryID.String(),
			Kind:               parseKind(s.StreamType),
			ContainerExtension: s.ContainerExtension,
		})
	}

	return dst
}

func parseKind(streamType string) Kind {
	switch streamType {
	case "live":
		return KindLive
	case "movie":
		return KindMovie
	case "series":
		return KindSeries
	default:
		return KindUnspecified
	}
}

// Series fetches the series stub list. Entries without a series id are
// dropped; name and category default to empty strings.
func (c *Client) Series(ctx context.Context) []SeriesSummary {
	type seriesJSON struct {
		SeriesID   flexID `json:"series_id"`
		Name       string `json:"name"`
		CategoryID flexID `json:"category_id"`
	}

	raw := fetchList[seriesJSON](ctx, c, "get_series", nil)
	out := make([]SeriesSummary, 0, len(raw))

	for _, s := range raw {
		id := s.SeriesID.Int()
		if id == 0 {
			continue
		}

		out = append(out, SeriesSummary{
			SeriesID:   id,
			Name:       s.Name,
			CategoryID: s.CategoryID.String(),
		})
	}

	return out
}

type episodeJSON struct {
	ID                 flexID `json:"id"`
	EpisodeNum         flexID `json:"episode_num"`
	Title              string `json:"title"`
	ContainerExtension string `json:"container_extension"`
	Plot               string `json:"plot"`
	Description        string `json:"description"`
	Info               *struct {
		Plot        string `json:"plot"`
		Description string `json:"description"`
	} `json:"info"`
}

// description probes the places panels hide an episode synopsis, in order:
// nested info.plot, nested info.description, top-level plot, top-level
// description. First non-empty wins.
func (e episodeJSON) description() string {
	if e.Info != nil {
		if e.Info.Plot != "" {
			return e.Info.Plot
		}

		if e.Info.Description != "" {
			return e.Info.Description
		}
	}

	if e.Plot != "" {
		return e.Plot
	}

	return e.Description
}

// SeriesDetails fetches one series' full season/episode structure. Season
// keys are numeric strings; episode ids are accepted as either numeric or
// string JSON values. Any structural parse failure or endpoint failure
// yields (zero, false) rather than an error.
func (c *Client) SeriesDetails(ctx context.Context, seriesID int) (SeriesDetail, bool) {
	body, err := c.get(ctx, "get_series_info", url.Values{"series_id": {strconv.Itoa(seriesID)}})
	if err != nil {
		c.log.WithError(err).WithField("series_id", seriesID).Warn("Failed to fetch series details")

		return SeriesDetail{}, false
	}

	var payload struct {
		Info *struct {
			Name       string `json:"name"`
			CategoryID flexID `json:"category_id"`
		} `json:"info"`
		Episodes map[string][]episodeJSON `json:"episodes"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		c.log.WithError(err).WithField("series_id", seriesID).Warn("Malformed series details")

		return SeriesDetail{}, false
	}

	detail := SeriesDetail{
		SeriesSummary: SeriesSummary{SeriesID: seriesID},
		Seasons:       make(map[int][]Episode),
	}
	if payload.Info != nil {
		detail.Name = payload.Info.Name
		detail.CategoryID = payload.Info.CategoryID.String()
	}

	for seasonKey, rawEpisodes := range payload.Episodes {
		seasonNum, err := strconv.Atoi(seasonKey)
		if err != nil {
			continue
		}

		episodes := make([]Episode, 0, len(rawEpisodes))

		for _, raw := range rawEpisodes {
			id := raw.ID.String()
			if id == "" {
				continue
			}

			num := raw.EpisodeNum.Int()
			if num == 0 {
				continue
			}

			title := raw.Title
			if title == "" {
				title = fmt.Sprintf("Episode %d", num)
			}

			episodes = append(episodes, Episode{
				ID:                 id,
				Num:                num,
				Title:              title,
				Season:             seasonNum,
				ContainerExtension: raw.ContainerExtension,
				Description:        raw.description(),
			})
		}

		if len(episodes) == 0 {
			continue
		}

		sort.Slice(episodes, func(i, j int) bool {
			return episodes[i].Num < episodes[j].Num
		})

		detail.Seasons[seasonNum] = episodes
	}

	return detail, true
}

// ShortEPG fetches a short-term programme listing for one stream id as a
// fallback EPG source. Malformed entries are skipped; any failure returns
// an empty list.
func (c *Client) ShortEPG(ctx context.Context, streamID, limit int) []EPGEntry {
	body, err := c.get(ctx, "get_short_epg", url.Values{
		"stream_id": {strconv.Itoa(streamID)},
		"limit":     {strconv.Itoa(limit)},
	})
	if err != nil {
		c.log.WithError(err).WithField("stream_id", streamID).Warn("Failed to fetch short EPG")

		return nil
	}

	var payload struct {
		Listings []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Start       flexID `json:"start_timestamp"`
			Stop        flexID `json:"stop_timestamp"`
		} `json:"epg_listings"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		c.log.WithError(err).WithField("stream_id", streamID).Warn("Malformed short EPG")

		return nil
	}

	entries := make([]EPGEntry, 0, len(payload.Listings))

	for _, item := range payload.Listings {
		if item.Title == "" {
			continue
		}

		entries = append(entries, EPGEntry{
			Title:       item.Title,
			Description: item.Description,
			Start:       item.Start.Int64(),
			End:         item.Stop.Int64(),
		})
	}

	return entries
}

// fetchList fetches one action's JSON array, degrading to an empty slice on
// transport or parse failure.
func fetchList[T any](ctx context.Context, c *Client, action string, params url.Values) []T {
	body, err := c.get(ctx, action, params)
	if err != nil {
		c.log.WithError(err).WithField("action", action).Warn("Failed to fetch panel list")

		return nil
	}

	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		c.log.WithError(err).WithField("action", action).Warn("Malformed panel list")

		return nil
	}

	return out
}

func (c *Client) get(ctx context.Context, action string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + "/player_api.php?username=" + url.QueryEscape(c.username) +
		"&password=" + url.QueryEscape(c.password) + "&action=" + url.QueryEscape(action)
	if len(params) > 0 {
		endpoint += "&" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
