package epg

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout = 5 * time.Minute
	maxBodySize    = 500 * 1024 * 1024 // 500MB for large EPG documents
)

// Ingestor fetches an XMLTV document over HTTP and streams it into a fresh
// Schedule. A failed fetch yields no schedule; deciding what to do with the
// previously visible schedule is the caller's concern.
type Ingestor struct {
	log        logrus.FieldLogger
	httpClient *http.Client
}

// NewIngestor creates an EPG ingestor.
func NewIngestor(log logrus.FieldLogger) *Ingestor {
	return &Ingestor{
		log: log.WithField("component", "epg-ingestor"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Fetch downloads and parses the EPG document at url, returning the new
// Schedule. Cancelling ctx aborts the download at the next read.
func (i *Ingestor) Fetch(ctx context.Context, url string) (*Schedule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Accept gzip encoding
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var reader io.Reader = resp.Body

	// Handle gzip encoding
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gzReader, gzErr := gzip.NewReader(resp.Body)
		if gzErr != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", gzErr)
		}
		defer gzReader.Close()

		reader = gzReader
	}

	sched, err := Parse(io.LimitReader(reader, maxBodySize))
	if err != nil {
		return nil, err
	}

	i.log.WithFields(logrus.Fields{
		"channels":   sched.ChannelCount(),
		"programmes": sched.ProgramCount(),
	}).Info("EPG schedule loaded")

	return sched, nil
}
