package data

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"tvclient/internal/catalog"
	"tvclient/internal/epg"
	"tvclient/internal/xtream"
)

// Fetcher loads catalog and EPG data from the panel into the store.
type Fetcher struct {
	log      logrus.FieldLogger
	client   *xtream.Client
	ingestor *epg.Ingestor
	store    *Store

	mu        sync.Mutex
	epgCancel context.CancelFunc
	epgGen    uint64
}

// NewFetcher creates a new data fetcher.
func NewFetcher(log logrus.FieldLogger, client *xtream.Client, ingestor *epg.Ingestor, store *Store) *Fetcher {
	return &Fetcher{
		log:      log.WithField("component", "fetcher"),
		client:   client,
		ingestor: ingestor,
		store:    store,
	}
}

// FetchAll fetches both catalog and EPG data.
func (f *Fetcher) FetchAll(ctx context.Context) error {
	if err := f.FetchCatalog(ctx); err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}

	if err := f.FetchEPG(ctx); err != nil {
		return fmt.Errorf("failed to fetch EPG: %w", err)
	}

	return nil
}

// FetchCatalog fetches categories, streams, and series concurrently,
// organizes them into groups, and installs the snapshot. Individual
// endpoint failures degrade to empty lists inside the client; an empty
// catalog still replaces the previous one.
func (f *Fetcher) FetchCatalog(ctx context.Context) error {
	f.log.Info("Fetching catalog")

	var (
		categories []xtream.Category
		streams    []xtream.Stream
		series     []xtream.SeriesSummary
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		categories = f.client.Categories(gctx)

		return nil
	})
	g.Go(func() error {
		streams = f.client.Streams(gctx)

		return nil
	})
	g.Go(func() error {
		series = f.client.Series(gctx)

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	groups := catalog.BuildGroups(categories, streams, series)
	f.store.SetCatalog(categories, streams, series, groups)

	f.log.WithFields(logrus.Fields{
		"categories": len(categories),
		"streams":    len(streams),
		"series":     len(series),
	}).Info("Catalog loaded")

	f.logGroupSummary(groups)

	return nil
}

// logGroupSummary logs a summary of channels per group.
func (f *Fetcher) logGroupSummary(groups []catalog.Group) {
	f.log.WithField("groups", len(groups)).Info("Channel groups summary")

	for _, g := range groups {
		f.log.WithFields(logrus.Fields{
			"group":    g.Name,
			"channels": len(g.Channels),
		}).Info("Group")
	}
}

// FetchEPG fetches and ingests the panel's XMLTV document. At most one
// ingestion is in flight: starting a new one cancels the prior one, and a
// superseded attempt's result is discarded. Once this attempt's IO
// completes it replaces the schedule unconditionally, with nil on failure.
func (f *Fetcher) FetchEPG(ctx context.Context) error {
	f.mu.Lock()

	if f.epgCancel != nil {
		f.epgCancel()
	}

	ingestCtx, cancel := context.WithCancel(ctx)
	f.epgCancel = cancel
	f.epgGen++
	gen := f.epgGen
	f.mu.Unlock()

	defer cancel()

	schedule, err := f.ingestor.Fetch(ingestCtx, f.client.EPGURL())

	f.mu.Lock()
	superseded := gen != f.epgGen
	if !superseded {
		f.epgCancel = nil
	}
	f.mu.Unlock()

	if superseded {
		f.log.Debug("EPG fetch superseded, discarding result")

		return nil
	}

	if err != nil {
		f.store.SetSchedule(nil)

		return fmt.Errorf("failed to ingest EPG: %w", err)
	}

	f.store.SetSchedule(schedule)

	return nil
}

// ResolveSeries returns the full season/episode structure for one series,
// fetching it on first use. Absence (panel failure, unknown id) is not an
// error; navigation degrades to "no seasons available".
func (f *Fetcher) ResolveSeries(ctx context.Context, seriesID int) (xtream.SeriesDetail, bool) {
	if detail, ok := f.store.SeriesDetail(seriesID); ok {
		return detail, true
	}

	detail, ok := f.client.SeriesDetails(ctx, seriesID)
	if !ok {
		return xtream.SeriesDetail{}, false
	}

	f.store.SetSeriesDetail(detail)

	return detail, true
}
