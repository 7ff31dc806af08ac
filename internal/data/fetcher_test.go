package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"tvclient/internal/epg"
	"tvclient/internal/xtream"
)

const testEPGDoc = `<tv>
	<channel id="fox.us"><display-name>Fox News</display-name></channel>
	<programme channel="fox.us" start_timestamp="1000" stop_timestamp="2000"><title>Evening News</title></programme>
</tv>`

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return log
}

// panelStub answers both player_api and epg endpoints from canned bodies.
type panelStub struct {
	mu        sync.Mutex
	actions   map[string]string
	epgBody   string
	epgFail   bool
	epgCalls  int
	infoCalls int
}

func (p *panelStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()

		if r.URL.Path == "/epg.php" {
			p.epgCalls++

			if p.epgFail {
				w.WriteHeader(http.StatusBadGateway)

				return
			}

			_, _ = w.Write([]byte(p.epgBody))

			return
		}

		action := r.URL.Query().Get("action")
		if action == "get_series_info" {
			p.infoCalls++
		}

		body, ok := p.actions[action]
		if !ok {
			w.WriteHeader(http.StatusBadGateway)

			return
		}

		_, _ = w.Write([]byte(body))
	}
}

func newTestFetcher(t *testing.T, stub *panelStub) (*Fetcher, *Store) {
	t.Helper()

	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	log := testLogger()
	store := NewStore()
	client := xtream.NewClient(log, srv.URL, "user", "secret")
	fetcher := NewFetcher(log, client, epg.NewIngestor(log), store)

	return fetcher, store
}

func TestFetchCatalog(t *testing.T) {
	stub := &panelStub{actions: map[string]string{
		"get_live_categories": `[{"category_id":"1","category_name":"News"}]`,
		"get_live_streams":    `[{"stream_id":10,"name":"Fox News","category_id":"1","stream_type":"live"}]`,
		"get_series":          `[{"series_id":5,"name":"The Wire","category_id":"1"}]`,
	}}

	fetcher, store := newTestFetcher(t, stub)

	require.NoError(t, fetcher.FetchCatalog(context.Background()))

	snapshot, ok := store.GetCatalog()
	require.True(t, ok)
	require.Len(t, snapshot.Categories, 1)
	require.Len(t, snapshot.Streams, 1)
	require.Len(t, snapshot.Series, 1)
	require.Len(t, snapshot.Groups, 1)
	require.Equal(t, "News", snapshot.Groups[0].Name)
}

func TestFetchCatalog_AllEndpointsDownStillReplaces(t *testing.T) {
	stub := &panelStub{actions: map[string]string{}}

	fetcher, store := newTestFetcher(t, stub)

	store.SetCatalog(nil, []xtream.Stream{{ID: 1, Name: "stale"}}, nil, nil)

	require.NoError(t, fetcher.FetchCatalog(context.Background()))

	snapshot, ok := store.GetCatalog()
	require.True(t, ok)
	require.Empty(t, snapshot.Streams)
}

func TestFetchCatalog_CancelledContext(t *testing.T) {
	stub := &panelStub{actions: map[string]string{}}
	fetcher, _ := newTestFetcher(t, stub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, fetcher.FetchCatalog(ctx))
}

func TestFetchEPG(t *testing.T) {
	stub := &panelStub{epgBody: testEPGDoc}
	fetcher, store := newTestFetcher(t, stub)

	require.NoError(t, fetcher.FetchEPG(context.Background()))

	schedule, ok := store.GetSchedule()
	require.True(t, ok)

	program, ok := schedule.CurrentProgram("Fox News", 1500)
	require.True(t, ok)
	require.Equal(t, "Evening News", program.Title)
}

func TestFetchEPG_FailureReplacesWithNothing(t *testing.T) {
	stub := &panelStub{epgBody: testEPGDoc}
	fetcher, store := newTestFetcher(t, stub)

	require.NoError(t, fetcher.FetchEPG(context.Background()))

	_, ok := store.GetSchedule()
	require.True(t, ok)

	stub.mu.Lock()
	stub.epgFail = true
	stub.mu.Unlock()

	require.Error(t, fetcher.FetchEPG(context.Background()))

	_, ok = store.GetSchedule()
	require.False(t, ok)
}

func TestFetchEPG_SupersededResultDiscarded(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case arrived <- struct{}{}:
			// First request: block until the test releases it.
			<-release
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(testEPGDoc))
		}
	}))
	defer srv.Close()

	log := testLogger()
	store := NewStore()
	client := xtream.NewClient(log, srv.URL, "user", "secret")
	fetcher := NewFetcher(log, client, epg.NewIngestor(log), store)

	firstDone := make(chan error, 1)

	go func() {
		firstDone <- fetcher.FetchEPG(context.Background())
	}()

	<-arrived

	// The second fetch supersedes the blocked first one.
	require.NoError(t, fetcher.FetchEPG(context.Background()))

	close(release)
	require.NoError(t, <-firstDone)

	// The first attempt's outcome did not clobber the schedule.
	schedule, ok := store.GetSchedule()
	require.True(t, ok)
	require.Equal(t, 1, schedule.ProgramCount())
}

func TestResolveSeries(t *testing.T) {
	stub := &panelStub{actions: map[string]string{
		"get_series_info": `{
			"info": {"name": "The Wire", "category_id": "9"},
			"episodes": {"1": [{"id": "1001", "episode_num": 1, "title": "The Target"}]}
		}`,
	}}

	fetcher, store := newTestFetcher(t, stub)

	detail, ok := fetcher.ResolveSeries(context.Background(), 42)
	require.True(t, ok)
	require.Equal(t, "The Wire", detail.Name)
	require.Len(t, detail.Seasons[1], 1)

	cached, ok := store.SeriesDetail(42)
	require.True(t, ok)
	require.Equal(t, detail, cached)

	// Second resolution is served from the store.
	_, ok = fetcher.ResolveSeries(context.Background(), 42)
	require.True(t, ok)

	stub.mu.Lock()
	defer stub.mu.Unlock()
	require.Equal(t, 1, stub.infoCalls)
}

func TestResolveSeries_Failure(t *testing.T) {
	stub := &panelStub{actions: map[string]string{}}
	fetcher, _ := newTestFetcher(t, stub)

	_, ok := fetcher.ResolveSeries(context.Background(), 42)
	require.False(t, ok)
}

func TestFetchAll(t *testing.T) {
	stub := &panelStub{
		actions: map[string]string{
			"get_live_categories": `[{"category_id":"1","category_name":"News"}]`,
			"get_live_streams":    `[{"stream_id":10,"name":"Fox News","category_id":"1","stream_type":"live"}]`,
			"get_series":          `[]`,
		},
		epgBody: testEPGDoc,
	}

	fetcher, store := newTestFetcher(t, stub)

	require.NoError(t, fetcher.FetchAll(context.Background()))
	require.True(t, store.HasData())

	_, ok := store.GetSchedule()
	require.True(t, ok)
}

func TestRefresher(t *testing.T) {
	stub := &panelStub{
		actions: map[string]string{
			"get_live_categories": `[]`,
			"get_live_streams":    `[]`,
			"get_series":          `[]`,
		},
		epgBody: testEPGDoc,
	}

	fetcher, store := newTestFetcher(t, stub)
	refresher := NewRefresher(testLogger(), fetcher, 10*time.Millisecond)

	require.NoError(t, refresher.Start(context.Background()))
	// Starting twice is a no-op.
	require.NoError(t, refresher.Start(context.Background()))

	require.Eventually(t, store.HasData, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, refresher.Stop())
	// Stopping twice is safe.
	require.NoError(t, refresher.Stop())
}
