// Package main is the entry point for the IPTV client.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tvclient/internal/config"
	"tvclient/internal/data"
	"tvclient/internal/epg"
	"tvclient/internal/prefs"
	"tvclient/internal/xtream"
)

var (
	cfg     = config.DefaultConfig()
	log     = logrus.New()
	channel string
	watch   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tvclient",
		Short: "Xtream-Codes IPTV client with EPG matching",
		Long: `Connects to an Xtream-Codes panel, loads the channel/VOD/series
catalog, overlays XMLTV program-guide data onto live channels, and
reports what is on.

Credentials default to the ones stored in the preferences file; flags
override and update the stored values.`,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&cfg.BaseURL, "url", "", "Panel base URL")
	rootCmd.Flags().StringVar(&cfg.Username, "username", "", "Panel username")
	rootCmd.Flags().StringVar(&cfg.Password, "password", "", "Panel password")
	rootCmd.Flags().StringVar(&cfg.PrefsPath, "prefs", "", "Preferences file path")
	rootCmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.Flags().DurationVar(&cfg.EPGRefreshInterval, "epg-refresh", cfg.EPGRefreshInterval, "Catalog/EPG refresh interval")
	rootCmd.Flags().StringVar(&channel, "channel", "", "Print the program currently airing on this channel")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "Keep running and refresh periodically")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	store, err := openPrefs()
	if err != nil {
		return err
	}

	resolveCredentials(store)

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrNotConfigured) {
			return fmt.Errorf("%w: pass --url, --username, and --password or store them with --prefs", err)
		}

		return err
	}

	log.WithFields(logrus.Fields{
		"url":      cfg.BaseURL,
		"username": cfg.Username,
	}).Info("Starting IPTV client")

	dataStore := data.NewStore()
	client := xtream.NewClient(log, cfg.BaseURL, cfg.Username, cfg.Password)
	fetcher := data.NewFetcher(log, client, epg.NewIngestor(log), dataStore)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := fetcher.FetchCatalog(ctx); err != nil {
		return err
	}

	if err := fetcher.FetchEPG(ctx); err != nil {
		log.WithError(err).Warn("No EPG data available")
	}

	if channel != "" {
		printNowPlaying(dataStore, channel)
	}

	if !watch {
		return nil
	}

	refresher := data.NewRefresher(log, fetcher, cfg.EPGRefreshInterval)
	if err := refresher.Start(ctx); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Received shutdown signal")

	return refresher.Stop()
}

// openPrefs opens the preferences file, or an in-memory store when no path
// is configured.
func openPrefs() (prefs.Store, error) {
	if cfg.PrefsPath == "" {
		return prefs.NewMemory(), nil
	}

	return prefs.OpenFile(log, cfg.PrefsPath)
}

// resolveCredentials fills missing credential flags from the preferences
// store, and stores a complete flag-provided triple back.
func resolveCredentials(store prefs.Store) {
	if cfg.BaseURL != "" && cfg.Username != "" && cfg.Password != "" {
		prefs.SaveCredentials(store, cfg.BaseURL, cfg.Username, cfg.Password)

		return
	}

	baseURL, username, password, ok := prefs.Credentials(store)
	if !ok {
		return
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURL
	}

	if cfg.Username == "" {
		cfg.Username = username
	}

	if cfg.Password == "" {
		cfg.Password = password
	}
}

func printNowPlaying(store *data.Store, name string) {
	schedule, ok := store.GetSchedule()
	if !ok {
		fmt.Printf("%s: no program information\n", name)

		return
	}

	program, ok := schedule.CurrentProgram(name, time.Now().Unix())
	if !ok {
		fmt.Printf("%s: no program information\n", name)

		return
	}

	fmt.Printf("%s: %s (%s - %s)\n",
		name,
		program.Title,
		time.Unix(program.Start, 0).Format("15:04"),
		time.Unix(program.End, 0).Format("15:04"),
	)
}
