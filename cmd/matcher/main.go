// Package main provides a CLI tool for debugging EPG channel matching.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tvclient/internal/epg"
	"tvclient/internal/xtream"
)

const noProgramsMsg = "NO PROGRAMS"

var (
	panelURL string
	username string
	password string
	epgPath  string
	logLevel string
	log      = logrus.New()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "matcher",
		Short: "Debug EPG channel matching",
		Long: `A debugging tool to analyze how live streams match to EPG data.

Outputs detailed information about:
- Which streams matched and by what key (display-name or channel id)
- Which streams failed to match and why
- Close matches that almost matched
- Summary statistics

Examples:
  # Match against the panel's own EPG
  go run cmd/matcher/main.go --url http://panel.example --username u --password p

  # Match against a local XMLTV file
  go run cmd/matcher/main.go --url http://panel.example --username u --password p --epg testdata/epg.xml`,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&panelURL, "url", "", "Panel base URL (required)")
	rootCmd.Flags().StringVar(&username, "username", "", "Panel username (required)")
	rootCmd.Flags().StringVar(&password, "password", "", "Panel password (required)")
	rootCmd.Flags().StringVar(&epgPath, "epg", "", "Local XMLTV file to match against instead of the panel's EPG")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "debug", "Log level (debug, info, warn, error)")

	for _, flag := range []string{"url", "username", "password"} {
		if err := rootCmd.MarkFlagRequired(flag); err != nil {
			log.WithError(err).WithField("flag", flag).Fatal("Failed to mark flag as required")
		}
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	ctx := context.Background()
	client := xtream.NewClient(log, panelURL, username, password)

	log.WithField("url", panelURL).Info("Loading live streams")

	live := make([]xtream.Stream, 0, 256)

	for _, s := range client.Streams(ctx) {
		if s.Kind == xtream.KindLive || s.Kind == xtream.KindUnspecified {
			live = append(live, s)
		}
	}

	log.WithField("count", len(live)).Info("Loaded live streams")

	schedule, err := loadSchedule(ctx, client)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"channels":   schedule.ChannelCount(),
		"programmes": schedule.ProgramCount(),
	}).Info("Loaded EPG data")

	analyzeResults(live, schedule)

	return nil
}

// loadSchedule parses a local XMLTV file when --epg is given, otherwise
// fetches the panel's EPG endpoint.
func loadSchedule(ctx context.Context, client *xtream.Client) (*epg.Schedule, error) {
	if epgPath != "" {
		log.WithField("source", epgPath).Info("Loading EPG from file")

		f, err := os.Open(epgPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open EPG file: %w", err)
		}
		defer f.Close()

		schedule, err := epg.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse EPG file: %w", err)
		}

		return schedule, nil
	}

	log.Info("Loading EPG from panel")

	return epg.NewIngestor(log).Fetch(ctx, client.EPGURL())
}

// analyzeResults prints detailed matching analysis.
func analyzeResults(streams []xtream.Stream, schedule *epg.Schedule) {
	// Index channel display names for strategy inference and close matches.
	displayNames := make(map[string]string, schedule.ChannelCount())
	for _, ch := range schedule.Channels() {
		displayNames[ch.ID] = ch.DisplayName
	}

	type match struct {
		stream     xtream.Stream
		channelIDs []string
		byName     bool
		programs   int
	}

	var (
		matched   []match
		unmatched []xtream.Stream
	)

	for _, s := range streams {
		ids := schedule.CandidateIDs(s.Name)
		if len(ids) == 0 {
			unmatched = append(unmatched, s)

			continue
		}

		m := match{stream: s, channelIDs: ids}
		key := epg.Normalize(s.Name)

		for _, id := range ids {
			m.programs += len(schedule.Programs(id))

			if epg.Normalize(displayNames[id]) == key {
				m.byName = true
			}
		}

		matched = append(matched, m)
	}

	byName := 0

	fmt.Println("\n" + strings.Repeat("-", 80))
	fmt.Printf("MATCHED STREAMS (%d/%d)\n", len(matched), len(streams))
	fmt.Println(strings.Repeat("-", 80))

	for _, m := range matched {
		key := "channel-id"
		if m.byName {
			key = "display-name"
			byName++
		}

		programInfo := fmt.Sprintf("%d programs", m.programs)
		if m.programs == 0 {
			programInfo = noProgramsMsg
		}

		fmt.Printf("  %-40s -> %-30s [%s, %s]\n",
			truncate(m.stream.Name, 40),
			truncate(strings.Join(m.channelIDs, ","), 30),
			key,
			programInfo,
		)
	}

	fmt.Println("\n" + strings.Repeat("-", 80))
	fmt.Printf("UNMATCHED STREAMS (%d/%d)\n", len(unmatched), len(streams))
	fmt.Println(strings.Repeat("-", 80))

	if len(unmatched) == 0 {
		fmt.Println("  All streams matched!")
	}

	for _, s := range unmatched {
		fmt.Printf("\n  %s\n", s.Name)
		fmt.Printf("    normalized: %q\n", epg.Normalize(s.Name))

		closeMatches := findClosestMatches(s.Name, schedule.Channels())
		if len(closeMatches) > 0 {
			fmt.Println("    close matches in EPG:")

			for _, name := range closeMatches {
				fmt.Printf("      - %s\n", name)
			}
		} else {
			fmt.Println("    no close matches found")
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SUMMARY")
	fmt.Println(strings.Repeat("=", 80))

	matchRate := 0.0
	if len(streams) > 0 {
		matchRate = float64(len(matched)) / float64(len(streams)) * 100
	}

	withPrograms := 0

	for _, m := range matched {
		if m.programs > 0 {
			withPrograms++
		}
	}

	fmt.Printf("  Total live streams:  %d\n", len(streams))
	fmt.Printf("  Matched:             %d (%.1f%%)\n", len(matched), matchRate)
	fmt.Printf("  Unmatched:           %d\n", len(unmatched))
	fmt.Println()
	fmt.Printf("  By key:\n")
	fmt.Printf("    display-name: %d\n", byName)
	fmt.Printf("    channel-id:   %d\n", len(matched)-byName)
	fmt.Println()
	fmt.Printf("  Matched with programs: %d\n", withPrograms)
	fmt.Printf("  Matched without programs: %d\n", len(matched)-withPrograms)

	fmt.Println(strings.Repeat("=", 80))
}

// findClosestMatches finds EPG channels with similar names using simple
// token matching on the normalized forms.
func findClosestMatches(streamName string, channels []epg.Channel) []string {
	tokens := strings.Fields(epg.Normalize(streamName))
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		name  string
		score int
	}

	candidates := make([]scored, 0, 10)

	for _, ch := range channels {
		chTokens := strings.Fields(epg.Normalize(ch.DisplayName))

		matches := 0

		for _, t1 := range tokens {
			for _, t2 := range chTokens {
				if t1 == t2 {
					matches++

					break
				}
			}
		}

		if matches > 0 {
			candidates = append(candidates, scored{name: ch.DisplayName, score: matches})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	result := make([]string, 0, 5)

	for i := 0; i < len(candidates) && i < 5; i++ {
		result = append(result, candidates[i].name)
	}

	return result
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	return s[:maxLen-3] + "..."
}
