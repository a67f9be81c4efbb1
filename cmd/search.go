package cmd

import (
	"fmt"
	"strings"

	"github.com/jfmyers9/soundstats/pkg/spotify"
	"github.com/spf13/cobra"
)

var (
	searchLimit     int
	searchNameWidth int
)

var searchCmd = &cobra.Command{
	Use:   "search <artist>",
	Short: "List every track by an artist",
	Long: `Search the Spotify catalog for tracks by an artist.

Every result page is read and repeated tracks are listed once. Each
line shows the track ID followed by the track name.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Results per page (API default if 0, max 50)")
	searchCmd.Flags().IntVar(&searchNameWidth, "width", 40, "Track name column width (0 for no padding)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	e, err := connect(ctx)
	if err != nil {
		return err
	}

	artist := strings.Join(args, " ")
	tracks, err := e.client.Search().TracksWithOptions(ctx, artist, spotify.SearchOptions{
		Limit:  searchLimit,
		Market: e.cfg.Spotify.Market,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, t := range tracks {
		fmt.Fprintf(out, "%s  %s\n", t.ID, padToWidth(t.Name, searchNameWidth))
	}
	counts.Fprintf(cmd.ErrOrStderr(), "%d unique tracks\n", len(tracks))

	return nil
}
