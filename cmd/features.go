package cmd

import (
	"github.com/jfmyers9/soundstats/internal/export"
	"github.com/jfmyers9/soundstats/internal/features"
	"github.com/jfmyers9/soundstats/pkg/frame"
	"github.com/jfmyers9/soundstats/pkg/spotify"
	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:   "features <track-id>...",
	Short: "Print audio features for tracks",
	Long: `Fetch audio features for one or more tracks and print them as CSV.

More than 100 IDs are split into batches. Tracks without audio features
are left out of the output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	e, err := connect(ctx)
	if err != nil {
		return err
	}

	fetcher := features.NewFetcher(e.client, e.logger)

	var table *frame.Frame
	switch {
	case len(args) == 1:
		table, err = fetcher.FetchOne(ctx, args[0])
	case len(args) <= spotify.MaxFeatureIDs:
		table, err = fetcher.FetchMany(ctx, args)
	default:
		var batches spotify.Batches
		batches, err = spotify.Chunk(args, e.cfg.BatchSize)
		if err == nil {
			table, err = fetcher.FetchAll(ctx, batches)
		}
	}
	if err != nil {
		return err
	}

	return export.WriteCSV(cmd.OutOrStdout(), table)
}
