package cmd

import (
	"fmt"
	"strings"

	"github.com/jfmyers9/soundstats/internal/export"
	"github.com/jfmyers9/soundstats/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	fetchSQLite    string
	fetchCSV       string
	fetchBatchSize int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <artist>",
	Short: "Collect and clean audio features for an artist",
	Long: `Collect the audio features of every track by an artist.

Runs the full collection: catalog search, batched audio-feature
requests, popularity lookup and cleaning. The cleaned table is printed
as CSV unless --sqlite or --csv is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchSQLite, "sqlite", "", "Write the cleaned table to this SQLite file, replacing its contents")
	fetchCmd.Flags().StringVar(&fetchCSV, "csv", "", "Write the cleaned table to this CSV file")
	fetchCmd.Flags().IntVar(&fetchBatchSize, "batch-size", 0, "Track IDs per audio-features request (1-100)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	e, err := connect(ctx)
	if err != nil {
		return err
	}

	p, err := newPipeline(e, fetchBatchSize)
	if err != nil {
		return err
	}

	if fetchSQLite != "" {
		sink, err := export.NewSQLite(fetchSQLite)
		if err != nil {
			return err
		}
		defer func() { _ = sink.Close() }()
		p.AddSink(sink)
	}
	if fetchCSV != "" {
		p.AddSink(export.NewCSV(fetchCSV))
	}

	report, err := p.Run(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	counts.Fprintf(stderr, "Run %s: %d tracks, %d with features, %d after cleaning\n",
		report.RunID, len(report.Tracks), report.Raw.Len(), report.Cleaned.Len())
	if len(report.Omitted) > 0 {
		counts.Fprintf(stderr, "%d tracks had no audio features\n", len(report.Omitted))
	}

	if fetchSQLite == "" && fetchCSV == "" {
		return export.WriteCSV(cmd.OutOrStdout(), report.Cleaned)
	}
	return nil
}

// newPipeline builds a pipeline from configuration. A positive batchSize
// overrides the configured one.
func newPipeline(e *env, batchSize int) (*pipeline.Pipeline, error) {
	if batchSize <= 0 {
		batchSize = e.cfg.BatchSize
	}

	p, err := pipeline.New(pipeline.Config{
		BatchSize: batchSize,
		Market:    e.cfg.Spotify.Market,
	}, e.client, e.logger)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return p, nil
}
