package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jfmyers9/soundstats/internal/analysis"
	"github.com/jfmyers9/soundstats/internal/cleaner"
	"github.com/jfmyers9/soundstats/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	analyzeTop       int
	analyzeBins      int
	analyzeBatchSize int
	analyzeNoHist    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <artist>",
	Short: "Summarize the audio features of an artist",
	Long: `Collect an artist's audio features and print summary statistics.

Output has four parts: per-feature statistics, the correlation matrix,
the most strongly correlated feature pairs, and a histogram per
feature.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 5, "Number of feature pairs to list")
	analyzeCmd.Flags().IntVar(&analyzeBins, "bins", analysis.DefaultBins, "Histogram bins")
	analyzeCmd.Flags().IntVar(&analyzeBatchSize, "batch-size", 0, "Track IDs per audio-features request (1-100)")
	analyzeCmd.Flags().BoolVar(&analyzeNoHist, "no-histograms", false, "Skip histograms")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	e, err := connect(ctx)
	if err != nil {
		return err
	}

	p, err := newPipeline(e, analyzeBatchSize)
	if err != nil {
		return err
	}

	report, err := p.Run(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	return writeAnalysis(cmd.OutOrStdout(), report)
}

func writeAnalysis(w io.Writer, report *pipeline.Report) error {
	columns := cleaner.CleanedColumns()[1:]
	table := report.Cleaned

	counts.Fprintf(w, "%s: %d tracks analyzed\n\n", report.Artist, table.Len())

	summaries, err := analysis.Describe(table, columns)
	if err != nil {
		return err
	}
	if err := analysis.WriteSummaries(w, summaries); err != nil {
		return err
	}

	matrix, err := analysis.Correlation(table, columns)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nCorrelation")
	if err := analysis.WriteMatrix(w, matrix); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTop %d absolute correlations\n", analyzeTop)
	if err := analysis.WritePairs(w, analysis.TopAbsCorrelations(matrix, analyzeTop)); err != nil {
		return err
	}

	if analyzeNoHist {
		return nil
	}

	for _, c := range columns {
		values, _ := table.Floats(c)
		bins, err := analysis.Histogram(values, analyzeBins)
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		if err := analysis.WriteHistogram(w, c, bins); err != nil {
			return err
		}
	}
	return nil
}
