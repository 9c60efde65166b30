package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/wikitable"
)

var (
	flagSource      string
	flagFilter      string
	flagOrdinal     int
	flagHeader      bool
	flagLinkColumn  int
	flagPatterns    []string
	flagOffsets     []string
	flagCap         int
	flagLinkFilter  string
	flagLinkOrdinal int
	flagOutput      string
	flagJSON        bool
	flagLenient     bool
	flagAbsent      string
	flagConfig      string
	flagForce       bool
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "wikitable",
	Short: "Normalize HTML tables and follow their links",
	Long: `Extracts an HTML table into a dense grid, expanding rowspan and
colspan cells, optionally following hyperlinks in one column to pull
values out of a table on each linked page. Results are written as
fully quoted CSV or as JSON.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagSource, "source", "s", "", "URL or file of the page holding the table")
	f.StringVar(&flagFilter, "filter", "", "table attribute filter, attr=value")
	f.IntVarP(&flagOrdinal, "ordinal", "n", 0, "which matching table to extract (0-based)")
	f.BoolVar(&flagHeader, "header", false, "treat the first row as a header")
	f.IntVarP(&flagLinkColumn, "link-column", "l", -1, "column whose links are followed")
	f.StringArrayVar(&flagPatterns, "pattern", nil, "label pattern to match on linked pages (repeatable)")
	f.StringArrayVar(&flagOffsets, "offset", nil, "row,col offset from label to value, one per pattern")
	f.IntVar(&flagCap, "cap", 0, "maximum matches honored per linked page (0 = all)")
	f.StringVar(&flagLinkFilter, "link-filter", "", "attribute filter for the linked page's table")
	f.IntVar(&flagLinkOrdinal, "link-ordinal", 0, "which matching table to use on linked pages")
	f.StringVarP(&flagOutput, "output", "o", "", "output file path")
	f.BoolVar(&flagJSON, "json", false, "write JSON instead of CSV")
	f.BoolVar(&flagLenient, "lenient", false, "unmatched labels fill with the absent marker instead of failing")
	f.StringVar(&flagAbsent, "absent", "", "marker for rows whose link cannot be followed")
	f.StringVarP(&flagConfig, "config", "c", "", "TOML job file; flags are ignored when set")
	f.BoolVarP(&flagForce, "force", "f", false, "re-extract even if the output file exists")
	f.BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	jobs, err := loadJobs()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for _, job := range jobs {
		if err := runJob(ctx, logger, job); err != nil {
			return fmt.Errorf("job %s: %w", job.Name, err)
		}
	}
	return nil
}

func newLogger() (*zap.Logger, error) {
	if flagVerbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runJob(ctx context.Context, logger *zap.Logger, job jobSpec) error {
	if !flagForce && job.Output != "" {
		if _, err := os.Stat(job.Output); err == nil {
			logger.Info("output exists, skipping (use --force to re-extract)",
				zap.String("job", job.Name),
				zap.String("output", job.Output))
			return nil
		}
	}

	ext, err := job.extractor(logger)
	if err != nil {
		return err
	}

	var warnings []wikitable.Warning
	switch {
	case job.Output == "":
		ds, w, err := ext.Dataset(ctx)
		if err != nil {
			return err
		}
		warnings = w
		if err := ds.WriteCSV(os.Stdout); err != nil {
			return err
		}
	case job.JSON:
		warnings, err = ext.WriteJSON(ctx, job.Output)
		if err != nil {
			return err
		}
	default:
		warnings, err = ext.WriteCSV(ctx, job.Output)
		if err != nil {
			return err
		}
	}

	for _, w := range warnings {
		logger.Warn("incomplete row", zap.String("job", job.Name), zap.String("detail", w.String()))
	}
	logger.Info("extracted", zap.String("job", job.Name), zap.String("output", job.Output))
	return nil
}
