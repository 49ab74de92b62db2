package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/KaramelBytes/dataprep-cli/internal/clean"
	cfgpkg "github.com/KaramelBytes/dataprep-cli/internal/config"
	"github.com/KaramelBytes/dataprep-cli/internal/logging"
	"github.com/KaramelBytes/dataprep-cli/internal/table"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	clInput        string
	clOutput       string
	clReport       string
	clReportFormat string
	clDelimiter    string
	clSheetName    string
	clSheetIndex   int
	clQuiet        bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the input dataset and write the cleaned file and summary report",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	c := cleanConfig(cmd)
	out := cmd.OutOrStdout()
	if clQuiet {
		out = io.Discard
	}
	runID := uuid.NewString()
	log := logging.WithRun(currentLogger(), runID)

	delim, err := cfgpkg.ParseDelimiter(c.Delimiter)
	if err != nil {
		return err
	}
	log.Info("loading dataset", slog.String("path", c.InputPath))
	t, err := table.Load(c.InputPath, table.LoadOptions{
		Delimiter:  delim,
		Encoding:   c.Encoding,
		SheetName:  c.SheetName,
		SheetIndex: c.SheetIndex,
		NAValues:   c.NAValues,
	})
	if err != nil {
		var missing *table.MissingInputError
		if errors.As(err, &missing) {
			log.Error("input dataset missing", slog.String("path", missing.Path))
		}
		return err
	}
	fmt.Fprintln(out, "✓ Dataset loaded successfully!")
	fmt.Fprintf(out, "Rows: %d, Columns: %d\n", t.Rows(), len(t.Columns))
	fmt.Fprintln(out, strings.Repeat("-", 50))

	sum, err := clean.New(cleanOptions(c), out, log).Run(t)
	if err != nil {
		return err
	}
	sum.RunID = runID
	sum.GeneratedAt = time.Now().UTC()

	if err := table.WriteCSV(c.OutputPath, t, table.WriteOptions{
		Delimiter:  delim,
		DateLayout: c.DateLayout,
		NullMarker: c.NullMarker,
	}); err != nil {
		return err
	}
	body, err := sum.Write(c.ReportPath, c.ReportFormat)
	if err != nil {
		return err
	}
	log.Info("run complete",
		slog.Int("original_rows", sum.OriginalRows),
		slog.Int("cleaned_rows", sum.CleanedRows),
		slog.Int("columns", sum.TotalColumns))

	fmt.Fprintln(out)
	fmt.Fprintln(out, body)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "✓ Cleaned dataset saved as: %s\n", c.OutputPath)
	fmt.Fprintf(out, "✓ Summary report saved as: %s\n", c.ReportPath)
	fmt.Fprintln(out, strings.Repeat("-", 50))
	fmt.Fprintln(out, "✓ Data cleaning completed successfully!")
	return nil
}

// cleanConfig applies flag overrides on top of the loaded configuration.
func cleanConfig(cmd *cobra.Command) *cfgpkg.Global {
	c := *currentConfig()
	f := cmd.Flags()
	if f.Changed("input") {
		c.InputPath = clInput
	}
	if f.Changed("output") {
		c.OutputPath = clOutput
	}
	if f.Changed("report") {
		c.ReportPath = clReport
	}
	if f.Changed("report-format") {
		c.ReportFormat = clReportFormat
	}
	if f.Changed("delimiter") {
		c.Delimiter = clDelimiter
	}
	if f.Changed("sheet-name") {
		c.SheetName = clSheetName
	}
	if f.Changed("sheet-index") {
		c.SheetIndex = clSheetIndex
	}
	return &c
}

func cleanOptions(c *cfgpkg.Global) clean.Options {
	return clean.Options{
		Dataset:       c.DatasetName,
		TextFill:      c.TextFill,
		NumericFill:   c.NumericFill,
		Sentinel:      c.Sentinel,
		DateColumn:    c.DateColumn,
		YearColumn:    c.YearColumn,
		RevenueColumn: c.RevenueColumn,
		BudgetColumn:  c.BudgetColumn,
		ProfitColumn:  c.ProfitColumn,
		TopMissing:    c.TopMissing,
	}
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	// The root command runs the same pipeline, so it accepts the same flags.
	for _, c := range []*cobra.Command{rootCmd, cleanCmd} {
		f := c.Flags()
		f.StringVarP(&clInput, "input", "i", "", "input dataset (CSV/TSV/XLSX)")
		f.StringVarP(&clOutput, "output", "o", "", "path for the cleaned dataset")
		f.StringVarP(&clReport, "report", "r", "", "path for the summary report")
		f.StringVar(&clReportFormat, "report-format", "", "report format: text|yaml")
		f.StringVar(&clDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|'")
		f.StringVar(&clSheetName, "sheet-name", "", "XLSX: sheet name to clean")
		f.IntVar(&clSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
		f.BoolVarP(&clQuiet, "quiet", "q", false, "suppress console output")
	}
}
