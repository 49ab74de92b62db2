package clean

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/dataprep-cli/internal/analysis"
	"github.com/KaramelBytes/dataprep-cli/internal/report"
	"github.com/KaramelBytes/dataprep-cli/internal/table"
)

// Options names the columns each step works on.
type Options struct {
	Dataset     string
	TextFill    []string
	NumericFill []string
	Sentinel    string
	DateColumn  string
	YearColumn  string
	// Profit = Revenue - Budget
	RevenueColumn string
	BudgetColumn  string
	ProfitColumn  string
	// TopMissing limits the missing-value listing; 0 lists every column.
	TopMissing int
}

// DefaultOptions returns the column lists for the Netflix catalogue export.
func DefaultOptions() Options {
	return Options{
		Dataset:       report.DefaultDataset,
		TextFill:      []string{"director", "cast", "country", "genres", "description", "listed_in"},
		NumericFill:   []string{"rating", "popularity", "vote_count", "vote_average", "budget", "revenue"},
		Sentinel:      DefaultSentinel,
		DateColumn:    "date_added",
		YearColumn:    "release_year",
		RevenueColumn: "revenue",
		BudgetColumn:  "budget",
		ProfitColumn:  "profit",
		TopMissing:    5,
	}
}

// Pipeline applies the fixed sequence of cleaning steps to a Table.
type Pipeline struct {
	opt Options
	out io.Writer
	log *slog.Logger
}

// New returns a Pipeline that prints progress to out and logs to log.
// A nil out discards console output; a nil log uses slog.Default().
func New(opt Options, out io.Writer, log *slog.Logger) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{opt: opt, out: out, log: log}
}

type step struct {
	name  string
	apply func(*table.Table) (report.StepResult, error)
}

// Run cleans t in place and returns the run summary. The original row count is
// taken from t as passed in, so call Run right after loading.
func (p *Pipeline) Run(t *table.Table) (*report.Summary, error) {
	sum := &report.Summary{
		Dataset:      p.opt.Dataset,
		OriginalRows: t.Rows(),
		Changes:      append([]string(nil), report.Changes...),
	}
	if sum.Dataset == "" {
		sum.Dataset = report.DefaultDataset
	}
	steps := []step{
		{"inspect", p.inspect},
		{"normalize_schema", p.normalizeSchema},
		{"impute", p.impute},
		{"dedupe", p.dedupe},
		{"normalize_dates", p.normalizeDates},
		{"coerce_types", p.coerceTypes},
		{"derive_profit", p.deriveProfit},
		{"sanitize_text", p.sanitizeText},
	}
	for _, s := range steps {
		start := time.Now()
		res, err := s.apply(t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		res.Step = s.name
		sum.Steps = append(sum.Steps, res)
		p.log.Debug("step finished",
			slog.String("step", s.name),
			slog.Bool("applied", res.Applied),
			slog.String("detail", res.Detail),
			slog.Int("rows", t.Rows()),
			slog.Duration("elapsed", time.Since(start)))
	}
	sum.CleanedRows = t.Rows()
	sum.TotalColumns = len(t.Columns)
	sum.DuplicatesRemoved = sum.OriginalRows - sum.CleanedRows
	return sum, nil
}

func (p *Pipeline) inspect(t *table.Table) (report.StepResult, error) {
	top := analysis.ProfileTable(t).TopMissing(p.opt.TopMissing)
	fmt.Fprintln(p.out, "Checking missing values...")
	fmt.Fprint(p.out, analysis.FormatMissing(top))
	return report.StepResult{Applied: true, Detail: fmt.Sprintf("%d columns listed", len(top))}, nil
}

func (p *Pipeline) normalizeSchema(t *table.Table) (report.StepResult, error) {
	n := NormalizeSchema(t)
	return report.StepResult{Applied: true, Detail: fmt.Sprintf("%d column names changed", n)}, nil
}

func (p *Pipeline) impute(t *table.Table) (report.StepResult, error) {
	res := Impute(t, p.opt.TextFill, p.opt.NumericFill, p.opt.Sentinel)
	for _, name := range res.Skipped {
		p.log.Warn("numeric fill skipped", slog.String("column", name))
	}
	for name, med := range res.Medians {
		p.log.Debug("median fill", slog.String("column", name), slog.String("median", med.String()))
	}
	names := make([]string, 0, len(res.Filled))
	total := 0
	for name, n := range res.Filled {
		names = append(names, name)
		total += n
	}
	sort.Strings(names)
	detail := fmt.Sprintf("%d values filled in %d columns", total, len(names))
	if len(names) > 0 {
		detail += " (" + strings.Join(names, ", ") + ")"
	}
	return report.StepResult{Applied: len(names) > 0, Detail: detail}, nil
}

func (p *Pipeline) dedupe(t *table.Table) (report.StepResult, error) {
	dups, empty := Dedupe(t)
	fmt.Fprintf(p.out, "✓ Removed %d duplicate or empty rows.\n", dups+empty)
	return report.StepResult{
		Applied: true,
		Detail:  fmt.Sprintf("%d duplicate rows, %d empty rows", dups, empty),
	}, nil
}

func (p *Pipeline) normalizeDates(t *table.Table) (report.StepResult, error) {
	parsed, failed, ok := NormalizeDates(t, p.opt.DateColumn)
	if !ok {
		p.log.Debug("date column absent", slog.String("column", p.opt.DateColumn))
		return report.StepResult{Detail: fmt.Sprintf("column %q absent", p.opt.DateColumn)}, nil
	}
	if failed > 0 {
		p.log.Info("unparseable dates set to missing", slog.String("column", p.opt.DateColumn), slog.Int("count", failed))
	}
	return report.StepResult{Applied: true, Detail: fmt.Sprintf("%d parsed, %d unparseable", parsed, failed)}, nil
}

func (p *Pipeline) coerceTypes(t *table.Table) (report.StepResult, error) {
	converted, failed, ok := CoerceInteger(t, p.opt.YearColumn)
	if !ok {
		p.log.Debug("year column absent", slog.String("column", p.opt.YearColumn))
		return report.StepResult{Detail: fmt.Sprintf("column %q absent", p.opt.YearColumn)}, nil
	}
	if failed > 0 {
		p.log.Info("non-integer years set to missing", slog.String("column", p.opt.YearColumn), slog.Int("count", failed))
	}
	return report.StepResult{Applied: true, Detail: fmt.Sprintf("%d converted, %d set to missing", converted, failed)}, nil
}

func (p *Pipeline) deriveProfit(t *table.Table) (report.StepResult, error) {
	ok, reason, err := DeriveDifference(t, p.opt.RevenueColumn, p.opt.BudgetColumn, p.opt.ProfitColumn)
	if err != nil {
		return report.StepResult{}, err
	}
	if !ok {
		p.log.Debug("profit not derived", slog.String("reason", reason))
		return report.StepResult{Detail: reason}, nil
	}
	return report.StepResult{Applied: true, Detail: fmt.Sprintf("%s = %s - %s", p.opt.ProfitColumn, p.opt.RevenueColumn, p.opt.BudgetColumn)}, nil
}

func (p *Pipeline) sanitizeText(t *table.Table) (report.StepResult, error) {
	n := SanitizeText(t)
	return report.StepResult{Applied: true, Detail: fmt.Sprintf("%d values trimmed", n)}, nil
}
