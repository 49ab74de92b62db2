package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "dataprep.yaml"

// Global configuration structure.
type Global struct {
	InputPath    string `mapstructure:"input_path" yaml:"input_path"`
	OutputPath   string `mapstructure:"output_path" yaml:"output_path"`
	ReportPath   string `mapstructure:"report_path" yaml:"report_path"`
	ReportFormat string `mapstructure:"report_format" yaml:"report_format"`
	DatasetName  string `mapstructure:"dataset_name" yaml:"dataset_name"`

	// Input parsing
	Delimiter  string   `mapstructure:"delimiter" yaml:"delimiter"`
	Encoding   string   `mapstructure:"encoding" yaml:"encoding"`
	SheetName  string   `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int      `mapstructure:"sheet_index" yaml:"sheet_index"`
	NAValues   []string `mapstructure:"na_values" yaml:"na_values"`

	// Output rendering
	NullMarker string `mapstructure:"null_marker" yaml:"null_marker"`
	DateLayout string `mapstructure:"date_layout" yaml:"date_layout"`

	// Cleaning columns
	Sentinel      string   `mapstructure:"sentinel" yaml:"sentinel"`
	TextFill      []string `mapstructure:"text_fill" yaml:"text_fill"`
	NumericFill   []string `mapstructure:"numeric_fill" yaml:"numeric_fill"`
	DateColumn    string   `mapstructure:"date_column" yaml:"date_column"`
	YearColumn    string   `mapstructure:"year_column" yaml:"year_column"`
	RevenueColumn string   `mapstructure:"revenue_column" yaml:"revenue_column"`
	BudgetColumn  string   `mapstructure:"budget_column" yaml:"budget_column"`
	ProfitColumn  string   `mapstructure:"profit_column" yaml:"profit_column"`
	TopMissing    int      `mapstructure:"top_missing" yaml:"top_missing"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		InputPath:     "netflix_dataset.csv",
		OutputPath:    "cleaned_netflix_dataset.csv",
		ReportPath:    "changes_summary.txt",
		ReportFormat:  "text",
		DatasetName:   "Netflix Dataset",
		Delimiter:     "",
		Encoding:      "utf-8",
		SheetIndex:    1,
		NAValues:      []string{"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan", "null", "NULL", "None", "<NA>", "#N/A"},
		NullMarker:    "",
		DateLayout:    "02-01-2006",
		Sentinel:      "Unknown",
		TextFill:      []string{"director", "cast", "country", "genres", "description", "listed_in"},
		NumericFill:   []string{"rating", "popularity", "vote_count", "vote_average", "budget", "revenue"},
		DateColumn:    "date_added",
		YearColumn:    "release_year",
		RevenueColumn: "revenue",
		BudgetColumn:  "budget",
		ProfitColumn:  "profit",
		TopMissing:    5,
		LogLevel:      "warn",
		LogFormat:     "text",
	}
}

// Path resolves the config file location. An explicit cfgFile wins; otherwise
// ./dataprep.yaml when it exists, else ~/.dataprep/config.yaml.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".dataprep", "config.yaml"), nil
}

// Save writes the given configuration to the resolved config path as YAML,
// creating the directory if necessary.
func Save(c *Global, cfgFile string) (string, error) {
	path, err := Path(cfgFile)
	if err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir config dir: %w", err)
		}
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (DATAPREP_*) > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATAPREP")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("input_path", d.InputPath)
	v.SetDefault("output_path", d.OutputPath)
	v.SetDefault("report_path", d.ReportPath)
	v.SetDefault("report_format", d.ReportFormat)
	v.SetDefault("dataset_name", d.DatasetName)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("encoding", d.Encoding)
	v.SetDefault("sheet_name", d.SheetName)
	v.SetDefault("sheet_index", d.SheetIndex)
	v.SetDefault("na_values", d.NAValues)
	v.SetDefault("null_marker", d.NullMarker)
	v.SetDefault("date_layout", d.DateLayout)
	v.SetDefault("sentinel", d.Sentinel)
	v.SetDefault("text_fill", d.TextFill)
	v.SetDefault("numeric_fill", d.NumericFill)
	v.SetDefault("date_column", d.DateColumn)
	v.SetDefault("year_column", d.YearColumn)
	v.SetDefault("revenue_column", d.RevenueColumn)
	v.SetDefault("budget_column", d.BudgetColumn)
	v.SetDefault("profit_column", d.ProfitColumn)
	v.SetDefault("top_missing", d.TopMissing)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	path, err := Path(cfgFile)
	if err != nil {
		return nil, err
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		// optional unless explicitly requested
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Keys lists the settable configuration keys.
func Keys() []string {
	return []string{
		"input_path", "output_path", "report_path", "report_format", "dataset_name",
		"delimiter", "encoding", "sheet_name", "sheet_index", "na_values",
		"null_marker", "date_layout", "sentinel", "text_fill", "numeric_fill",
		"date_column", "year_column", "revenue_column", "budget_column", "profit_column",
		"top_missing", "log_level", "log_format",
	}
}

// Set assigns a single key from its string form.
// List values are comma-separated.
func (c *Global) Set(key, val string) error {
	switch key {
	case "input_path":
		c.InputPath = val
	case "output_path":
		c.OutputPath = val
	case "report_path":
		c.ReportPath = val
	case "report_format":
		switch strings.ToLower(val) {
		case "text", "yaml":
			c.ReportFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid report_format: %s (use text or yaml)", val)
		}
	case "dataset_name":
		c.DatasetName = val
	case "delimiter":
		if _, err := ParseDelimiter(val); err != nil {
			return err
		}
		c.Delimiter = val
	case "encoding":
		c.Encoding = val
	case "sheet_name":
		c.SheetName = val
	case "sheet_index":
		i, err := cast.ToIntE(val)
		if err != nil || i < 1 {
			return fmt.Errorf("invalid int for sheet_index: %v", val)
		}
		c.SheetIndex = i
	case "na_values":
		c.NAValues = splitList(val)
	case "null_marker":
		c.NullMarker = val
	case "date_layout":
		c.DateLayout = val
	case "sentinel":
		c.Sentinel = val
	case "text_fill":
		c.TextFill = splitList(val)
	case "numeric_fill":
		c.NumericFill = splitList(val)
	case "date_column":
		c.DateColumn = val
	case "year_column":
		c.YearColumn = val
	case "revenue_column":
		c.RevenueColumn = val
	case "budget_column":
		c.BudgetColumn = val
	case "profit_column":
		c.ProfitColumn = val
	case "top_missing":
		i, err := cast.ToIntE(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for top_missing: %v", val)
		}
		c.TopMissing = i
	case "log_level":
		c.LogLevel = val
	case "log_format":
		c.LogFormat = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// ParseDelimiter maps a delimiter setting to a rune. Empty means auto-detect (0).
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";", "semicolon":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s (use ',' | ';' | 'tab' | '|')", s)
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
