package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/dataprep-cli/internal/utils"
	"gopkg.in/yaml.v3"
)

// DefaultDataset is the dataset label used when none is configured.
const DefaultDataset = "Netflix Dataset"

// Changes lists the operations every run performs, in report order.
var Changes = []string{
	"Standardized column names",
	"Filled missing values ('Unknown' / median)",
	"Fixed date format (dd-mm-yyyy)",
	"Converted data types",
	"Removed duplicates",
	"Added 'profit' column",
	"Cleaned text formatting",
}

// ErrUnknownFormat is returned by Write for an unsupported report format.
var ErrUnknownFormat = errors.New("unknown report format")

// Summary is the outcome of one cleaning run.
type Summary struct {
	RunID             string       `yaml:"run_id,omitempty"`
	Dataset           string       `yaml:"dataset"`
	OriginalRows      int          `yaml:"original_rows"`
	CleanedRows       int          `yaml:"cleaned_rows"`
	TotalColumns      int          `yaml:"total_columns"`
	DuplicatesRemoved int          `yaml:"duplicates_removed"`
	Changes           []string     `yaml:"changes"`
	Steps             []StepResult `yaml:"steps,omitempty"`
	GeneratedAt       time.Time    `yaml:"generated_at"`
}

// StepResult describes what a single pipeline step did.
type StepResult struct {
	Step    string `yaml:"step"`
	Applied bool   `yaml:"applied"`
	Detail  string `yaml:"detail,omitempty"`
}

// Text renders the plain-text summary.
func (s *Summary) Text() string {
	var b strings.Builder
	b.WriteString("Data Cleaning Summary\n")
	b.WriteString("========================\n")
	b.WriteString(fmt.Sprintf("Dataset: %s\n", s.Dataset))
	b.WriteString(fmt.Sprintf("Original Rows: %d\n", s.OriginalRows))
	b.WriteString(fmt.Sprintf("Cleaned Rows: %d\n", s.CleanedRows))
	b.WriteString(fmt.Sprintf("Total Columns: %d\n", s.TotalColumns))
	b.WriteString(fmt.Sprintf("Duplicates Removed: %d\n", s.DuplicatesRemoved))
	b.WriteString("\nChanges Performed:\n")
	for _, c := range s.Changes {
		b.WriteString("- ")
		b.WriteString(c)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// YAML renders the summary, including per-step results.
func (s *Summary) YAML() ([]byte, error) {
	b, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return b, nil
}

// Render returns the summary in the given format: "text" (default) or "yaml".
func (s *Summary) Render(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text", "txt":
		return s.Text(), nil
	case "yaml", "yml":
		b, err := s.YAML()
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("%w: %s (use text or yaml)", ErrUnknownFormat, format)
	}
}

// Write renders the summary and writes it to path, replacing any existing file.
func (s *Summary) Write(path, format string) (string, error) {
	body, err := s.Render(format)
	if err != nil {
		return "", err
	}
	if err := utils.SafeWriteFile(path, []byte(body)); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return body, nil
}
