package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "netflix_dataset.csv", c.InputPath)
	assert.Equal(t, "cleaned_netflix_dataset.csv", c.OutputPath)
	assert.Equal(t, "changes_summary.txt", c.ReportPath)
	assert.Equal(t, []string{"director", "cast", "country", "genres", "description", "listed_in"}, c.TextFill)
	assert.Equal(t, 5, c.TopMissing)
}

func TestLoadPrefersWorkingDirFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("dataset_name: Films\n"), 0o644))

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Films", c.DatasetName)
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "custom.yaml")
	body := "input_path: movies.csv\nreport_format: yaml\ntext_fill:\n  - director\n  - writer\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	t.Setenv("DATAPREP_REPORT_FORMAT", "text")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "movies.csv", c.InputPath)
	assert.Equal(t, "text", c.ReportFormat)
	assert.Equal(t, []string{"director", "writer"}, c.TextFill)
	assert.Equal(t, "release_year", c.YearColumn)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c := Defaults()
	require.NoError(t, c.Set("numeric_fill", "budget, revenue"))
	require.NoError(t, c.Set("top_missing", "3"))
	path, err := Save(c, p)
	require.NoError(t, err)
	assert.Equal(t, p, path)

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"budget", "revenue"}, got.NumericFill)
	assert.Equal(t, 3, got.TopMissing)
}

func TestSetValidation(t *testing.T) {
	c := Defaults()
	assert.Error(t, c.Set("top_missing", "-1"))
	assert.Error(t, c.Set("sheet_index", "zero"))
	assert.Error(t, c.Set("report_format", "pdf"))
	assert.Error(t, c.Set("delimiter", "#"))
	assert.Error(t, c.Set("nope", "x"))
	require.NoError(t, c.Set("delimiter", "tab"))
	assert.Equal(t, "tab", c.Delimiter)
}

func TestParseDelimiter(t *testing.T) {
	cases := map[string]rune{"": 0, ",": ',', "tab": '\t', ";": ';', "pipe": '|'}
	for in, want := range cases {
		got, err := ParseDelimiter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
