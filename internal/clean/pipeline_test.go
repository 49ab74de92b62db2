package clean

import (
	"bytes"
	"strings"
	"testing"

	"github.com/KaramelBytes/dataprep-cli/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const netflixSample = "Show ID,Type,Title,Director,Cast,Country,Date Added,Release Year,Listed-In,Description,Budget,Revenue\n" +
	"s1,Movie,Dick Johnson Is Dead,Kirsten Johnson,,United States,\"September 25, 2021\",2020,Documentaries,  A documentary.  ,100,250\n" +
	"s2,TV Show,Blood & Water,,Ama Qamata,South Africa,2020-13-45,2021,International TV Shows,A drama.,,400\n" +
	"s3,Movie,Ganglands,Julien Leclercq,Sami Bouajila,,\"September 24, 2021\",unknown,Crime,A thriller.,50,\n" +
	"s1,Movie,Dick Johnson Is Dead,Kirsten Johnson,,United States,\"September 25, 2021\",2020,Documentaries,  A documentary.  ,100,250\n" +
	",,,,,,,,,,,\n"

func TestPipelineRun(t *testing.T) {
	tbl := loadCSV(t, netflixSample)
	var out bytes.Buffer

	sum, err := New(DefaultOptions(), &out, nil).Run(tbl)
	require.NoError(t, err)

	// the blank row gets sentinel text before deduplication, so only the repeat is dropped
	assert.Equal(t, 5, sum.OriginalRows)
	assert.Equal(t, 4, sum.CleanedRows)
	assert.Equal(t, 1, sum.DuplicatesRemoved)
	assert.Equal(t, sum.OriginalRows-sum.CleanedRows, sum.DuplicatesRemoved)
	assert.Equal(t, 13, sum.TotalColumns)
	assert.Equal(t, "Netflix Dataset", sum.Dataset)
	assert.Len(t, sum.Steps, 8)

	assert.Equal(t, []string{
		"show_id", "type", "title", "director", "cast", "country", "date_added",
		"release_year", "listed_in", "description", "budget", "revenue", "profit",
	}, tbl.Names())

	for _, name := range []string{"director", "cast", "country", "listed_in", "description"} {
		c := tbl.Column(name)
		require.NotNil(t, c, name)
		assert.Zero(t, c.Missing(), name)
	}
	assert.Equal(t, "Unknown", tbl.Column("cast").Values[0].Text())
	assert.Equal(t, "A documentary.", tbl.Column("description").Values[0].Text())

	dates := tbl.Column("date_added")
	assert.Equal(t, "25-09-2021", dates.Format(0, table.DefaultDateLayout, ""))
	assert.False(t, dates.Values[1].Valid())

	years := tbl.Column("release_year")
	assert.Equal(t, table.Integer, years.Kind)
	assert.False(t, years.Values[2].Valid())

	// medians: budget of {100, 100, 50} = 100; revenue of {250, 400, 250} = 250
	profit := tbl.Column("profit")
	assert.Equal(t, "150", profit.Format(0, "", ""))
	assert.Equal(t, "300", profit.Format(1, "", ""))
	assert.Equal(t, "200", profit.Format(2, "", ""))
	assert.Equal(t, "150", profit.Format(3, "", ""))

	console := out.String()
	missingAt := strings.Index(console, "Checking missing values...")
	removedAt := strings.Index(console, "✓ Removed 1 duplicate or empty rows.")
	require.GreaterOrEqual(t, missingAt, 0)
	require.Greater(t, removedAt, missingAt)
}

func TestPipelineWithoutFinancialColumns(t *testing.T) {
	tbl := loadCSV(t, "title,director\nA,\nA,\nB,Someone\n")

	sum, err := New(DefaultOptions(), nil, nil).Run(tbl)
	require.NoError(t, err)

	assert.False(t, tbl.Has("profit"))
	assert.Equal(t, 2, sum.CleanedRows)
	assert.Equal(t, 2, sum.TotalColumns)
	for _, s := range sum.Steps {
		if s.Step == "derive_profit" {
			assert.False(t, s.Applied)
		}
	}
}

func TestPipelineDropsBlankRowsOutsideFillColumns(t *testing.T) {
	tbl := loadCSV(t, "title,note\nA,x\n,\nA,x\nB,\n")

	sum, err := New(DefaultOptions(), nil, nil).Run(tbl)
	require.NoError(t, err)

	assert.Equal(t, 4, sum.OriginalRows)
	assert.Equal(t, 2, sum.CleanedRows)
	assert.Equal(t, 2, sum.DuplicatesRemoved)
	assert.Equal(t, "B", tbl.Column("title").Values[1].Text())
}

func TestPipelineDerivesProfitFromEmptyBudget(t *testing.T) {
	tbl := loadCSV(t, "title,budget,revenue\nA,,100\nB,,200\n")

	sum, err := New(DefaultOptions(), nil, nil).Run(tbl)
	require.NoError(t, err)

	profit := tbl.Column("profit")
	require.NotNil(t, profit)
	assert.Equal(t, 2, profit.Missing())
	assert.Equal(t, 4, sum.TotalColumns)
	assert.Equal(t, 2, sum.CleanedRows)
	for _, s := range sum.Steps {
		if s.Step == "derive_profit" {
			assert.True(t, s.Applied)
		}
	}
}
