package app

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"csvexplorer/adapters/excel"
	"csvexplorer/domain/core"
	"csvexplorer/domain/dataset"
	"csvexplorer/internal/charts"
	apperrors "csvexplorer/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleCSV = "a,b\n1,x\n2,x\n3,y\n"

func loadTable(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	table, err := excel.LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return table
}

func TestRenderNumericColumn(t *testing.T) {
	vm, err := Render(loadTable(t, exampleCSV), "a", DefaultOptions())
	require.NoError(t, err)

	assert.True(t, vm.Loaded)
	assert.Equal(t, "3 rows × 2 columns", vm.Shape)
	assert.Equal(t, "a", vm.Selected)
	require.NotNil(t, vm.Column)
	assert.Equal(t, dataset.KindNumeric, vm.Column.Kind)
	assert.Equal(t, []Stat{
		{"Mean", "2.000"}, {"Median", "2.000"}, {"Min", "1.000"}, {"Max", "3.000"},
	}, vm.Column.Stats)
	require.NotNil(t, vm.Column.Chart)
	assert.Equal(t, charts.KindHistogram, vm.Column.Chart.Kind)
}

func TestRenderCategoricalColumn(t *testing.T) {
	vm, err := Render(loadTable(t, exampleCSV), "b", DefaultOptions())
	require.NoError(t, err)

	require.NotNil(t, vm.Column.Result.Categorical)
	assert.Equal(t, 2, *vm.Column.Unique)
	assert.Equal(t, vm.Column.Result.Categorical.Frequencies, vm.Column.Frequencies)
	assert.Empty(t, vm.Column.Stats)
	assert.Equal(t, "Category Frequency for b", vm.Column.Chart.Title)
}

func TestRenderToggles(t *testing.T) {
	table := loadTable(t, exampleCSV)

	vm, err := Render(table, "a", Options{PreviewRows: 20})
	require.NoError(t, err)
	assert.Nil(t, vm.Summary)
	assert.Nil(t, vm.Column.Chart)
	assert.NotEmpty(t, vm.Column.Stats, "column statistics do not depend on toggles")

	vm, err = Render(table, "a", Options{ShowSummary: true, PreviewRows: 20})
	require.NoError(t, err)
	require.NotNil(t, vm.Summary)
	assert.Len(t, vm.Summary.Rows, 2)
}

func TestRenderSummaryIsNotFilteredBySelection(t *testing.T) {
	table := loadTable(t, exampleCSV)

	withA, _ := Render(table, "a", DefaultOptions())
	withB, _ := Render(table, "b", DefaultOptions())
	none, _ := Render(table, "", DefaultOptions())

	assert.Equal(t, withA.Summary, withB.Summary)
	assert.Equal(t, withA.Summary, none.Summary)
	assert.Equal(t, []string{"a", "3", "NaN", "NaN", "NaN", "2.000", "1.000", "1.000", "1.500", "2.000", "2.500", "3.000"},
		withA.Summary.Rows[0])
	assert.Equal(t, []string{"b", "3", "2", "x", "2"}, withA.Summary.Rows[1][:5])
}

func TestRenderNoSelectionSkipsDetail(t *testing.T) {
	vm, err := Render(loadTable(t, exampleCSV), "", DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, vm.Column)
	assert.Empty(t, vm.Selected)
	assert.NotNil(t, vm.Summary)
}

func TestRenderUnknownColumn(t *testing.T) {
	_, err := Render(loadTable(t, exampleCSV), "zzz", DefaultOptions())
	assert.True(t, core.IsNotFoundError(err))
}

func TestRenderEmptyNumericColumnReportsNoData(t *testing.T) {
	col := dataset.NewColumn("e", dataset.KindNumeric, []dataset.Cell{dataset.NullCell(""), dataset.NullCell("NA")})
	table, err := dataset.NewTable([]dataset.Column{col})
	require.NoError(t, err)

	vm, err := Render(table, "e", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, NoDataMessage, vm.Column.Message)
	assert.Equal(t, NoDataMessage, vm.Column.ChartMessage)
	assert.Nil(t, vm.Column.Chart)
}

func TestRenderNilTableIsEmptyState(t *testing.T) {
	vm, err := Render(nil, "a", DefaultOptions())
	require.NoError(t, err)
	assert.False(t, vm.Loaded)
	assert.Empty(t, vm.ColumnNames)
}

func TestRenderPreview(t *testing.T) {
	var b strings.Builder
	b.WriteString("n,c\n")
	for i := 0; i < 30; i++ {
		b.WriteString("1,NA\n")
	}

	opts := DefaultOptions()
	vm, err := Render(loadTable(t, b.String()), "", opts)
	require.NoError(t, err)
	assert.Len(t, vm.Preview.Rows, opts.PreviewRows)
	assert.True(t, vm.Preview.Truncated)
	assert.Equal(t, PreviewCell{Text: "None", Null: true}, vm.Preview.Rows[0][1])
	assert.Equal(t, PreviewCell{Text: "1"}, vm.Preview.Rows[0][0])
}

func TestRenderIsIdempotent(t *testing.T) {
	explorer := NewExplorer(excel.NewDataReader(excel.DefaultReaderConfig()), DefaultOptions())
	input := []byte("a,b,c\n1,x,\n2,x,q\n3,y,NA\n4.5,z,q\n")

	var outputs [2][]byte
	var exports [2][]byte
	for i := range outputs {
		vm, err := explorer.Analyze("data.csv", input, "b", DefaultOptions())
		require.NoError(t, err)
		outputs[i], err = json.Marshal(vm)
		require.NoError(t, err)

		upload, err := explorer.Load("data.csv", input)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, excel.WriteCSV(&buf, upload.Table))
		exports[i] = buf.Bytes()
	}

	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, exports[0], exports[1])
}

func TestExplorerLoadFailures(t *testing.T) {
	explorer := NewExplorer(excel.NewDataReader(excel.DefaultReaderConfig()), DefaultOptions())

	_, err := explorer.Load("empty.csv", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeLoadFailed, apperrors.GetCode(err))
	assert.True(t, core.IsLoadError(err))

	_, err = explorer.Analyze("notes.txt", []byte("a\n1\n"), "", DefaultOptions())
	assert.Equal(t, apperrors.CodeLoadFailed, apperrors.GetCode(err))

	_, err = explorer.Analyze("data.csv", []byte(exampleCSV), "zzz", DefaultOptions())
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))
}

func TestExplorerLoadManifest(t *testing.T) {
	explorer := NewExplorer(excel.NewDataReader(excel.DefaultReaderConfig()), DefaultOptions())

	upload, err := explorer.Load("data.csv", []byte(exampleCSV))
	require.NoError(t, err)
	assert.Equal(t, "data.csv", upload.Manifest.Filename)
	assert.Equal(t, excel.MimeCSV, upload.Manifest.MimeType)
	assert.Equal(t, 3, upload.Manifest.Rows)
	assert.Equal(t, core.NewHash([]byte(exampleCSV)), upload.Manifest.ContentHash)
}

func TestExplorerViewFallsBackToFirstColumn(t *testing.T) {
	explorer := NewExplorer(excel.NewDataReader(excel.DefaultReaderConfig()), DefaultOptions())
	table := loadTable(t, exampleCSV)

	vm, notice := explorer.View(table, "", explorer.WithToggles(true, true))
	assert.Empty(t, notice)
	assert.Equal(t, "a", vm.Selected)

	vm, notice = explorer.View(table, "gone", explorer.WithToggles(false, false))
	assert.Contains(t, notice, "gone")
	assert.Equal(t, "a", vm.Selected)
	assert.Nil(t, vm.Summary)

	vm, notice = explorer.View(nil, "", explorer.Defaults())
	assert.Empty(t, notice)
	assert.False(t, vm.Loaded)
}
