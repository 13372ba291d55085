package fetcher

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

type testSheet struct {
	name string
	rows [][]string
}

func createTestXLSX(t *testing.T, sheets ...testSheet) string {
	t.Helper()
	f := xlsx.NewFile()
	for _, s := range sheets {
		sheet, err := f.AddSheet(s.name)
		require.NoError(t, err)
		for _, rowData := range s.rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				row.AddCell().SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "ev.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestStreamXLSX_Basic(t *testing.T) {
	path := createTestXLSX(t, testSheet{name: "Sheet1", rows: [][]string{
		{"County", "City", "Make"},
		{"King", "Seattle", "TESLA"},
		{"Pierce", "Tacoma", "KIA"},
	}})

	rowCh, errCh := StreamXLSX(context.Background(), path, XLSXOptions{})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"County", "City", "Make"}, rows[0])
	assert.Equal(t, []string{"Pierce", "Tacoma", "KIA"}, rows[2])
}

func TestStreamXLSX_WithHeader(t *testing.T) {
	path := createTestXLSX(t, testSheet{name: "Sheet1", rows: [][]string{
		{"Make", "Model"},
		{"TESLA", "MODEL Y"},
	}})

	headerCh := make(chan []string, 1)
	rowCh, errCh := StreamXLSX(context.Background(), path, XLSXOptions{HasHeader: true, HeaderCh: headerCh})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"TESLA", "MODEL Y"}}, rows)
	assert.Equal(t, []string{"Make", "Model"}, <-headerCh)
}

func TestStreamXLSX_SheetByName(t *testing.T) {
	path := createTestXLSX(t,
		testSheet{name: "Notes", rows: [][]string{{"exported 2024"}}},
		testSheet{name: "Population", rows: [][]string{{"Make"}, {"BMW"}}},
	)

	rowCh, errCh := StreamXLSX(context.Background(), path, XLSXOptions{SheetName: "Population"})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Make"}, {"BMW"}}, rows)
}

func TestStreamXLSX_SheetByIndex(t *testing.T) {
	path := createTestXLSX(t,
		testSheet{name: "Notes", rows: [][]string{{"exported 2024"}}},
		testSheet{name: "Population", rows: [][]string{{"Make"}, {"BMW"}}},
	)

	rowCh, errCh := StreamXLSX(context.Background(), path, XLSXOptions{SheetIndex: 1})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"BMW"}, rows[1])
}

func TestStreamXLSX_MissingSheet(t *testing.T) {
	path := createTestXLSX(t, testSheet{name: "Sheet1", rows: [][]string{{"a"}}})

	rowCh, errCh := StreamXLSX(context.Background(), path, XLSXOptions{SheetName: "Population"})
	_, err := collectRows(t, rowCh, errCh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "Population" not found`)
}

func TestStreamXLSX_IndexOutOfRange(t *testing.T) {
	path := createTestXLSX(t, testSheet{name: "Sheet1", rows: [][]string{{"a"}}})

	rowCh, errCh := StreamXLSX(context.Background(), path, XLSXOptions{SheetIndex: 3})
	_, err := collectRows(t, rowCh, errCh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestStreamXLSX_BadFile(t *testing.T) {
	rowCh, errCh := StreamXLSX(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"), XLSXOptions{})
	_, err := collectRows(t, rowCh, errCh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx: open file")
}

func TestStreamXLSX_CancelledContext(t *testing.T) {
	path := createTestXLSX(t, testSheet{name: "Sheet1", rows: [][]string{{"a"}, {"b"}}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rowCh, errCh := StreamXLSX(ctx, path, XLSXOptions{})
	_, err := collectRows(t, rowCh, errCh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
}
