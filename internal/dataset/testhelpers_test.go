package dataset

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/ev-dashboard/internal/config"
)

const sampleCSV = "VIN (1-10),County,City,State,Postal Code,Model Year,Make,Model,Electric Vehicle Type," +
	"Clean Alternative Fuel Vehicle (CAFV) Eligibility,Electric Range,Base MSRP,Legislative District," +
	"DOL Vehicle ID,Vehicle Location,Electric Utility,Census Tract 2020\n" +
	"5YJ3E1EA7J,King,Seattle,WA,98122,2018,TESLA,MODEL 3,Battery Electric Vehicle (BEV)," +
	"Clean Alternative Fuel Vehicle Eligible,215,0,37,477309682,POINT (-122.30839 47.610365),CITY OF SEATTLE - (WA),53033007800\n" +
	"1N4AZ0CP5D,King,Bellevue,WA,98004,2013,NISSAN,LEAF,Battery Electric Vehicle (BEV)," +
	"Clean Alternative Fuel Vehicle Eligible,75,0,41,110522176,POINT (-122.20263 47.61716),PUGET SOUND ENERGY INC,53033023800\n" +
	"KNDCE3LG2L,Pierce,Tacoma,WA,98403,2020,KIA,NIRO,Battery Electric Vehicle (BEV)," +
	"Clean Alternative Fuel Vehicle Eligible,239,0,27,124633715,,TACOMA POWER,53053061601\n"

func testConfig(source string) config.DatasetConfig {
	return config.DatasetConfig{
		Source:      source,
		Table:       "ev_population",
		UserAgent:   "test-agent",
		TimeoutSecs: 5,
		MaxRetries:  1,
		RateLimit:   1000,
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// csvToXLSX writes the CSV text into the first sheet of a new workbook.
func csvToXLSX(t *testing.T, content, sheetName string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		row := sheet.AddRow()
		for _, cell := range splitCSVLine(line) {
			row.AddCell().SetString(cell)
		}
	}
	p := filepath.Join(t.TempDir(), "ev.xlsx")
	require.NoError(t, f.Save(p))
	return p
}

// splitCSVLine handles the unquoted sample rows only.
func splitCSVLine(line string) []string {
	return strings.Split(line, ",")
}

func zipFiles(t *testing.T, files map[string][]byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ev.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	w := zip.NewWriter(f)
	for name, data := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return p
}
