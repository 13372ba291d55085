package dataset

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/ev-dashboard/internal/model"
)

// decoder maps raw records onto model.Vehicle using a header row.
type decoder struct {
	// idx[i] is the record position of model.Columns[i], or -1.
	idx []int
}

// newDecoder matches header names against the dataset columns with
// model.ColumnKey, so snake_case database columns and the portal's CSV
// headers both resolve. Unknown header columns are ignored.
func newDecoder(header []string) (*decoder, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := model.ColumnKey(h)
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	d := &decoder{idx: make([]int, len(model.Columns))}
	for i, col := range model.Columns {
		j, ok := pos[model.ColumnKey(col)]
		if !ok {
			j = -1
		}
		d.idx[i] = j
	}

	var missing []string
	for _, col := range model.RequiredColumns {
		if _, ok := pos[model.ColumnKey(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, eris.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return d, nil
}

func (d *decoder) decode(record []string) model.Vehicle {
	var v model.Vehicle
	for i, col := range model.Columns {
		j := d.idx[i]
		if j < 0 || j >= len(record) {
			continue
		}
		v.Set(col, record[j])
	}
	return v
}

// blank reports whether every field of the record is empty. Spreadsheet
// exports often end with formatted but empty rows.
func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// collect drains a row stream whose first record is the header.
func collect(ctx context.Context, rowCh <-chan []string, errCh <-chan error) ([]model.Vehicle, error) {
	var (
		dec  *decoder
		out  []model.Vehicle
		derr error
	)
	for record := range rowCh {
		if derr != nil {
			continue
		}
		if dec == nil {
			dec, derr = newDecoder(record)
			continue
		}
		if blank(record) {
			continue
		}
		out = append(out, dec.decode(record))
	}

	if err := <-errCh; err != nil {
		return nil, err
	}
	if derr != nil {
		return nil, derr
	}
	if ctx.Err() != nil {
		return nil, eris.Wrap(ctx.Err(), "collect rows")
	}
	if dec == nil {
		return nil, eris.New("missing header row")
	}
	return out, nil
}
