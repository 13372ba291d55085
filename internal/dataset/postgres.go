package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/ev-dashboard/internal/db"
	"github.com/sells-group/ev-dashboard/internal/model"
)

// Querier is the read side of a pgx pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Connect opens and pings a pgx pool.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: create connection pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "dataset: ping database")
	}
	return pool, nil
}

// ReadTable reads every row of table in storage order. Column names are
// matched like CSV headers; every value is converted to text, NULL to "".
func ReadTable(ctx context.Context, q Querier, table string) ([]model.Vehicle, error) {
	rows, err := q.Query(ctx, "SELECT * FROM "+db.SanitizeTable(table))
	if err != nil {
		return nil, eris.Wrapf(err, "query %s", table)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Name
	}
	dec, err := newDecoder(header)
	if err != nil {
		return nil, err
	}

	var out []model.Vehicle
	record := make([]string, len(header))
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, eris.Wrapf(err, "scan %s", table)
		}
		for i := range record {
			record[i] = ""
			if i < len(vals) && vals[i] != nil {
				record[i] = fmt.Sprint(vals[i])
			}
		}
		out = append(out, dec.decode(record))
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "read %s", table)
	}
	return out, nil
}

// WriteTable replaces the contents of table with rows, one text column per
// dataset column in snake_case.
func WriteTable(ctx context.Context, pool db.Pool, table string, rows []model.Vehicle) (int64, error) {
	cols := make([]string, len(model.Columns))
	for i, c := range model.Columns {
		cols[i] = model.SQLColumn(c)
	}

	data := make([][]any, len(rows))
	for i := range rows {
		vals := rows[i].Values()
		row := make([]any, len(vals))
		for j, v := range vals {
			row[j] = v
		}
		data[i] = row
	}

	return db.ReplaceTable(ctx, pool, table, cols, data)
}
