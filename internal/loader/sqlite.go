package loader

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/collisiondb/collisiondb/internal/record"
	"github.com/collisiondb/collisiondb/internal/schema"
	"github.com/collisiondb/collisiondb/pkg"
	"github.com/dustin/go-humanize"

	_ "modernc.org/sqlite"
)

const DefaultTable = "collisions"

// SQLiteLoader reads collision rows from a SQLite table whose columns are
// named after the fields (either BOROUGH or borough). Columns that do not
// name a field are ignored; missing fields are absent.
type SQLiteLoader struct {
	Path  string
	Table string
}

func NewSQLiteLoader(path, table string) *SQLiteLoader {
	if table == "" {
		table = DefaultTable
	}
	return &SQLiteLoader{Path: path, Table: table}
}

func (l *SQLiteLoader) Source() string { return l.Path }

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (l *SQLiteLoader) Load(ctx context.Context) ([]*record.Record, error) {
	db, err := sql.Open("sqlite", l.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY rowid", quoteIdent(l.Table)))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", l.Table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	col_fields := make([]schema.Field, len(columns))
	for i, c := range columns {
		f, ok := schema.Lookup(strings.ToUpper(c))
		if !ok {
			pkg.DebugLog("ignoring sqlite column", c)
			f = schema.Field(-1)
		}
		col_fields[i] = f
	}

	cells := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range cells {
		dest[i] = &cells[i]
	}

	records := []*record.Record{}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", l.Table, err)
		}

		b := record.NewBuilder()
		for i, f := range col_fields {
			if !f.IsValid() || !cells[i].Valid {
				continue
			}
			v, err := ParseCell(f, cells[i].String)
			if err != nil {
				pkg.WarnLog("row", len(records)+1, err)
				continue
			}
			b.Set(f, v)
		}
		records = append(records, b.Build())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pkg.DebugLog("read", humanize.Comma(int64(len(records))), "rows from sqlite table", l.Table)
	return records, nil
}
