// Package sheetsql adapts database/sql queries to sheet row providers.
package sheetsql

import (
	"context"
	"database/sql"
	"io"

	"github.com/goliatone/go-sheet/sheet"
)

// Provider streams a SQL query result as table data. Each render run
// executes the query again, so the provider is safe to bind to multiple
// renders.
type Provider struct {
	DB    *sql.DB
	Query string
	Args  []any
}

// New creates a provider over a query.
func New(db *sql.DB, query string, args ...any) *Provider {
	return &Provider{DB: db, Query: query, Args: args}
}

// Rows executes the query and returns an iterator over its result.
func (p *Provider) Rows(ctx context.Context) (sheet.RowIterator, error) {
	if p == nil || p.DB == nil {
		return nil, sheet.NewError(sheet.KindValidation, "database handle is required", nil)
	}
	if p.Query == "" {
		return nil, sheet.NewError(sheet.KindValidation, "query is required", nil)
	}

	rows, err := p.DB.QueryContext(ctx, p.Query, p.Args...)
	if err != nil {
		return nil, sheet.NewError(sheet.KindRender, "execute query", err)
	}

	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, sheet.NewError(sheet.KindRender, "read result columns", err)
	}

	return &rowIterator{rows: rows, columns: columns}, nil
}

type rowIterator struct {
	rows    *sql.Rows
	columns []string
}

func (it *rowIterator) Next(ctx context.Context) (sheet.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !it.rows.Next() {
		if err := it.rows.Err(); err != nil {
			return nil, sheet.NewError(sheet.KindRender, "iterate query result", err)
		}
		return nil, io.EOF
	}

	values := make([]any, len(it.columns))
	ptrs := make([]any, len(it.columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := it.rows.Scan(ptrs...); err != nil {
		return nil, sheet.NewError(sheet.KindRender, "scan query row", err)
	}

	row := make(sheet.Row, len(it.columns))
	for i, name := range it.columns {
		row[name] = sheet.ValueOf(values[i])
	}
	return row, nil
}

func (it *rowIterator) Close() error {
	return it.rows.Close()
}
