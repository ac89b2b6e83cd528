package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

type AnalyzedUrl struct {
	Path      string
	CreatedAt int64
}

const addUrl = `
INSERT INTO analyzed_url (path, created_at)
VALUES (?, ?)
ON CONFLICT (path) DO NOTHING
`

type AddUrlParams struct {
	Path      string
	CreatedAt int64
}

func (q *Queries) AddUrl(ctx context.Context, arg AddUrlParams) error {
	_, err := q.db.ExecContext(ctx, addUrl, arg.Path, arg.CreatedAt)
	return err
}

const listUrls = `
SELECT path, created_at FROM analyzed_url
ORDER BY created_at DESC
`

func (q *Queries) ListUrls(ctx context.Context) ([]AnalyzedUrl, error) {
	rows, err := q.db.QueryContext(ctx, listUrls)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AnalyzedUrl
	for rows.Next() {
		var i AnalyzedUrl
		if err := rows.Scan(&i.Path, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
