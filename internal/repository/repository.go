package repository

import (
	"context"
	"database/sql"
	"strings"

	"cert-study/internal/domain"

	"github.com/jmoiron/sqlx"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

// filterClause appends "AND col = ?" conditions for the non-empty filter fields.
func filterClause(f domain.Filter, args []interface{}) (string, []interface{}) {
	var b strings.Builder
	if f.Category != "" {
		b.WriteString(" AND category = ?")
		args = append(args, f.Category)
	}
	if f.Subcategory != "" {
		b.WriteString(" AND subcategory = ?")
		args = append(args, f.Subcategory)
	}
	return b.String(), args
}
