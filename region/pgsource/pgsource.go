// Package pgsource reads regions from PostgreSQL. It is the authoritative
// source behind region.Service.
package pgsource

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unkn0wn-root/asidecache/region"
)

const defaultTable = "regions"

// Querier is the subset of *pgxpool.Pool the source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Source struct {
	db    Querier
	table string
	pool  *pgxpool.Pool // non-nil only when owned
}

var _ region.Source = (*Source)(nil)

// New wraps an existing pool or connection. schema may be empty.
func New(db Querier, schema string) (*Source, error) {
	if db == nil {
		return nil, errors.New("pgsource: nil querier")
	}
	return &Source{db: db, table: tableName(schema)}, nil
}

// Open creates an owned pool for dsn. Close releases it.
func Open(ctx context.Context, dsn, schema string) (*Source, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	return &Source{db: pool, table: tableName(schema), pool: pool}, nil
}

func (s *Source) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Source) ChildrenOf(ctx context.Context, parentID int64) ([]region.Region, error) {
	sqlStr, args, err := s.childrenQuery(parentID)
	if err != nil {
		return nil, fmt.Errorf("build children query: %w", err)
	}
	rows, err := s.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query children of %d: %w", parentID, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[region.Region])
	if err != nil {
		return nil, fmt.Errorf("scan children of %d: %w", parentID, err)
	}
	return out, nil
}

func (s *Source) childrenQuery(parentID int64) (string, []any, error) {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id", "parent_id", "COALESCE(code, '') AS code", "name",
			"COALESCE(full_name, '') AS full_name", "depth").
		From(s.table).
		Where(sq.Eq{"parent_id": parentID}).
		OrderBy("id").
		ToSql()
}

func tableName(schema string) string {
	if schema == "" {
		return defaultTable
	}
	return schema + "." + defaultTable
}
