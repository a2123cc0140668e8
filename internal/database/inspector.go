package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/skyseed/internal/config"
	"github.com/jmoiron/sqlx"
)

var ErrInvalidIdentifier = errors.New("invalid identifier")

// validIdentifier guards table and column names, which are interpolated into SQL.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Row maps column names to values for a single insert or update.
type Row map[string]interface{}

// Inspector owns the single connection to the target database. Nothing is
// cached: every read goes back to the database.
type Inspector struct {
	db      *sqlx.DB
	dialect Dialect
	schema  string
	qb      squirrel.StatementBuilderType
}

// Connect opens and pings the configured database.
func Connect(ctx context.Context, cfg config.Database) (*Inspector, error) {
	dialect, err := DialectFor(cfg.Provider)
	if err != nil {
		return nil, err
	}

	dsn, err := dialect.DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.DBName, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("can not connect to %s: %w", cfg.DBName, err)
	}

	inspector, err := New(db, dialect, cfg.SchemaName)
	if err != nil {
		db.Close()
		return nil, err
	}
	return inspector, nil
}

func New(db *sqlx.DB, dialect Dialect, schema string) (*Inspector, error) {
	if !validIdentifier.MatchString(schema) {
		return nil, fmt.Errorf("%w: schema %q", ErrInvalidIdentifier, schema)
	}
	return &Inspector{
		db:      db,
		dialect: dialect,
		schema:  schema,
		qb:      squirrel.StatementBuilder.PlaceholderFormat(dialect.Placeholder()),
	}, nil
}

func (i *Inspector) Close() error {
	return i.db.Close()
}

// DB exposes the underlying connection for statements the inspector does not cover.
func (i *Inspector) DB() *sqlx.DB {
	return i.db
}

func (i *Inspector) Schema() string {
	return i.schema
}

func (i *Inspector) Dialect() Dialect {
	return i.dialect
}

// ListTables returns the base tables of the configured schema.
func (i *Inspector) ListTables(ctx context.Context) ([]string, error) {
	query, args, err := i.dialect.TablesQuery(i.qb, i.schema).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := i.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("can not list tables of schema %s: %w", i.schema, err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// GetColumnValues returns every value of column, typically the primary keys
// that foreign keys get sampled from.
func (i *Inspector) GetColumnValues(ctx context.Context, table, column string) ([]interface{}, error) {
	from, err := i.qualify(table)
	if err != nil {
		return nil, err
	}
	col, err := i.quote(column)
	if err != nil {
		return nil, err
	}

	query, args, err := i.qb.Select(col).From(from).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := i.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s.%s: %w", table, column, err)
	}
	defer rows.Close()

	var values []interface{}
	for rows.Next() {
		var value interface{}
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, normalize(value))
	}
	return values, rows.Err()
}

// GetAllRows returns the full table content keyed by result column names.
func (i *Inspector) GetAllRows(ctx context.Context, table string) ([]map[string]interface{}, error) {
	from, err := i.qualify(table)
	if err != nil {
		return nil, err
	}

	query, args, err := i.qb.Select("*").From(from).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := i.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving data from %s: %w", table, err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			row[k] = normalize(v)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// LookupInt reads one integer column of the row whose keyColumn equals key.
func (i *Inspector) LookupInt(ctx context.Context, table, column, keyColumn string, key interface{}) (int, error) {
	from, err := i.qualify(table)
	if err != nil {
		return 0, err
	}
	col, err := i.quote(column)
	if err != nil {
		return 0, err
	}
	keyCol, err := i.quote(keyColumn)
	if err != nil {
		return 0, err
	}

	query, args, err := i.qb.Select(col).From(from).Where(squirrel.Eq{keyCol: key}).Limit(1).ToSql()
	if err != nil {
		return 0, err
	}

	var value int
	if err := i.db.QueryRowxContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("no %s row with %s = %v: %w", table, keyColumn, key, err)
		}
		return 0, err
	}
	return value, nil
}

// Insert writes a single row in its own transaction and commits it.
func (i *Inspector) Insert(ctx context.Context, table string, row Row) error {
	return i.InsertAll(ctx, table, []Row{row})
}

// InsertAll writes rows in one transaction with a single commit at the end.
func (i *Inspector) InsertAll(ctx context.Context, table string, rows []Row) error {
	into, err := i.qualify(table)
	if err != nil {
		return err
	}

	tx, err := i.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		values, err := i.quoteRow(row)
		if err != nil {
			return err
		}

		query, args, err := i.qb.Insert(into).SetMap(values).ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	return nil
}

// UpdateWhereIn applies set to every row whose column value is in values,
// using one statement, and commits it.
func (i *Inspector) UpdateWhereIn(ctx context.Context, table string, set Row, column string, values []interface{}) (int64, error) {
	if len(values) == 0 {
		return 0, nil
	}

	target, err := i.qualify(table)
	if err != nil {
		return 0, err
	}
	assignments, err := i.quoteRow(set)
	if err != nil {
		return 0, err
	}
	col, err := i.quote(column)
	if err != nil {
		return 0, err
	}

	query, args, err := i.qb.Update(target).SetMap(assignments).Where(squirrel.Eq{col: values}).ToSql()
	if err != nil {
		return 0, err
	}

	tx, err := i.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return affected, nil
}

func (i *Inspector) qualify(table string) (string, error) {
	name, err := i.quote(table)
	if err != nil {
		return "", err
	}
	return i.dialect.Quote(i.schema) + "." + name, nil
}

func (i *Inspector) quote(name string) (string, error) {
	if !validIdentifier.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return i.dialect.Quote(name), nil
}

func (i *Inspector) quoteRow(row Row) (map[string]interface{}, error) {
	quoted := make(map[string]interface{}, len(row))
	for col, val := range row {
		name, err := i.quote(col)
		if err != nil {
			return nil, err
		}
		quoted[name] = val
	}
	return quoted, nil
}

// normalize turns driver text values into strings so callers can compare
// and re-insert them regardless of provider.
func normalize(value interface{}) interface{} {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value
}
