package database

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/skyseed/internal/config"
	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect carries everything that differs between the supported providers.
type Dialect interface {
	Name() string
	DriverName() string
	DSN(db config.Database) (string, error)
	Placeholder() squirrel.PlaceholderFormat
	Quote(identifier string) string
	TablesQuery(qb squirrel.StatementBuilderType, schema string) squirrel.SelectBuilder
}

func DialectFor(provider string) (Dialect, error) {
	switch provider {
	case "postgresql", "postgres":
		return postgresDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	case "sqlite", "sqlite3":
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string       { return "postgresql" }
func (postgresDialect) DriverName() string { return "pgx" }

func (postgresDialect) DSN(db config.Database) (string, error) {
	if db.Host == "" || db.DBName == "" {
		return "", fmt.Errorf("postgresql needs host and db_name")
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(db.Host, db.Port),
		Path:   "/" + db.DBName,
	}
	if db.Username != "" {
		u.User = url.UserPassword(db.Username, db.Password)
	}
	if db.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {db.SSLMode}}.Encode()
	}
	return u.String(), nil
}

func (postgresDialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Dollar }

func (postgresDialect) Quote(identifier string) string { return pq.QuoteIdentifier(identifier) }

func (postgresDialect) TablesQuery(qb squirrel.StatementBuilderType, schema string) squirrel.SelectBuilder {
	return qb.Select("table_name").
		From("information_schema.tables").
		Where(squirrel.Eq{"table_schema": schema, "table_type": "BASE TABLE"}).
		OrderBy("table_name")
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string       { return "mysql" }
func (mysqlDialect) DriverName() string { return "mysql" }

func (mysqlDialect) DSN(db config.Database) (string, error) {
	if db.Host == "" || db.DBName == "" {
		return "", fmt.Errorf("mysql needs host and db_name")
	}
	cfg := mysql.NewConfig()
	cfg.User = db.Username
	cfg.Passwd = db.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(db.Host, db.Port)
	cfg.DBName = db.DBName
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func (mysqlDialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Question }

func (mysqlDialect) Quote(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}

func (mysqlDialect) TablesQuery(qb squirrel.StatementBuilderType, schema string) squirrel.SelectBuilder {
	return qb.Select("table_name").
		From("information_schema.tables").
		Where(squirrel.Eq{"table_schema": schema, "table_type": "BASE TABLE"}).
		OrderBy("table_name")
}

// sqliteDialect treats db_name as the database file path.
type sqliteDialect struct{}

func (sqliteDialect) Name() string       { return "sqlite" }
func (sqliteDialect) DriverName() string { return "sqlite3" }

func (sqliteDialect) DSN(db config.Database) (string, error) {
	if db.DBName == "" {
		return "", fmt.Errorf("sqlite needs db_name (the database file)")
	}
	return "file:" + db.DBName + "?_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", nil
}

func (sqliteDialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Question }

func (sqliteDialect) Quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}

func (d sqliteDialect) TablesQuery(qb squirrel.StatementBuilderType, schema string) squirrel.SelectBuilder {
	return qb.Select("name").
		From(d.Quote(schema) + ".sqlite_master").
		Where(squirrel.Eq{"type": "table"}).
		Where(squirrel.NotLike{"name": "sqlite_%"}).
		OrderBy("name")
}
