package db

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ConnParams are discrete connection settings used when no DSN is configured.
type ConnParams struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// BuildDSN renders p as a DSN understood by the driver for dbType. For
// SQLite, Name is the database file path.
func BuildDSN(dbType string, p ConnParams) (string, error) {
	switch dbType {
	case TypeSQLite:
		if p.Name == "" {
			return "", fmt.Errorf("sqlite requires a database file name")
		}
		return p.Name, nil
	case TypePostgres:
		if p.Host == "" || p.Name == "" {
			return "", fmt.Errorf("postgres requires host and database name")
		}
		port := p.Port
		if port == 0 {
			port = 5432
		}
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(p.Host, strconv.Itoa(port)),
			Path:   "/" + p.Name,
		}
		if p.User != "" {
			if p.Password != "" {
				u.User = url.UserPassword(p.User, p.Password)
			} else {
				u.User = url.User(p.User)
			}
		}
		return u.String(), nil
	case TypeMySQL:
		if p.Host == "" || p.Name == "" {
			return "", fmt.Errorf("mysql requires host and database name")
		}
		port := p.Port
		if port == 0 {
			port = 3306
		}
		cfg := mysql.NewConfig()
		cfg.User = p.User
		cfg.Passwd = p.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(p.Host, strconv.Itoa(port))
		cfg.DBName = p.Name
		cfg.ParseTime = true
		return cfg.FormatDSN(), nil
	default:
		return "", fmt.Errorf("unsupported database type: '%s'", dbType)
	}
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// sqliteDSN turns on foreign key enforcement and a busy timeout for every
// connection modernc opens from dsn.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
