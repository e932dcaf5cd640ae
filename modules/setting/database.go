// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"code.mojo.dev/mojo/modules/log"
)

var (
	// SupportedDatabaseTypes includes all XORM supported databases type, sqlite3 maybe added by `database_sqlite.go`
	SupportedDatabaseTypes = []string{"sqlite", "mysql", "postgres"}
	// DatabaseTypeNames contains the friendly names for all database types
	DatabaseTypeNames = map[string]string{"sqlite": "SQLite (pure Go)", "sqlite3": "SQLite3", "mysql": "MySQL", "postgres": "PostgreSQL"}

	// EnableSQLite3 use SQLite3, set by build flag
	EnableSQLite3 bool

	// Database holds the database settings
	Database = struct {
		Type              DatabaseType
		Host              string
		Name              string
		User              string
		Passwd            string
		SSLMode           string
		Path              string
		LogSQL            bool
		MaxOpenConns      int
		MaxIdleConns      int
		ConnMaxLifetime   time.Duration
		SQLiteBusyTimeout int
		IterateBufferSize int
	}{
		SQLiteBusyTimeout: 500,
		IterateBufferSize: 50,
	}
)

// DatabaseType is the name of a xorm driver
type DatabaseType string

func (t DatabaseType) String() string {
	return string(t)
}

func (t DatabaseType) IsSQLite3() bool {
	return t == "sqlite" || t == "sqlite3"
}

func (t DatabaseType) IsMySQL() bool {
	return t == "mysql"
}

func (t DatabaseType) IsPostgreSQL() bool {
	return t == "postgres"
}

func loadDBSetting(rootCfg ConfigProvider) {
	sec := rootCfg.Section("database")
	Database.Type = DatabaseType(sec.Key("DB_TYPE").MustString("sqlite"))
	if !isSupportedType(Database.Type) {
		log.Warn("Unsupported database type %q, falling back to sqlite", Database.Type)
		Database.Type = "sqlite"
	}

	Database.Host = sec.Key("HOST").MustString("127.0.0.1:3306")
	Database.Name = sec.Key("NAME").MustString(AppName)
	Database.User = sec.Key("USER").String()
	Database.Passwd = sec.Key("PASSWD").String()
	Database.SSLMode = sec.Key("SSL_MODE").MustString("disable")
	Database.Path = sec.Key("PATH").MustString(filepath.Join("data", AppName+".db"))
	Database.LogSQL = sec.Key("LOG_SQL").MustBool(false)
	Database.MaxOpenConns = sec.Key("MAX_OPEN_CONNS").MustInt(0)
	Database.MaxIdleConns = sec.Key("MAX_IDLE_CONNS").MustInt(2)
	Database.ConnMaxLifetime = sec.Key("CONN_MAX_LIFETIME").MustDuration(0)
	Database.SQLiteBusyTimeout = sec.Key("SQLITE_TIMEOUT").MustInt(500)
	Database.IterateBufferSize = sec.Key("ITERATE_BUFFER_SIZE").MustInt(50)
}

func isSupportedType(t DatabaseType) bool {
	for _, s := range SupportedDatabaseTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// DBConnStr returns database connection string
func DBConnStr() (string, error) {
	switch Database.Type {
	case "mysql":
		connType := "tcp"
		if len(Database.Host) > 0 && Database.Host[0] == '/' { // looks like a unix socket
			connType = "unix"
		}
		return fmt.Sprintf("%s:%s@%s(%s)/%s?parseTime=true&charset=utf8mb4",
			Database.User, Database.Passwd, connType, Database.Host, Database.Name), nil
	case "postgres":
		return getPostgreSQLConnectionString(Database.Host, Database.User, Database.Passwd, Database.Name, Database.SSLMode), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(Database.Path), os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create directories: %w", err)
		}
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", Database.Path, Database.SQLiteBusyTimeout), nil
	case "sqlite3":
		if !EnableSQLite3 {
			return "", fmt.Errorf("this binary version does not build support for SQLite3")
		}
		if err := os.MkdirAll(filepath.Dir(Database.Path), os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create directories: %w", err)
		}
		return fmt.Sprintf("file:%s?cache=shared&mode=rwc&_busy_timeout=%d&_txlock=immediate", Database.Path, Database.SQLiteBusyTimeout), nil
	default:
		return "", fmt.Errorf("unknown database type: %s", Database.Type)
	}
}

// parsePostgreSQLHostPort parses given input in various forms defined in
// https://www.postgresql.org/docs/current/libpq-connect.html#LIBPQ-CONNSTRING
// and returns proper host and port number.
func parsePostgreSQLHostPort(info string) (host, port string) {
	if h, p, err := net.SplitHostPort(info); err == nil {
		host, port = h, p
	} else {
		// treat the "info" as "host", if it's an IPv6 address, remove the wrapper
		host = info
		if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
			host = host[1 : len(host)-1]
		}
	}

	// set fallback values
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "5432"
	}
	return host, port
}

func getPostgreSQLConnectionString(dbHost, dbUser, dbPasswd, dbName, dbsslMode string) (connStr string) {
	dbName, dbParam, _ := strings.Cut(dbName, "?")
	host, port := parsePostgreSQLHostPort(dbHost)
	connURL := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbUser, dbPasswd),
		Host:     net.JoinHostPort(host, port),
		Path:     dbName,
		OmitHost: false,
		RawQuery: dbParam,
	}
	query := connURL.Query()
	if strings.HasPrefix(host, "/") { // looks like a unix socket
		query.Add("host", host)
		connURL.Host = ":" + port
	}
	query.Set("sslmode", dbsslMode)
	connURL.RawQuery = query.Encode()
	return connURL.String()
}
