package errors

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Database engines reported in ErrorDump.DBEngine.
const (
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// ErrorDump flattens an error chain into loggable fields. The DB fields are
// only populated when a table-backed dataset source failed.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`
	Details    any    `json:"details,omitempty"`

	Chain []string `json:"chain,omitempty"`

	DBEngine  string `json:"db_engine,omitempty"`
	DBCode    string `json:"db_code,omitempty"`
	DBTable   string `json:"db_table,omitempty"`
	DBColumn  string `json:"db_column,omitempty"`
	DBDetail  string `json:"db_detail,omitempty"`
	DBMessage string `json:"db_message,omitempty"`
}

// Fields returns the dump as a flat log field map, omitting empty DB fields.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{
		"error":       d.TopMessage,
		"error_code":  d.Code,
		"error_chain": d.Chain,
	}
	if d.DBEngine != "" {
		fields["db_engine"] = d.DBEngine
		fields["db_code"] = d.DBCode
		fields["db_message"] = d.DBMessage
		if d.DBTable != "" {
			fields["db_table"] = d.DBTable
		}
		if d.DBColumn != "" {
			fields["db_column"] = d.DBColumn
		}
	}
	return fields
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
		d.Details = te.Details()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var (
		pgxErr    *pgconn.PgError
		pqErr     *pq.Error
		sqliteErr sqlite3.Error
	)
	switch {
	case errors.As(err, &pgxErr):
		d.DBEngine = EnginePostgres
		d.DBCode = pgxErr.Code
		d.DBTable = pgxErr.TableName
		d.DBColumn = pgxErr.ColumnName
		d.DBDetail = pgxErr.Detail
		d.DBMessage = pgxErr.Message
	case errors.As(err, &pqErr):
		d.DBEngine = EnginePostgres
		d.DBCode = string(pqErr.Code)
		d.DBTable = pqErr.Table
		d.DBColumn = pqErr.Column
		d.DBDetail = pqErr.Detail
		d.DBMessage = pqErr.Message
	case errors.As(err, &sqliteErr):
		d.DBEngine = EngineSQLite
		d.DBCode = strconv.Itoa(int(sqliteErr.ExtendedCode))
		d.DBMessage = sqliteErr.Error()
	}
	return d
}
