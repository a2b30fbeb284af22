package errors

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeSchema, status: http.StatusInternalServerError, publicMsg: "dataset schema invalid", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
		{code: CodeCanceled, status: http.StatusServiceUnavailable, publicMsg: "request canceled", retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing start")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing start" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	details := map[string]any{"missing": []string{"price"}}
	base.WithDetails(details)
	if got, ok := base.Details().(map[string]any); !ok || got["missing"] == nil {
		t.Fatalf("expected details to be attached, got %#v", base.Details())
	}

	cause := stdErrors.New("open final_df.csv: no such file")
	wrapped := Wrap(CodeDependency, cause, "load dataset")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatal("expected wrapped error to unwrap to cause")
	}
	if wrapped.Error() != "DEPENDENCY_ERROR: load dataset: open final_df.csv: no such file" {
		t.Fatalf("unexpected error string %q", wrapped.Error())
	}
	if Wrap(CodeInternal, nil, "noop").Unwrap() != nil {
		t.Fatal("wrap of nil should not carry a cause")
	}
}

func TestAsAndIsCodeWalkTheChain(t *testing.T) {
	schema := New(CodeSchema, "missing columns")
	outer := fmt.Errorf("bootstrap: %w", schema)

	if typed := As(outer); typed == nil || typed.Code() != CodeSchema {
		t.Fatalf("expected schema error from chain, got %#v", typed)
	}
	if !IsCode(outer, CodeSchema) {
		t.Fatal("expected IsCode to match schema code")
	}
	if IsCode(outer, CodeValidation) {
		t.Fatal("did not expect validation code")
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain errors should not convert")
	}

	var nilErr *Error
	if nilErr.Code() != CodeInternal {
		t.Fatal("nil error should report internal code")
	}
}

func TestDumpCollectsChainAndPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42703", Message: `column "price" does not exist`, TableName: "orders"}
	err := Wrap(CodeSchema, fmt.Errorf("select order rows: %w", pgErr), "read dataset table").
		WithDetails(map[string]any{"table": "orders"})

	dump := Dump(err)
	if dump.Code != CodeSchema {
		t.Fatalf("expected schema code, got %s", dump.Code)
	}
	if dump.DBEngine != EnginePostgres || dump.DBCode != "42703" || dump.DBTable != "orders" {
		t.Fatalf("expected postgres fields, got %+v", dump)
	}
	if len(dump.Chain) != 3 {
		t.Fatalf("expected three chain entries, got %d: %v", len(dump.Chain), dump.Chain)
	}
	if dump.Details == nil {
		t.Fatal("expected details to be carried")
	}

	if empty := Dump(nil); empty.TopMessage != "" || len(empty.Chain) != 0 {
		t.Fatalf("expected empty dump for nil, got %+v", empty)
	}
}

func TestFromContextTagsCancellation(t *testing.T) {
	err := FromContext(context.Canceled, "dashboard query")
	if !IsCode(err, CodeCanceled) {
		t.Fatalf("expected canceled code, got %v", err)
	}
	if !stdErrors.Is(err, context.Canceled) {
		t.Fatal("expected cancellation to stay in the chain")
	}
	if !IsCode(FromContext(fmt.Errorf("wait: %w", context.DeadlineExceeded), "x"), CodeCanceled) {
		t.Fatal("expected deadline to map to canceled code")
	}

	plain := stdErrors.New("disk full")
	if FromContext(plain, "x") != plain {
		t.Fatal("non-context errors should pass through")
	}
	if FromContext(nil, "x") != nil {
		t.Fatal("nil should stay nil")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "validation", err: New(CodeValidation, "bad -start"), want: 2},
		{name: "wrapped validation", err: fmt.Errorf("run: %w", New(CodeValidation, "bad")), want: 2},
		{name: "schema", err: New(CodeSchema, "missing columns"), want: 1},
		{name: "plain", err: stdErrors.New("boom"), want: 1},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Fatalf("%s: expected exit %d got %d", tt.name, tt.want, got)
		}
	}
}

func TestDumpRecognisesSQLiteErrors(t *testing.T) {
	sqliteErr := sqlite3.Error{Code: sqlite3.ErrError, ExtendedCode: sqlite3.ErrNoExtended(sqlite3.ErrError)}
	dump := Dump(Wrap(CodeDependency, fmt.Errorf("select dataset rows: %w", sqliteErr), "read dataset table"))

	if dump.DBEngine != EngineSQLite || dump.DBCode != "1" {
		t.Fatalf("expected sqlite fields, got %+v", dump)
	}
	fields := dump.Fields()
	if fields["db_engine"] != EngineSQLite {
		t.Fatalf("expected db_engine field, got %v", fields)
	}
	if _, ok := fields["db_table"]; ok {
		t.Fatal("empty table should be omitted")
	}
}

func TestDumpFieldsOmitDatabaseWhenAbsent(t *testing.T) {
	fields := Dump(New(CodeValidation, "bad start")).Fields()
	if fields["error_code"] != CodeValidation {
		t.Fatalf("expected error_code, got %v", fields)
	}
	if _, ok := fields["db_engine"]; ok {
		t.Fatal("did not expect database fields")
	}
}
