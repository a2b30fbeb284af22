package validators

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
)

var (
	defaultStart = time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	defaultEnd   = time.Date(2018, 12, 31, 0, 0, 0, 0, time.UTC)
)

func TestParseDateRangeQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
		field     string
	}{
		{name: "defaults", query: "", wantStart: defaultStart, wantEnd: defaultEnd},
		{name: "explicit", query: "start=2017-02-01&end=2017-03-15", wantStart: time.Date(2017, 2, 1, 0, 0, 0, 0, time.UTC), wantEnd: time.Date(2017, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "start only", query: "start=2018-06-01", wantStart: time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC), wantEnd: defaultEnd},
		{name: "inverted is not an error", query: "start=2018-06-01&end=2018-01-01", wantStart: time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC), wantEnd: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "bad start", query: "start=01/02/2017", wantErr: true, field: "start"},
		{name: "bad end", query: "end=2017-13-40", wantErr: true, field: "end"},
		{name: "timestamp rejected", query: "start=2017-01-01T00:00:00Z", wantErr: true, field: "start"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?"+tc.query, nil)
			start, end, err := ParseDateRangeQuery(req, defaultStart, defaultEnd)
			if tc.wantErr {
				require.Error(t, err)
				typed := pkgerrors.As(err)
				require.NotNil(t, typed)
				assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
				details, ok := typed.Details().(map[string]string)
				require.True(t, ok, "expected field details, got %#v", typed.Details())
				assert.Contains(t, details, tc.field)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.wantStart.Equal(start), "start: got %s", start)
			assert.True(t, tc.wantEnd.Equal(end), "end: got %s", end)
		})
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=50&bad=x&big=9000", nil)

	v, err := ParseQueryInt(req, "limit", 25, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, v)

	v, err = ParseQueryInt(req, "missing", 25, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 25, v)

	_, err = ParseQueryInt(req, "bad", 25, 1, 500)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = ParseQueryInt(req, "big", 25, 1, 500)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "2017-01-01", SanitizeString("  2017-01-01\n", 32))
	assert.Equal(t, "abc", SanitizeString("abcdef", 3))
	assert.Equal(t, "ab", SanitizeString("a\x07b", 0))
	// "é" is two bytes; the cap never splits it.
	assert.Equal(t, "a", SanitizeString("aé", 2))
}
