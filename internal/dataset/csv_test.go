package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `,order_id,customer_id,order_approved_at,product_id,product_category_name,price,review_score,customer_state,seller_id
0,o-1,c-a,2017-10-02 11:07:15,p-x,toys,10.00,5.0,SP,s-1
1,o-2,c-a,2017-10-04 09:00:00,p-x,toys,10.00,5.0,SP,s-1
2,o-3,c-b,2017-10-03 18:30:00,p-y,books,20.5,1,RJ,s-2
3,o-4,c-c,,p-z,,7.25,,MG,s-3
4,o-5,c-d,not-a-date,p-z,garden,3,4,MG,s-3
5,,c-e,2017-10-03 18:30:00,p-y,books,20,1,RJ,s-2
6,o-6,c-e,2017-10-03 18:30:00,p-y,books,-1,1,RJ,s-2
7,o-7,c-e,2017-10-03 18:30:00,p-y,books,abc,1,RJ,s-2
`

func TestLoadCSVParsesRowsAndTalliesQuality(t *testing.T) {
	ds, err := LoadCSV(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Equal(t, 5, ds.Len())
	q := ds.Quality()
	assert.Equal(t, 8, q.RowsRead)
	assert.Equal(t, 3, q.RowsRejected)
	assert.Equal(t, 1, q.MissingApprovedAt)
	assert.Equal(t, 1, q.InvalidApprovedAt)
	assert.Equal(t, 1, q.MissingReviewScore)
	assert.Equal(t, 1, q.MissingCategory)
	assert.True(t, q.HasIssues())

	first := ds.Records()[0]
	assert.Equal(t, "o-1", first.OrderID)
	assert.Equal(t, "SP", first.CustomerState)
	require.NotNil(t, first.OrderApprovedAt)
	assert.Equal(t, "2017-10-02T11:07:15Z", first.OrderApprovedAt.Format("2006-01-02T15:04:05Z07:00"))
	require.NotNil(t, first.ReviewScore)
	assert.Equal(t, 5, *first.ReviewScore)
	assert.Equal(t, "10", first.Price.String())

	third := ds.Records()[2]
	assert.Equal(t, "20.5", third.Price.String())

	unapproved := ds.Records()[3]
	assert.Nil(t, unapproved.OrderApprovedAt)
	assert.Nil(t, unapproved.ReviewScore)
	assert.Equal(t, "", unapproved.ProductCategoryName)
}

func TestLoadCSVReportsEveryMissingColumn(t *testing.T) {
	input := "order_id,customer_id,product_id,product_category_name,customer_state\no-1,c-1,p-1,toys,SP\n"
	_, err := LoadCSV(context.Background(), strings.NewReader(input))
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeSchema, typed.Code())

	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"order_approved_at", "price", "review_score"}, details["missing_columns"])
}

func TestLoadCSVEmptyInputIsSchemaError(t *testing.T) {
	_, err := LoadCSV(context.Background(), strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeSchema))
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	header := strings.SplitN(sampleCSV, "\n", 2)[0] + "\n"
	ds, err := LoadCSV(context.Background(), strings.NewReader(header))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.False(t, ds.Quality().HasIssues())
}

func TestLoadCSVToleratesShortRowsAndBOM(t *testing.T) {
	input := "\ufefforder_id,customer_id,order_approved_at,product_id,product_category_name,price,review_score,customer_state\n" +
		"o-1,c-1,2018-01-01 00:00:00,p-1,toys,1.5,3,SP\n" +
		"o-2,c-2\n"
	ds, err := LoadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
	assert.Equal(t, 1, ds.Quality().RowsRejected)
}

func TestLoadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final_df.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	ds, err := LoadCSVFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Len())

	_, err = LoadCSVFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestParseReviewScore(t *testing.T) {
	cases := map[string]*int{
		"":    nil,
		"4":   intPtr(4),
		"4.0": intPtr(4),
		"4.5": nil,
		"nan": nil,
		"x":   nil,
	}
	for raw, want := range cases {
		got := parseReviewScore(raw)
		if want == nil {
			assert.Nil(t, got, "raw %q", raw)
			continue
		}
		require.NotNil(t, got, "raw %q", raw)
		assert.Equal(t, *want, *got, "raw %q", raw)
	}
}

func intPtr(v int) *int { return &v }

func TestLoadCSVKeepsBlankPriceAsZeroRevenue(t *testing.T) {
	input := "order_id,customer_id,order_approved_at,product_id,product_category_name,price,review_score,customer_state\n" +
		"o-1,c-1,2018-01-01 00:00:00,p-1,toys,,3,SP\n" +
		"o-2,c-1,2018-01-02 00:00:00,p-1,toys,4.5,3,SP\n"
	ds, err := LoadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	q := ds.Quality()
	assert.Equal(t, 0, q.RowsRejected)
	assert.Equal(t, 1, q.MissingPrice)
	assert.True(t, q.HasIssues())
	assert.Equal(t, "o-1", ds.Records()[0].OrderID)
	assert.True(t, ds.Records()[0].Price.IsZero())
}
