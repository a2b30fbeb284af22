package aggregate

import "github.com/angelmondragon/commerce-dashboard/internal/dataset"

// View names used as keys in the dashboard response.
const (
	ViewBestProducts           = "best_products"
	ViewWorstProducts          = "worst_products"
	ViewBestCategories         = "best_categories"
	ViewWorstCategories        = "worst_categories"
	ViewHighestRatedProducts   = "highest_rated_products"
	ViewLowestRatedProducts    = "lowest_rated_products"
	ViewHighestRatedCategories = "highest_rated_categories"
	ViewLowestRatedCategories  = "lowest_rated_categories"
	ViewCustomersByState       = "customers_by_state"
)

const (
	defaultTopN          = 5
	customersByStateTopN = 10
)

var (
	productKeys  = []dataset.Column{dataset.ColumnProductID, dataset.ColumnProductCategoryName}
	categoryKeys = []dataset.Column{dataset.ColumnProductCategoryName}
)

// Catalog returns the dashboard's ranked views in display order.
func Catalog() []Spec {
	purchaseCount := DistinctCount(dataset.ColumnOrderID)
	averageRating := Mean(dataset.ColumnReviewScore)

	return []Spec{
		{Name: ViewBestProducts, GroupBy: productKeys, Reduce: purchaseCount, Order: Descending, Limit: defaultTopN},
		{Name: ViewWorstProducts, GroupBy: productKeys, Reduce: purchaseCount, Order: Ascending, Limit: defaultTopN},
		{Name: ViewBestCategories, GroupBy: categoryKeys, Reduce: purchaseCount, Order: Descending, Limit: defaultTopN},
		{Name: ViewWorstCategories, GroupBy: categoryKeys, Reduce: purchaseCount, Order: Ascending, Limit: defaultTopN},
		{Name: ViewHighestRatedProducts, GroupBy: productKeys, Reduce: averageRating, Order: Descending, Limit: defaultTopN},
		{Name: ViewLowestRatedProducts, GroupBy: productKeys, Reduce: averageRating, Order: Ascending, Limit: defaultTopN},
		{Name: ViewHighestRatedCategories, GroupBy: categoryKeys, Reduce: averageRating, Order: Descending, Limit: defaultTopN},
		{Name: ViewLowestRatedCategories, GroupBy: categoryKeys, Reduce: averageRating, Order: Ascending, Limit: defaultTopN},
		{
			Name:    ViewCustomersByState,
			GroupBy: []dataset.Column{dataset.ColumnCustomerState},
			Reduce:  DistinctCount(dataset.ColumnCustomerID),
			Order:   Descending,
			Limit:   customersByStateTopN,
		},
	}
}
