package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryRevenue is one ranked row of item revenue per category
type CategoryRevenue struct {
	Category    string          `json:"category"`
	ItemRevenue decimal.Decimal `json:"item_revenue"`
}

// RankCategories sums item prices per resolved category name and returns
// the top N categories by revenue descending. Ties are broken by category
// name ascending so the ranking is deterministic.
func RankCategories(lines []CategoryLine, topN int) []CategoryRevenue {
	revenueByCategory := make(map[string]decimal.Decimal)
	for _, l := range lines {
		revenueByCategory[l.Category] = revenueByCategory[l.Category].Add(l.Price)
	}

	ranked := make([]CategoryRevenue, 0, len(revenueByCategory))
	for category, revenue := range revenueByCategory {
		ranked = append(ranked, CategoryRevenue{Category: category, ItemRevenue: revenue})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if c := ranked[i].ItemRevenue.Cmp(ranked[j].ItemRevenue); c != 0 {
			return c > 0
		}
		return ranked[i].Category < ranked[j].Category
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
