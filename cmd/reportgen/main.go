package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"retention-analytics/config"
	"retention-analytics/internal/analytics"
	"retention-analytics/internal/store"
	"retention-analytics/internal/util"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

// reportgen runs one batch computation against the ledger database and
// prints the result tables. Undefined ratios print as "n/a" so they are
// never mistaken for 0.00.
func main() {
	minCohort := flag.Int("min-cohort-size", -1, "minimum cohort size shown (-1 = config default)")
	maxIndex := flag.Int("max-month-index", -1, "maximum month index shown (-1 = config default)")
	flag.Parse()

	cfg := config.Load()
	if *minCohort < 0 {
		*minCohort = cfg.Analytics.MinCohortSize
	}
	if *maxIndex < 0 {
		*maxIndex = cfg.Analytics.MaxMonthIndex
	}

	params := analytics.Params{
		DeliveredStatus: cfg.Analytics.DeliveredStatus,
		ShortWindowDays: cfg.Analytics.ShortWindowDays,
		TopCategoriesN:  cfg.Analytics.TopCategoriesN,
	}
	if err := params.Validate(); err != nil {
		log.Fatalf("Invalid analytics configuration: %v", err)
	}

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Stages: load, normalize, then the five aggregations.
	bar := progressbar.Default(7)

	snap, err := db.LoadSnapshot(ctx)
	if err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}
	_ = bar.Add(1)

	ds := analytics.Normalize(snap, params.DeliveredStatus)
	_ = bar.Add(1)

	monthly := analytics.MonthlyKPIs(ds.Events)
	_ = bar.Add(1)
	repeatPct := analytics.RepeatRate(ds.Events)
	_ = bar.Add(1)
	topCategories := analytics.RankCategories(ds.Categories, params.TopCategoriesN)
	_ = bar.Add(1)
	retention := analytics.CohortRetention(ds.Events)
	_ = bar.Add(1)
	shortWindow := analytics.ShortWindowRetention(ds.Events, params.ShortWindowDays)
	_ = bar.Add(1)

	fmt.Println()
	fmt.Printf("Repeat customer %%:        %s\n", formatPct(repeatPct))
	fmt.Printf("%d-day retention %%:       %s\n", params.ShortWindowDays, formatPct(shortWindow))
	if total := ds.Exclusions.Total(); total > 0 {
		fmt.Printf("Excluded malformed rows:  %d\n", total)
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)

	fmt.Println("\nMonthly KPIs")
	fmt.Fprintln(w, "month\torders\tcustomers\trevenue\taov")
	for _, m := range monthly {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			m.Month.Format(monthLayout), m.Orders, m.Customers, m.Revenue, formatPlain(m.AOV))
	}
	w.Flush()

	fmt.Println("\nTop categories by item revenue")
	fmt.Fprintln(w, "category\titem_revenue")
	for _, cat := range topCategories {
		fmt.Fprintf(w, "%s\t%s\n", cat.Category, cat.ItemRevenue)
	}
	w.Flush()

	fmt.Printf("\nCohort retention (cohort size >= %d, month index <= %d)\n", *minCohort, *maxIndex)
	fmt.Fprintln(w, "cohort\tmonth\tindex\tactive\tsize\tretention_pct")
	for _, row := range analytics.FilterRetention(retention, *minCohort, *maxIndex) {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			row.CohortMonth.Format(monthLayout), row.OrderMonth.Format(monthLayout),
			row.MonthIndex, row.ActiveCustomers, row.CohortSize, formatPct(row.RetentionPct))
	}
	w.Flush()
}

func formatPct(v decimal.NullDecimal) string {
	if !v.Valid {
		return "n/a"
	}
	return v.Decimal.StringFixed(2)
}

func formatPlain(v decimal.NullDecimal) string {
	if !v.Valid {
		return "n/a"
	}
	return v.Decimal.String()
}
