package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"billmate/pkg/models"
)

// DayStat is one day of the trailing-week sales series.
type DayStat struct {
	Day     time.Time
	Sales   decimal.Decimal
	Returns decimal.Decimal
}

// WeekSeries reduces the invoice history to per-day sales and returns for
// the trailing 7 calendar days, oldest day first.
func WeekSeries(all []models.Invoice, now time.Time) []DayStat {
	series := make([]DayStat, 7)
	for i := range series {
		day := startOfDay(now.AddDate(0, 0, i-6))
		stat := DayStat{Day: day, Sales: decimal.Zero, Returns: decimal.Zero}
		for _, inv := range all {
			y1, m1, d1 := inv.Date.Date()
			y2, m2, d2 := day.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
			stat.Sales = stat.Sales.Add(inv.GrandTotal)
			stat.Returns = stat.Returns.Add(inv.ReturnTotal)
		}
		series[i] = stat
	}
	return series
}
