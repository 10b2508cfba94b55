package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"billmate/internal/billing"
	"billmate/internal/insight"
)

// insightTimeout bounds the best-effort insight call; the dashboard never
// waits longer than this for the external model.
const insightTimeout = 15 * time.Second

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's and this week's sales at a glance",
	Long: `Summarize the invoice history: sales, returns and money received today,
trailing-7-day sales, a per-day breakdown of the week, and a short
AI-generated business tip.

The tip comes from OpenAI using the last few invoice summaries. It is best
effort: without an OPENAI_API_KEY, or on any failure, a fixed fallback line
is shown instead and the rest of the dashboard is unaffected.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	all, err := svc.ListInvoices()
	if err != nil {
		return err
	}

	now := time.Now()

	// Kick off the insight request first; it runs while the stats print.
	tipCh := make(chan string, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), insightTimeout)
		defer cancel()
		tips := insight.NewService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		tipCh <- tips.BusinessTip(ctx, all)
	}()

	today := billing.Filter(all, billing.Query{Window: billing.Window{Kind: billing.WindowDaily}}, now)
	week := billing.Filter(all, billing.Query{Window: billing.Window{Kind: billing.WindowWeekly}}, now)
	todayStats := billing.Aggregate(today)
	weekStats := billing.Aggregate(week)

	cur := cfg.CurrencySymbol
	fmt.Printf("%s — %s\n\n", cfg.CompanyName, now.Format("Mon, 02 Jan 2006"))
	fmt.Printf("Sales today:      %s%s\n", cur, todayStats.NetBilled.StringFixed(2))
	fmt.Printf("Returns today:    %s%s\n", cur, todayStats.TotalReturns.StringFixed(2))
	fmt.Printf("Received today:   %s%s\n", cur, todayStats.Paid.StringFixed(2))
	fmt.Printf("Weekly sales:     %s%s\n\n", cur, weekStats.NetBilled.StringFixed(2))

	fmt.Println("Last 7 days (sales / returns):")
	for _, day := range billing.WeekSeries(all, now) {
		fmt.Printf("  %s  %s%10s / %s%s\n",
			day.Day.Format("Mon 02"),
			cur, day.Sales.StringFixed(2),
			cur, day.Returns.StringFixed(2))
	}

	fmt.Printf("\nInsight: %s\n", <-tipCh)
	return nil
}
