// EdgarScope — SEC disclosure normalization and insider-trading signals.
//
// Main CLI entrypoint using the cobra command framework.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/finbrook/edgarscope/api"
	"github.com/finbrook/edgarscope/internal/config"
	"github.com/finbrook/edgarscope/internal/edgar"
	"github.com/finbrook/edgarscope/internal/growth"
	"github.com/finbrook/edgarscope/internal/insider"
	"github.com/finbrook/edgarscope/internal/metrics"
	"github.com/finbrook/edgarscope/internal/normalize"
	"github.com/finbrook/edgarscope/pkg/models"
	"github.com/finbrook/edgarscope/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "edgarscope",
	Short: "EdgarScope — SEC filings into clean fundamentals and insider signals",
	Long: `EdgarScope normalizes SEC EDGAR disclosures into deduplicated,
provenance-tracked financial data points, aggregates Form 4 insider
transactions into buy/sell signals, and computes growth figures over
the resulting series.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	metricCmd.Flags().Int("years", 0, "number of fiscal years (default from config)")
	growthCmd.Flags().Int("years", 0, "number of fiscal years (default from config)")
	insidersCmd.Flags().Int("days", 0, "lookback window in days (default from config)")
	filingsCmd.Flags().String("type", "", "filter to one form type (e.g. 4, 10-K)")
	filingsCmd.Flags().Int("count", 20, "max filings to list")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(metricCmd)
	rootCmd.AddCommand(growthCmd)
	rootCmd.AddCommand(insidersCmd)
	rootCmd.AddCommand(filingsCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// newClient builds the EDGAR client from loaded config.
func newClient() *edgar.Client {
	return edgar.NewClient(edgar.Options{
		UserAgent: cfg.Edgar.UserAgent,
		CacheTTL:  time.Duration(cfg.Edgar.CacheTTL) * time.Second,
		RateLimit: cfg.Edgar.RateLimit,
	})
}

// fetchSeries resolves a symbol and normalizes one metric.
func fetchSeries(cmd *cobra.Command, symbol, metricID string) (*models.MetricSeries, error) {
	def, err := metrics.Lookup(metricID)
	if err != nil {
		return nil, err
	}

	years, _ := cmd.Flags().GetInt("years")
	if years <= 0 {
		years = cfg.Metrics.DefaultYears
	}

	client := newClient()
	cik, err := client.ResolveSymbol(cmd.Context(), symbol)
	if err != nil {
		return nil, err
	}
	facts, err := client.CompanyFacts(cmd.Context(), cik)
	if err != nil {
		return nil, err
	}

	series := normalize.Metric(facts, def, years)
	series.Symbol = symbol
	return &series, nil
}

// --- Version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("EdgarScope %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Metric catalog ---

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List the supported metrics",
	Run: func(cmd *cobra.Command, args []string) {
		for _, def := range metrics.All() {
			fmt.Printf("%-22s %-24s %s, %s\n", def.ID, def.Label, def.Unit, def.Aggregation)
		}
	},
}

// --- Metric series ---

var metricCmd = &cobra.Command{
	Use:   "metric SYMBOL METRIC",
	Short: "Show a normalized annual metric series",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		series, err := fetchSeries(cmd, args[0], args[1])
		if err != nil {
			return err
		}
		if len(series.DataPoints) == 0 {
			fmt.Printf("No annual data found for %s %s\n", series.Symbol, series.MetricID)
			return nil
		}

		fmt.Printf("%s %s (concept %s)\n", series.Symbol, series.MetricID, series.ConceptUsed)
		for _, dp := range series.DataPoints {
			restated := ""
			if dp.RestatedIn != "" {
				restated = "  (restated)"
			}
			fmt.Printf("  FY%d  %-12s  filed %s  %s%s\n",
				dp.FiscalYear, utils.FormatValue(dp.Value, dp.Unit),
				dp.Source.FilingDate, dp.Source.AccessionNumber, restated)
		}
		return nil
	},
}

// --- Growth ---

var growthCmd = &cobra.Command{
	Use:   "growth SYMBOL METRIC",
	Short: "Show year-over-year growth and CAGR for a metric",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		series, err := fetchSeries(cmd, args[0], args[1])
		if err != nil {
			return err
		}
		if len(series.DataPoints) == 0 {
			fmt.Printf("No annual data found for %s %s\n", series.Symbol, series.MetricID)
			return nil
		}

		calc := growth.Growth(series.DataPoints)
		fmt.Printf("%s %s growth\n", series.Symbol, series.MetricID)
		for i, yoy := range calc.YoYChanges {
			fmt.Printf("  FY%d  %-12s  YoY %s\n",
				yoy.Year, utils.FormatValue(series.DataPoints[i].Value, series.DataPoints[i].Unit),
				utils.FormatPct(yoy.ChangePct))
		}
		fmt.Printf("  CAGR (%dy): %s\n", calc.CAGRYears, utils.FormatPct(calc.CAGR))

		values := make([]float64, 0, len(series.DataPoints))
		for _, dp := range series.DataPoints {
			values = append(values, dp.Value)
		}
		if trend := growth.Signal(values); trend != "" {
			fmt.Printf("  Trend: %s\n", trend)
		}
		return nil
	},
}

// --- Insiders ---

var insidersCmd = &cobra.Command{
	Use:   "insiders SYMBOL",
	Short: "Aggregate recent Form 4 insider transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol := args[0]
		days, _ := cmd.Flags().GetInt("days")

		client := newClient()
		cik, err := client.ResolveSymbol(cmd.Context(), symbol)
		if err != nil {
			return err
		}

		agg := insider.New(client, insider.Options{
			LookbackDays: cfg.Insider.LookbackDays,
			MaxFilings:   cfg.Insider.MaxFilings,
			BatchSize:    cfg.Insider.BatchSize,
		})
		activity, err := agg.Activity(cmd.Context(), cik, days)
		if err != nil {
			return err
		}
		activity.Symbol = symbol

		sum := activity.Summary
		fmt.Printf("%s insider activity, last %d days (%d filings)\n",
			symbol, activity.PeriodDays, activity.Provenance.FilingCount)
		fmt.Printf("  Signal: %s\n", sum.Signal)
		fmt.Printf("  Buys:  %3d for %s (%s shares)\n",
			sum.BuyCount, utils.FormatValue(sum.BuyValue, "USD"), utils.Abbreviate(sum.BuyShares))
		fmt.Printf("  Sells: %3d for %s (%s shares)\n",
			sum.SellCount, utils.FormatValue(sum.SellValue, "USD"), utils.Abbreviate(sum.SellShares))
		fmt.Printf("  Net shares: %s   Unique insiders: %d\n",
			utils.Abbreviate(sum.NetShares), sum.UniqueInsiders)

		for _, tx := range activity.Transactions {
			price := "—"
			if tx.PricePerShare != nil {
				price = fmt.Sprintf("$%.2f", *tx.PricePerShare)
			}
			fmt.Printf("  %s  %-28s %s %s %10s @ %s\n",
				tx.TransactionDate, tx.Insider.Name, tx.TransactionCode,
				tx.TransactionType[:1], utils.Abbreviate(tx.Shares), price)
		}
		return nil
	},
}

// --- Filings feed ---

var filingsCmd = &cobra.Command{
	Use:   "filings SYMBOL",
	Short: "List a company's latest filings from the EDGAR feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formType, _ := cmd.Flags().GetString("type")
		count, _ := cmd.Flags().GetInt("count")

		client := newClient()
		cik, err := client.ResolveSymbol(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		entries, err := client.RecentFilingsFeed(cmd.Context(), cik, formType, count)
		if err != nil {
			return err
		}

		for _, e := range entries {
			fmt.Printf("  %-8s %-25s %s\n", e.FormType, e.Updated, e.Title)
		}
		return nil
	},
}

// --- Lookup ---

var lookupCmd = &cobra.Command{
	Use:   "lookup SYMBOL",
	Short: "Resolve a ticker symbol to its SEC CIK",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cik, err := newClient().ResolveSymbol(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s  CIK %s\n", args[0], edgar.PadCIK(cik))
		return nil
	},
}

// --- Serve ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := api.NewServer(cfg)
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		return srv.ListenAndServe(addr)
	},
}

// --- Status ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity to SEC EDGAR",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().Ping(cmd.Context()); err != nil {
			return fmt.Errorf("EDGAR unreachable: %w", err)
		}
		fmt.Println("EDGAR reachable")
		return nil
	},
}
