// backtest - replay strategy scoring over historical candles from the CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"SignalDesk/internal/backtest"
	"SignalDesk/internal/domain/models"
	"SignalDesk/internal/service/marketdata"
	"SignalDesk/internal/usecase"
	"SignalDesk/pkg/cache"
	applogger "SignalDesk/pkg/logger"
	"SignalDesk/pkg/metrics"
)

var (
	symbol    string
	days      int
	interval  string
	minScore  int
	riskSized bool
	account   float64
	riskPct   float64
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "backtest",
		Short: "Replay strategy signals over historical candles",
		Long: `backtest fetches candle history for a symbol, replays it bar by bar
through the strategy scorers, and prints the resulting trade ledger
and performance summary as JSON.`,
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&symbol, "symbol", "s", "", "Ticker symbol (required)")
	rootCmd.Flags().IntVarP(&days, "days", "d", 30, "History depth in days")
	rootCmd.Flags().StringVarP(&interval, "interval", "i", "15m", "Candle interval: 15m, 1h or 1d")
	rootCmd.Flags().IntVar(&minScore, "min-score", 60, "Minimum signal score to enter a trade")
	rootCmd.Flags().BoolVar(&riskSized, "risk-sized", false, "Size positions off a running account balance")
	rootCmd.Flags().Float64Var(&account, "account", 100000, "Starting account balance for risk sizing")
	rootCmd.Flags().Float64Var(&riskPct, "risk-pct", 0.01, "Fraction of balance risked per trade")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	_ = rootCmd.MarkFlagRequired("symbol")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	level := "warn"
	if verbose {
		level = "debug"
	}
	l, err := applogger.New(&applogger.Config{Level: level, Format: "console", Output: "stderr"})
	if err != nil {
		return err
	}

	data := marketdata.New(marketdata.Config{}, cache.NewMemoryCache(), l)
	engine := backtest.NewEngine(l.Zerolog())
	uc := usecase.NewBacktestUseCase(data, nil, metrics.New(), engine, l)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	summary, err := uc.Run(ctx, &models.BacktestRequest{
		Symbol:    symbol,
		Days:      days,
		Interval:  interval,
		MinScore:  minScore,
		RiskSized: riskSized,
		Account:   account,
		RiskPct:   riskPct,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
