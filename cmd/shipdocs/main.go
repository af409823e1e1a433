package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/xindus-labs/shipdocs/constants"
	"github.com/xindus-labs/shipdocs/internal/client"
	"github.com/xindus-labs/shipdocs/internal/common"
	"github.com/xindus-labs/shipdocs/internal/export"
	"github.com/xindus-labs/shipdocs/internal/job"
	"github.com/xindus-labs/shipdocs/internal/model"
	"github.com/xindus-labs/shipdocs/internal/render"
)

func main() {
	// Structured logger without time/level noise, matching interactive use
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	viper.SetEnvPrefix("SHIPDOCS")
	viper.AutomaticEnv()

	// Environment variables seed the flag defaults; flags win when set.
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	pflag.String("server", cfg.Server.BaseURL, "Base URL of the extraction service")
	pflag.String("currency", cfg.Options.OutputCurrency, "Output currency: auto, USD or INR")
	pflag.String("exchange-rate", cfg.Options.ExchangeRate, "Exchange rate (required when currency is not auto)")
	pflag.Bool("sync-hs-codes", cfg.Options.SyncHSCodes, "Fill a missing HS code from its counterpart")
	pflag.String("out", cfg.Export.OutputDir, "Directory for generated sheets and the result JSON")
	pflag.Duration("timeout", cfg.Server.ExtractTimeout, "Extraction request timeout")
	pflag.Bool("verbose", false, "Log request/response details")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] file.pdf [file.pdf ...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Submits PDF invoices and packing lists to the extraction service,\n")
		fmt.Fprintf(os.Stderr, "shows progress, and writes the XpressB2B upload sheets locally.\n\nFlags:\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()
	_ = viper.BindPFlags(pflag.CommandLine)

	if viper.GetBool("verbose") {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
		slog.SetDefault(logger)
	}

	paths := pflag.Args()
	if len(paths) == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	files, err := loadFiles(paths)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	opts, err := buildOptions()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	c := client.New(client.Config{
		BaseURL:        viper.GetString("server"),
		ExtractTimeout: viper.GetDuration("timeout"),
		LookupTimeout:  cfg.Server.LookupTimeout,
	}, logger)

	updates := make(chan job.Snapshot, 256)
	orch := job.New(c, job.Config{}, func(s job.Snapshot) {
		if s.State == job.StateResults || s.ErrMsg != "" {
			updates <- s // terminal snapshots must not be dropped
			return
		}
		select {
		case updates <- s:
		default: // drop rather than stall the estimator tick
		}
	}, logger)

	ctx := context.Background()
	if err := orch.Submit(ctx, files, opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	final := waitForOutcome(updates)
	fmt.Fprintln(os.Stderr)

	if final.ErrMsg != "" {
		fmt.Fprintln(os.Stderr, "extraction failed:", final.ErrMsg)
		os.Exit(1)
	}

	printSummary(final)

	if final.Result != nil {
		if err := writeOutputs(final, viper.GetString("out"), logger); err != nil {
			fmt.Fprintln(os.Stderr, "error writing outputs:", err)
			os.Exit(1)
		}
	}

	if final.JobID != "" {
		fmt.Println("\nServer downloads:")
		for _, kind := range constants.DownloadKinds {
			fmt.Printf("  %-14s %s\n", kind, c.DownloadURL(final.JobID, kind))
		}
	}
}

// waitForOutcome consumes snapshots until the job reaches results or the
// blocking error sub-state, rendering a progress line along the way.
func waitForOutcome(updates <-chan job.Snapshot) job.Snapshot {
	for s := range updates {
		if s.State == job.StateProcessing && s.ErrMsg == "" {
			fmt.Fprintf(os.Stderr, "\r[%5.1f%%] %-30s", s.Progress, s.Phase)
		}
		if s.State == job.StateResults || s.ErrMsg != "" {
			return s
		}
	}
	return job.Snapshot{ErrMsg: "update stream closed unexpectedly"}
}

func loadFiles(paths []string) ([]client.File, error) {
	files := make([]client.File, 0, len(paths))
	for _, p := range paths {
		if !constants.ExtensionAllowed(filepath.Ext(p)) {
			return nil, fmt.Errorf("%s: only PDF documents are accepted", p)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, client.File{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}

func buildOptions() (model.ExtractionOptions, error) {
	opts := model.DefaultOptions()
	currency, ok := constants.CanonicalCurrency(viper.GetString("currency"))
	if !ok && viper.GetString("currency") != "" {
		return opts, fmt.Errorf("unknown currency %q (use auto, USD or INR)", viper.GetString("currency"))
	}
	opts.SetOutputCurrency(currency)
	opts.SetExchangeRate(viper.GetString("exchange-rate"))
	opts.SyncHSCodes = viper.GetBool("sync-hs-codes")
	return opts, opts.Validate()
}

func printSummary(s job.Snapshot) {
	result := s.Result
	if result == nil {
		fmt.Println("job", s.JobID, "finished with no result payload")
		return
	}

	inv := result.Invoice
	symbol := render.CurrencySymbol(inv.Currency.Text())
	fmt.Printf("Job %s  status=%s  confidence=%.0f%%\n",
		result.JobID, result.Status, result.OverallConfidence*100)
	fmt.Printf("Invoice %s dated %s, total %s\n",
		inv.InvoiceNumber.Display(), inv.InvoiceDate.Display(), render.Money(inv.TotalAmount, symbol))

	receiver := render.ResolveReceiver(inv)
	fmt.Printf("Receiver: %s, %s, %s\n",
		receiver.Name.Display(), receiver.City.Display(), receiver.Country.Display())

	fmt.Printf("\nLine items (%d):\n", len(inv.LineItems))
	for i, item := range inv.LineItems {
		conf := render.LineItemConfidence(item)
		fmt.Printf("  %2d. [%-6s] %-40.40s qty=%-6s unit=%-10s total=%s\n",
			i+1, render.TierFor(conf), item.Description.Display(),
			render.Quantity(item.Quantity),
			render.Money(item.UnitPriceUSD, symbol),
			render.Money(item.TotalPriceUSD, symbol))
	}

	pl := result.PackingList
	if render.IsMultiDestination(pl) {
		fmt.Printf("\nBoxes by destination (%d destinations):\n", len(pl.Destinations))
		for _, group := range render.GroupBoxes(pl) {
			name := "unresolved"
			if group.Destination != nil {
				name = group.Destination.Name.Display()
			}
			fmt.Printf("  %s: %d box(es)\n", name, len(group.Boxes))
		}
	} else if len(pl.Boxes) > 0 {
		fmt.Printf("\nBoxes (%d), gross %s\n", len(pl.Boxes), render.Weight(pl.TotalGrossWeightKG))
	}

	if len(s.Notice) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range s.Notice {
			fmt.Println("  -", w)
		}
	}
}

func writeOutputs(s job.Snapshot, outDir string, logger *slog.Logger) error {
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return err
	}
	writer := export.NewWriter(logger)

	simplified, err := writer.SimplifiedSheet(s.Result)
	if err != nil {
		return fmt.Errorf("simplified sheet: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, constants.DownloadSimplified.FileName()), simplified, 0o644); err != nil {
		return err
	}

	multi, err := writer.MultiAddressSheet(s.Result)
	if err != nil {
		return fmt.Errorf("multi-address sheet: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, constants.DownloadMulti.FileName()), multi, 0o644); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(s.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, constants.DownloadResult.FileName()), raw, 0o644); err != nil {
		return err
	}

	fmt.Printf("\nWrote %s, %s and %s to %s\n",
		constants.DownloadSimplified.FileName(),
		constants.DownloadMulti.FileName(),
		constants.DownloadResult.FileName(),
		outDir)
	return nil
}
