package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"adcrm/internal/config"
	"adcrm/internal/infrastructure"
	"adcrm/internal/ledger"
	"adcrm/internal/services"
)

func main() {
	deliveryPath := flag.String("delivery", "", "path to the ad platform export (xlsx, xls or csv)")
	panelPath := flag.String("panel", "", "path to the affiliate panel export")
	extraPath := flag.String("extra", "", "optional path to a supplementary panel export")
	reportDate := flag.String("date", time.Now().Format(services.ReportDateLayout), "report date (YYYY-MM-DD)")
	headerOffset := flag.Int("skip", 0, "header row offset for plainly shaped exports")
	flag.Parse()

	if *deliveryPath == "" || *panelPath == "" {
		fmt.Fprintln(os.Stderr, "usage: ingest -delivery <file> -panel <file> [-extra <file>] [-date YYYY-MM-DD] [-skip N]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, closeLogger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer closeLogger()

	store := ledger.NewStore(cfg.LedgerPath(), logger)
	service := services.NewIngestService(store, logger)

	summary, err := service.Ingest(context.Background(), services.IngestRequest{
		DeliveryPath: *deliveryPath,
		PanelPath:    *panelPath,
		ExtraPath:    *extraPath,
		ReportDate:   *reportDate,
		HeaderOffset: *headerOffset,
	})
	if err != nil {
		logger.Error("Ingestion failed", "error", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}
