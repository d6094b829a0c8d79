package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"erp-rfm-engine/internal/core/rfm"
	"erp-rfm-engine/internal/repositories"
	"erp-rfm-engine/internal/shared/config"
	"erp-rfm-engine/internal/shared/database"
	"erp-rfm-engine/internal/shared/utils"
)

func main() {
	var (
		clientFlag     = flag.String("client", "", "Client (tenant) UUID")
		periodFlag     = flag.String("period", "", "Analysis period: monthly, quarterly, yearly, custom")
		startFlag      = flag.String("start", "", "Start date (YYYY-MM-DD, custom period)")
		endFlag        = flag.String("end", "", "End date (YYYY-MM-DD, defaults to now)")
		minTxFlag      = flag.Int("min-transactions", 0, "Minimum transactions per customer (default from env, else 1)")
		includeRefunds = flag.Bool("include-refunds", false, "Include refund transactions in the analysis")
		invokedByFlag  = flag.String("invoked-by", "cli", "Identity recorded on the run")
		catalogFlag    = flag.Bool("catalog", false, "Print the segment taxonomy and exit")
		latestFlag     = flag.Bool("latest", false, "Print the latest run for the client instead of starting a new one")
	)
	flag.Parse()

	if *catalogFlag {
		printJSON(rfm.Catalog())
		return
	}

	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)

	clientID, err := uuid.Parse(*clientFlag)
	if err != nil {
		log.Fatalf("❌ Invalid -client UUID %q: %v", *clientFlag, err)
	}

	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	rfmRepo := repositories.NewRFMRepo(db.GORM)

	if *latestFlag {
		run, err := rfmRepo.GetLatestRun(clientID)
		if err != nil {
			log.Fatalf("❌ Failed to load latest run: %v", err)
		}
		printJSON(run)
		return
	}

	runCfg := rfm.Config{
		PeriodType:      *periodFlag,
		MinTransactions: *minTxFlag,
		IncludeRefunds:  *includeRefunds || cfg.IncludeRefunds,
	}
	if runCfg.PeriodType == "" {
		runCfg.PeriodType = cfg.DefaultPeriodType
	}
	if runCfg.MinTransactions == 0 {
		runCfg.MinTransactions = cfg.DefaultMinTransactions
	}
	if *startFlag != "" {
		runCfg.StartDate = parseDate(*startFlag)
	}
	if *endFlag != "" {
		runCfg.EndDate = parseDate(*endFlag)
	}

	service := rfm.NewService(repositories.NewOrderRepo(db.GORM), rfmRepo)

	run, err := service.RunAnalysis(clientID, runCfg, *invokedByFlag)
	if err != nil {
		log.Fatalf("❌ Analysis failed: %v", err)
	}

	printJSON(run)
}

func parseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		log.Fatalf("❌ Invalid date %q (want YYYY-MM-DD): %v", s, err)
	}
	return t.UTC()
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		os.Exit(1)
	}
}
