package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"algotradex/internal/repository"
	"algotradex/internal/service"

	"github.com/spf13/cobra"
)

var (
	syncSymbol string
	syncYears  int
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download historical daily bars from Yahoo Finance",
	Long:  "Sync one symbol with --symbol, or the whole Nifty 50 universe plus the benchmark index when no symbol is given.",
	Run:   runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncSymbol, "symbol", "", "single symbol to sync, e.g. RELIANCE.NS")
	syncCmd.Flags().IntVar(&syncYears, "years", 0, "years of history to download (default from config)")
}

func runSync(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.cache)

	if syncSymbol != "" {
		saved, err := services.StockService.SyncHistorical(ctx, syncSymbol, syncYears)
		if err != nil {
			log.Fatalf("Sync failed for %s: %v", syncSymbol, err)
		}
		log.Printf("Synced %s: %d bars", syncSymbol, saved)
		return
	}

	resp, err := services.StockService.SyncUniverse(ctx, syncYears)
	if err != nil {
		log.Fatalf("Universe sync failed: %v", err)
	}
	log.Printf("Synced %d symbols: %d bars saved, %d failed", resp.Symbols, resp.BarsSaved, resp.Failed)
}
