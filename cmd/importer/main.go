package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"astra/internal/app"
	"astra/internal/config"
	"astra/internal/enrich"
	"astra/internal/importer"
	"astra/internal/ws"

	"github.com/joho/godotenv"
)

func main() {
	baseURL := flag.String("base-url", "", "listing site base URL (overrides IMPORTER_LISTING_URL)")
	pages := flag.Int("pages", 0, "listing pages to crawl (overrides IMPORTER_PAGES)")
	workers := flag.Int("workers", 0, "detail page workers (overrides IMPORTER_WORKERS)")
	headless := flag.Bool("headless", false, "render listing pages in a headless browser")
	runEnrich := flag.Bool("enrich", false, "fill sparse catalog fields after the import")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()
	if c.UsingFallback {
		log.Fatalf("PostgreSQL is required for imports; check DB_* settings")
	}

	url := strings.TrimSpace(*baseURL)
	if url == "" {
		url = cfg.Importer.ListingURL
	}
	if url == "" {
		log.Fatalf("provide -base-url or set IMPORTER_LISTING_URL")
	}

	pageCount := cfg.Importer.Pages
	if *pages > 0 {
		pageCount = *pages
	}
	workerCount := cfg.Importer.Workers
	if *workers > 0 {
		workerCount = *workers
	}
	useHeadless := cfg.Importer.Headless || *headless

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Run lock via Redis so overlapping cron runs don't double-import. When
	// Redis is down the import proceeds unguarded rather than failing.
	if c.Cache.Ping(ctx) == nil {
		acquired, err := c.Cache.SetIfNotExists(ctx, "importer:lock", "1", 15*time.Minute)
		if err == nil && !acquired {
			log.Fatalf("another import is already running")
		}
		defer func() {
			_ = c.Cache.Delete(context.Background(), "importer:lock")
		}()
	}

	imp := importer.New(c.Cars, url, useHeadless, logger)
	summary, err := imp.Run(ctx, pageCount, workerCount)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Printf("import done pages=%d listings=%d imported=%d failed=%d",
		summary.Pages, summary.Listings, summary.Imported, summary.Failed)

	if summary.Imported > 0 {
		ws.NotifyCatalogUpdated("importer", summary.Imported)
	}

	if *runEnrich {
		e := enrich.New(c.Cars, c.Completion, workerCount, logger)
		es, err := e.Run(ctx)
		if err != nil {
			log.Fatalf("enrichment failed: %v", err)
		}
		log.Printf("enrichment done scanned=%d sparse=%d enriched=%d failed=%d",
			es.Scanned, es.Sparse, es.Enriched, es.Failed)
	}
}
